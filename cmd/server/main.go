package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fnct-hackathon.backend/internal/config"
	"fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/datasources/postgres"
	"fnct-hackathon.backend/internal/infrastructure/metrics"
	"fnct-hackathon.backend/internal/infrastructure/notifier"
	infraRepos "fnct-hackathon.backend/internal/infrastructure/repositories"
	"fnct-hackathon.backend/internal/interfaces/http/handlers"
	"fnct-hackathon.backend/internal/interfaces/http/middleware"
	"fnct-hackathon.backend/internal/usecases"
	"fnct-hackathon.backend/pkg/jwt"
	"fnct-hackathon.backend/pkg/logger"
	"fnct-hackathon.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultJWTSecret = "change-this-in-production"
	shutdownTimeout  = 10 * time.Second
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = postgres.NewConnection
	migrateDB  = infraRepos.Migrate
	runServer  = func(r *gin.Engine, port string) error {
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info(context.Background(), "Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWT.Secret == defaultJWTSecret {
			logger.Warn(ctx, "JWT_SECRET is using the default value")
		}
	}

	// Without Redis, decisions are only logged and idempotency keys are ignored.
	var (
		publisher   repositories.DecisionPublisher
		idempotency gin.HandlerFunc
	)
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(ctx, "Redis unavailable, decision events will only be logged", zap.Error(err))
		publisher = notifier.LogDecisionPublisher{}
	} else {
		logger.Info(ctx, "Redis initialized", zap.String("decision_queue", cfg.Redis.DecisionQueue))
		publisher = notifier.NewRedisDecisionPublisher(cfg.Redis.DecisionQueue)
		idempotency = middleware.IdempotencyMiddleware()
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := migrateDB(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(ctx, "Database ready")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	deps := buildRouteDeps(db, usecases.PolicyFromConfig(cfg.Admission), publisher, m)
	deps.authMiddleware = middleware.AuthMiddleware(jwtService)
	deps.idempotency = idempotency

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r, reg)
	registerAPIV1Routes(r, deps)

	for _, route := range r.Routes() {
		logger.Debug(ctx, "route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	logger.Info(ctx, "Hackathon backend starting", zap.String("port", cfg.Server.Port))
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildRouteDeps(db *gorm.DB, policy usecases.Policy, publisher repositories.DecisionPublisher, m *metrics.Metrics) routeDeps {
	candidateRepo := infraRepos.NewCandidateRepository(db)
	teamRepo := infraRepos.NewTeamRepository(db)
	membershipRepo := infraRepos.NewMembershipRepository(db)
	joinRequestRepo := infraRepos.NewJoinRequestRepository(db)
	regionRepo := infraRepos.NewRegionRepository(db)
	uow := infraRepos.NewUnitOfWork(db)

	evaluator := usecases.NewEvaluator(policy)

	candidateUsecase := usecases.NewCandidateUsecase(candidateRepo, membershipRepo, teamRepo, uow, policy, m)
	teamUsecase := usecases.NewTeamUsecase(teamRepo, membershipRepo, joinRequestRepo, candidateRepo, uow, evaluator, m)
	membershipUsecase := usecases.NewMembershipUsecase(candidateRepo, teamRepo, membershipRepo, joinRequestRepo, uow, policy, m)
	submissionUsecase := usecases.NewSubmissionUsecase(teamRepo, membershipRepo, joinRequestRepo, uow, evaluator, m)
	allocationUsecase := usecases.NewAllocationUsecase(teamRepo, membershipRepo, regionRepo, uow, evaluator, publisher, m)
	statsUsecase := usecases.NewStatsUsecase(candidateRepo, teamRepo, membershipRepo, regionRepo, policy)

	return routeDeps{
		candidateHandler:   handlers.NewCandidateHandler(candidateUsecase),
		teamHandler:        handlers.NewTeamHandler(teamUsecase, submissionUsecase, membershipUsecase),
		joinRequestHandler: handlers.NewJoinRequestHandler(membershipUsecase),
		adminHandler:       handlers.NewAdminHandler(teamUsecase, allocationUsecase, statsUsecase),
	}
}

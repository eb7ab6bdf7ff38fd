package commands

import (
	"context"

	"fnct-hackathon.backend/internal/config"
	domainRepos "fnct-hackathon.backend/internal/domain/repositories"
	"fnct-hackathon.backend/internal/infrastructure/datasources/postgres"
	"fnct-hackathon.backend/internal/infrastructure/notifier"
	"fnct-hackathon.backend/internal/infrastructure/repositories"
	"fnct-hackathon.backend/internal/usecases"
	"fnct-hackathon.backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	loadConfig = config.Load
	openDB     = postgres.NewConnection
	initRedis  = redis.Init
)

// store bundles what the data commands need.
type store struct {
	cfg        *config.Config
	db         *gorm.DB
	allocation *usecases.AllocationUsecase
	stats      *usecases.StatsUsecase
}

func openStore() (*store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := openDB(cfg.Database)
	if err != nil {
		return nil, err
	}

	var publisher domainRepos.DecisionPublisher = notifier.LogDecisionPublisher{}
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err == nil {
		publisher = notifier.NewRedisDecisionPublisher(cfg.Redis.DecisionQueue)
	}

	policy := usecases.PolicyFromConfig(cfg.Admission)
	candidateRepo := repositories.NewCandidateRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	regionRepo := repositories.NewRegionRepository(db)

	return &store{
		cfg: cfg,
		db:  db,
		allocation: usecases.NewAllocationUsecase(
			teamRepo, membershipRepo, regionRepo,
			repositories.NewUnitOfWork(db),
			usecases.NewEvaluator(policy), publisher, nil,
		),
		stats: usecases.NewStatsUsecase(candidateRepo, teamRepo, membershipRepo, regionRepo, policy),
	}, nil
}

func (s *store) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *store) migrate(ctx context.Context) error {
	return repositories.Migrate(ctx, s.db)
}

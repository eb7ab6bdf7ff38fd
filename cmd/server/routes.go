package main

import (
	"net/http"

	"fnct-hackathon.backend/internal/interfaces/http/handlers"
	"fnct-hackathon.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "fnct-hackathon-backend"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	candidateHandler   *handlers.CandidateHandler
	teamHandler        *handlers.TeamHandler
	joinRequestHandler *handlers.JoinRequestHandler
	adminHandler       *handlers.AdminHandler
	authMiddleware     gin.HandlerFunc
	idempotency        gin.HandlerFunc
}

func passThrough(c *gin.Context) { c.Next() }

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	idem := d.idempotency
	if idem == nil {
		idem = passThrough
	}

	v1 := r.Group("/api/v1")
	v1.Use(d.authMiddleware)
	{
		candidates := v1.Group("/candidates")
		candidates.Use(middleware.RequireCandidate())
		{
			candidates.POST("", idem, d.candidateHandler.Register)
			candidates.GET("/me", d.candidateHandler.GetMe)
			candidates.PUT("/me", d.candidateHandler.UpdateMe)
		}

		teams := v1.Group("/teams")
		teams.Use(middleware.RequireCandidate())
		{
			teams.POST("", idem, d.teamHandler.CreateTeam)
			teams.GET("/open", d.teamHandler.ListOpenTeams)
			teams.GET("/:id", d.teamHandler.GetTeam)
			teams.PUT("/:id", d.teamHandler.UpdateTeam)
			teams.POST("/:id/submit", idem, d.teamHandler.SubmitTeam)
			teams.DELETE("/:id/members/:candidateId", d.teamHandler.RemoveMember)
			teams.POST("/:id/leave", idem, d.teamHandler.LeaveTeam)

			teams.POST("/:id/join-requests", idem, d.joinRequestHandler.Submit)
			teams.GET("/:id/join-requests", d.joinRequestHandler.ListForTeam)
		}

		joinRequests := v1.Group("/join-requests")
		joinRequests.Use(middleware.RequireCandidate())
		{
			joinRequests.GET("/mine", d.joinRequestHandler.ListMine)
			joinRequests.POST("/:id/accept", idem, d.joinRequestHandler.Accept)
			joinRequests.POST("/:id/reject", idem, d.joinRequestHandler.Reject)
			joinRequests.POST("/:id/cancel", idem, d.joinRequestHandler.Cancel)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/teams", d.adminHandler.ListTeams)
			admin.GET("/stats", d.adminHandler.Stats)
			admin.PUT("/teams/:id/qualitative-score", d.adminHandler.SetQualitativeScore)
			admin.POST("/teams/:id/review", idem, d.adminHandler.Review)
			admin.GET("/regions/:region/ranking", d.adminHandler.Ranking)
			admin.POST("/teams/:id/decision", idem, d.adminHandler.Decide)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-Idempotency-Hit")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

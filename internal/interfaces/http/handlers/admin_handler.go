package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/interfaces/http/response"
	"fnct-hackathon.backend/internal/usecases"
	"fnct-hackathon.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type adminTeamService interface {
	ListTeams(ctx context.Context, filter entities.TeamFilter, pagination utils.PaginationParams) ([]*entities.TeamSummary, utils.PaginationMeta, error)
}

type allocationService interface {
	Rank(ctx context.Context, region entities.RegionCode) ([]*entities.RankedTeam, error)
	Decide(ctx context.Context, teamID uuid.UUID, decision entities.TeamStatus) (*entities.Team, error)
	ReviewSubmission(ctx context.Context, teamID uuid.UUID, verdict entities.TeamStatus) (*entities.Team, error)
	SetQualitativeScore(ctx context.Context, teamID uuid.UUID, score int) (*entities.TeamDetail, error)
}

type statsService interface {
	Overview(ctx context.Context) (*entities.AdminStats, error)
}

// AdminHandler serves the jury and organiser endpoints.
type AdminHandler struct {
	teams      adminTeamService
	allocation allocationService
	stats      statsService
}

func NewAdminHandler(teams *usecases.TeamUsecase, allocation *usecases.AllocationUsecase, stats *usecases.StatsUsecase) *AdminHandler {
	return &AdminHandler{teams: teams, allocation: allocation, stats: stats}
}

// ListTeams returns teams with filters and pagination.
// GET /api/v1/admin/teams?search=&region=&theme=&status=a,b&page=&limit=
func (h *AdminHandler) ListTeams(c *gin.Context) {
	filter := entities.TeamFilter{Search: strings.TrimSpace(c.Query("search"))}
	if v := c.Query("region"); v != "" {
		region, err := entities.ParseRegionCode(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("unknown region"))
			return
		}
		filter.Region = region
	}
	if v := c.Query("theme"); v != "" {
		theme, err := entities.ParseTheme(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("unknown theme"))
			return
		}
		filter.Theme = theme
	}
	if v := c.Query("status"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			status, err := entities.ParseTeamStatus(strings.TrimSpace(raw))
			if err != nil {
				response.Error(c, domainerrors.BadRequest("unknown status "+raw))
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, meta, err := h.teams.ListTeams(c.Request.Context(), filter, utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "meta": meta})
}

// Stats returns the admission overview.
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// SetQualitativeScore stores the jury mark.
// PUT /api/v1/admin/teams/:id/qualitative-score
func (h *AdminHandler) SetQualitativeScore(c *gin.Context) {
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Score *int `json:"score" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	detail, err := h.allocation.SetQualitativeScore(c.Request.Context(), teamID, *input.Score)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Review records the first-stage jury verdict.
// POST /api/v1/admin/teams/:id/review
func (h *AdminHandler) Review(c *gin.Context) {
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Verdict entities.TeamStatus `json:"verdict" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	team, err := h.allocation.ReviewSubmission(c.Request.Context(), teamID, input.Verdict)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": team})
}

// Ranking returns the ordered jury-validated teams of a region.
// GET /api/v1/admin/regions/:region/ranking
func (h *AdminHandler) Ranking(c *gin.Context) {
	region, err := entities.ParseRegionCode(c.Param("region"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("unknown region"))
		return
	}
	ranked, err := h.allocation.Rank(c.Request.Context(), region)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"region": region, "items": ranked})
}

// Decide applies the final allocation decision.
// POST /api/v1/admin/teams/:id/decision
func (h *AdminHandler) Decide(c *gin.Context) {
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input struct {
		Decision entities.TeamStatus `json:"decision" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	team, err := h.allocation.Decide(c.Request.Context(), teamID, input.Decision)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": team})
}

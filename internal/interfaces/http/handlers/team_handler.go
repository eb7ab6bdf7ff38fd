package handlers

import (
	"context"
	"net/http"

	"fnct-hackathon.backend/internal/domain/entities"
	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"fnct-hackathon.backend/internal/interfaces/http/response"
	"fnct-hackathon.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type teamService interface {
	CreateTeam(ctx context.Context, actorID uuid.UUID, input *entities.CreateTeamInput) (*entities.TeamDetail, error)
	UpdateTeamInfo(ctx context.Context, actorID, teamID uuid.UUID, input *entities.UpdateTeamInput) (*entities.TeamDetail, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*entities.TeamDetail, error)
	ListOpenTeams(ctx context.Context, region entities.RegionCode, theme entities.Theme) ([]*entities.TeamSummary, error)
}

type submissionService interface {
	LockAndSubmit(ctx context.Context, actorID, teamID uuid.UUID, d *entities.Deliverables) (*entities.TeamDetail, error)
}

type memberService interface {
	RemoveMember(ctx context.Context, actorID, teamID, candidateID uuid.UUID) error
	LeaveTeam(ctx context.Context, actorID, teamID uuid.UUID) error
}

// TeamHandler serves team creation, discovery, editing and submission.
type TeamHandler struct {
	teams       teamService
	submissions submissionService
	members     memberService
}

func NewTeamHandler(teams *usecases.TeamUsecase, submissions *usecases.SubmissionUsecase, members *usecases.MembershipUsecase) *TeamHandler {
	return &TeamHandler{teams: teams, submissions: submissions, members: members}
}

// CreateTeam founds a draft team led by the caller.
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var input entities.CreateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	detail, err := h.teams.CreateTeam(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, detail)
}

// ListOpenTeams lists draft teams accepting applications.
// GET /api/v1/teams/open?region=&theme=
func (h *TeamHandler) ListOpenTeams(c *gin.Context) {
	var (
		region entities.RegionCode
		theme  entities.Theme
	)
	if v := c.Query("region"); v != "" {
		r, err := entities.ParseRegionCode(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("unknown region"))
			return
		}
		region = r
	}
	if v := c.Query("theme"); v != "" {
		th, err := entities.ParseTheme(v)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("unknown theme"))
			return
		}
		theme = th
	}

	items, err := h.teams.ListOpenTeams(c.Request.Context(), region, theme)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// GetTeam returns the team, its members and its current evaluation.
// GET /api/v1/teams/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.teams.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// UpdateTeam edits the team pitch.
// PUT /api/v1/teams/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input entities.UpdateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	detail, err := h.teams.UpdateTeamInfo(c.Request.Context(), actor, teamID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// SubmitTeam locks the team with its deliverables.
// POST /api/v1/teams/:id/submit
func (h *TeamHandler) SubmitTeam(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input entities.Deliverables
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	detail, err := h.submissions.LockAndSubmit(c.Request.Context(), actor, teamID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// RemoveMember drops a member from the team.
// DELETE /api/v1/teams/:id/members/:candidateId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	candidateID, ok := uuidParam(c, "candidateId")
	if !ok {
		return
	}

	if err := h.members.RemoveMember(c.Request.Context(), actor, teamID, candidateID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LeaveTeam removes the caller from the team.
// POST /api/v1/teams/:id/leave
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.members.LeaveTeam(c.Request.Context(), actor, teamID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

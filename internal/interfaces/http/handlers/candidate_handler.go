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

type candidateService interface {
	Register(ctx context.Context, actorID uuid.UUID, input *entities.CandidateInput) (*entities.Candidate, error)
	GetProfile(ctx context.Context, actorID uuid.UUID) (*entities.CandidateProfile, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, input *entities.CandidateInput) (*entities.Candidate, error)
}

// CandidateHandler handles candidate registration and profile endpoints
type CandidateHandler struct {
	usecase candidateService
}

func NewCandidateHandler(usecase *usecases.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{usecase: usecase}
}

// Register creates the profile of the authenticated candidate.
// POST /api/v1/candidates
func (h *CandidateHandler) Register(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var input entities.CandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	candidate, err := h.usecase.Register(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"candidate": candidate})
}

// GetMe returns the candidate profile with team membership.
// GET /api/v1/candidates/me
func (h *CandidateHandler) GetMe(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	profile, err := h.usecase.GetProfile(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

// UpdateMe edits the profile; rejected once the candidate is in a team.
// PUT /api/v1/candidates/me
func (h *CandidateHandler) UpdateMe(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	var input entities.CandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	candidate, err := h.usecase.UpdateProfile(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"candidate": candidate})
}

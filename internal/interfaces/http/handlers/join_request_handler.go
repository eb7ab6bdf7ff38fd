package handlers

import (
	"context"
	"net/http"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/interfaces/http/response"
	"fnct-hackathon.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type joinRequestService interface {
	SubmitRequest(ctx context.Context, actorID, teamID uuid.UUID) (*entities.JoinRequest, error)
	AcceptRequest(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, error)
	RejectRequest(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, error)
	CancelRequest(ctx context.Context, actorID, requestID uuid.UUID) (*entities.JoinRequest, error)
	ListTeamRequests(ctx context.Context, actorID, teamID uuid.UUID) ([]*entities.JoinRequestDetail, error)
	ListMyRequests(ctx context.Context, actorID uuid.UUID) ([]*entities.JoinRequestDetail, error)
}

// JoinRequestHandler exposes the membership reconciler.
type JoinRequestHandler struct {
	usecase joinRequestService
}

func NewJoinRequestHandler(usecase *usecases.MembershipUsecase) *JoinRequestHandler {
	return &JoinRequestHandler{usecase: usecase}
}

// Submit applies to a team.
// POST /api/v1/teams/:id/join-requests
func (h *JoinRequestHandler) Submit(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	req, err := h.usecase.SubmitRequest(c.Request.Context(), actor, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": req})
}

// ListForTeam lists pending applications; leader only.
// GET /api/v1/teams/:id/join-requests
func (h *JoinRequestHandler) ListForTeam(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	items, err := h.usecase.ListTeamRequests(c.Request.Context(), actor, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// ListMine lists the caller's applications.
// GET /api/v1/join-requests/mine
func (h *JoinRequestHandler) ListMine(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	items, err := h.usecase.ListMyRequests(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// Accept admits the applicant.
// POST /api/v1/join-requests/:id/accept
func (h *JoinRequestHandler) Accept(c *gin.Context) {
	h.transition(c, h.usecase.AcceptRequest)
}

// Reject declines the applicant.
// POST /api/v1/join-requests/:id/reject
func (h *JoinRequestHandler) Reject(c *gin.Context) {
	h.transition(c, h.usecase.RejectRequest)
}

// Cancel withdraws the caller's own request.
// POST /api/v1/join-requests/:id/cancel
func (h *JoinRequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.usecase.CancelRequest)
}

func (h *JoinRequestHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*entities.JoinRequest, error)) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	req, err := fn(c.Request.Context(), actor, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": req})
}

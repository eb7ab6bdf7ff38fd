package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type JoinRequestRepository interface {
	// Create fails with ErrDuplicateRequest when a pending request for the pair exists.
	Create(ctx context.Context, req *entities.JoinRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.JoinRequest, error)
	FindPending(ctx context.Context, candidateID, teamID uuid.UUID) (*entities.JoinRequest, error)
	ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.JoinRequest, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entities.JoinRequest, error)
	CountPendingByCandidate(ctx context.Context, candidateID uuid.UUID) (int64, error)
	// UpdateStatus is guarded on the expected previous status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.JoinRequestStatus) error
	RejectPendingByCandidate(ctx context.Context, candidateID, exceptID uuid.UUID) (int64, error)
	RejectPendingByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
}

package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *entities.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*entities.Candidate, error)
	// Update writes profile fields guarded by candidate.Version and bumps it.
	Update(ctx context.Context, candidate *entities.Candidate) error
	// BumpVersion fails with ErrConcurrencyConflict when the stored version differs.
	BumpVersion(ctx context.Context, id uuid.UUID, expected int64) error
	Count(ctx context.Context) (int64, error)
}

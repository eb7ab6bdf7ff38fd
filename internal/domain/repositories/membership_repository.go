package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type MembershipRepository interface {
	// Create fails with ErrAlreadyMember when the candidate already holds a membership.
	Create(ctx context.Context, membership *entities.Membership) error
	GetByCandidate(ctx context.Context, candidateID uuid.UUID) (*entities.Membership, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
	ListByTeams(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID][]*entities.TeamMember, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	Delete(ctx context.Context, teamID, candidateID uuid.UUID) error
	DeleteByTeam(ctx context.Context, teamID uuid.UUID) error
	CountByRegion(ctx context.Context) (map[entities.RegionCode]int64, error)
}

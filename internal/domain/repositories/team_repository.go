package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
	"github.com/google/uuid"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	// Update persists every mutable column, guarded on team.Version and the
	// expected previous status. The stored version is bumped on success.
	Update(ctx context.Context, team *entities.Team, expected entities.TeamStatus) error
	BumpVersion(ctx context.Context, id uuid.UUID, expected int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.TeamFilter) ([]*entities.Team, int64, error)
	CountByRegionAndStatus(ctx context.Context, region entities.RegionCode, status entities.TeamStatus) (int64, error)
	CountByStatus(ctx context.Context) (map[entities.TeamStatus]int64, error)
	CountByRegionAndTheme(ctx context.Context) ([]entities.RegionThemeCount, error)
}

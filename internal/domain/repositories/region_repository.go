package repositories

import (
	"context"

	"fnct-hackathon.backend/internal/domain/entities"
)

type RegionRepository interface {
	List(ctx context.Context) ([]*entities.Region, error)
	GetByCode(ctx context.Context, code entities.RegionCode) (*entities.Region, error)
	BumpVersion(ctx context.Context, code entities.RegionCode, expected int64) error
}

package repositories

import (
	"context"
	"fmt"

	"fnct-hackathon.backend/internal/domain/entities"
	"fnct-hackathon.backend/internal/infrastructure/models"
	"gorm.io/gorm"
)

const pendingRequestIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_join_requests_pending
	ON join_requests (candidate_id, team_id) WHERE status = 'pending'`

// Migrate creates or updates the schema and seeds the region catalogue.
// It runs against PostgreSQL in production and SQLite in tests.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&models.Region{},
		&models.Candidate{},
		&models.Team{},
		&models.Membership{},
		&models.JoinRequest{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(pendingRequestIndex).Error; err != nil {
		return fmt.Errorf("create pending request index: %w", err)
	}
	if err := NewRegionRepository(db).Seed(ctx, entities.DefaultRegions); err != nil {
		return fmt.Errorf("seed regions: %w", err)
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequest rows carry a partial unique index on (candidate_id, team_id)
// restricted to pending rows; it is created by the migration, not by tags.
type JoinRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

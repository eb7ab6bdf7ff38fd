package models

import (
	"time"

	"github.com/google/uuid"
)

type Membership struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Role        string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time
	Candidate   *Candidate `gorm:"foreignKey:CandidateID"`
}

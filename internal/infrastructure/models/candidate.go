package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Candidate struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	FirstName    string      `gorm:"type:varchar(100);not null"`
	LastName     string      `gorm:"type:varchar(100);not null"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string      `gorm:"type:varchar(32)"`
	Gender       string      `gorm:"type:varchar(1);not null"`
	University   string      `gorm:"type:varchar(255)"`
	Level        string      `gorm:"type:varchar(50)"`
	Major        string      `gorm:"type:varchar(255)"`
	Region       null.String `gorm:"type:varchar(32)"`
	TechSkills   null.JSON   `gorm:"type:jsonb"`
	DomainSkills null.JSON   `gorm:"type:jsonb"`
	CVURL        null.String `gorm:"column:cv_url;type:text"`
	Version      int64       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

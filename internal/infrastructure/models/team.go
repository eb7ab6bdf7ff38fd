package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Team struct {
	ID                        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name                      string      `gorm:"type:varchar(120);not null"`
	Description               string      `gorm:"type:text;not null"`
	RequestProfile            string      `gorm:"type:text"`
	RequestedSkills           null.JSON   `gorm:"type:jsonb"`
	Theme                     string      `gorm:"type:varchar(64);not null;index"`
	SecondaryTheme            null.String `gorm:"type:varchar(64)"`
	SecondaryThemeDescription string      `gorm:"type:text"`
	Region                    string      `gorm:"type:varchar(32);not null;index:idx_teams_region_status"`
	LeaderID                  uuid.UUID   `gorm:"type:uuid;not null"`
	Status                    string      `gorm:"type:varchar(32);not null;default:'draft';index:idx_teams_region_status"`
	QualitativeScore          int         `gorm:"not null;default:0"`
	MotivationURL             null.String `gorm:"type:text"`
	VideoURL                  null.String `gorm:"type:text"`
	PrototypeURL              null.String `gorm:"type:text"`
	SubmittedAt               null.Time
	Version                   int64 `gorm:"not null;default:0"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

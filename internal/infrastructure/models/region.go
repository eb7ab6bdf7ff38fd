package models

import "time"

type Region struct {
	Code          string    `gorm:"type:varchar(32);primaryKey"`
	Name          string    `gorm:"type:varchar(120);not null"`
	HackathonDate time.Time `gorm:"type:date;not null"`
	Version       int64     `gorm:"not null;default:0"`
}

func (Region) TableName() string {
	return "regions"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name             string
	Email            string `gorm:"unique"`
	Password         string
	DOB              *string
	City             *string
	Verified         bool `gorm:"default:false"`
	LastAssessmentAt *time.Time
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null" json:"-"`
	Age           int
	HeightCm      float64
	WeightKg      float64
	ActivityLevel int     // 1 (sedentary) … 5 (athlete)
	Sex           string  // "Male" | "Female"
	BMR           float64 // maintenance calories, recomputed on profile change
	ResetToken    string
	ResetTokenExp time.Time
	Logs          []Log
}

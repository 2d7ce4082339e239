package models

import "gorm.io/gorm"

// Log is one user's nutrition record for a single calendar day.
// At most one log exists per (user, date); the composite unique index
// is what serializes concurrent first-writes of the day.
type Log struct {
	gorm.Model
	UserID  uint       `gorm:"uniqueIndex:idx_logs_user_date;not null" json:"userId"`
	Date    string     `gorm:"size:10;uniqueIndex:idx_logs_user_date;not null" json:"date"` // YYYY-MM-DD
	Entries []LogEntry `gorm:"constraint:OnDelete:CASCADE" json:"entries,omitempty"`
}

// LogEntry is one recorded food item. Nutrition values are a snapshot
// for the recorded quantity: whole kcal, macro grams to one decimal.
type LogEntry struct {
	gorm.Model
	LogID    uint    `gorm:"index;not null" json:"logId"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Fat      float64 `json:"fat"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
}

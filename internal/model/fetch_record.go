package model

import "time"

// Fetch outcomes recorded in the diagnostics journal.
const (
	OutcomeLoaded    = "loaded"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

// FetchRecord is one finished fetch cycle, kept for diagnostics only.
type FetchRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID    string    `gorm:"size:36;index;not null" json:"sessionId"`
	Cycle        uint64    `gorm:"not null" json:"cycle"`
	StartedAt    time.Time `gorm:"not null" json:"startedAt"`
	FinishedAt   time.Time `gorm:"not null;index" json:"finishedAt"`
	Outcome      string    `gorm:"size:16;not null" json:"outcome"`
	ErrorKind    string    `gorm:"size:16" json:"errorKind,omitempty"`
	ErrorMessage string    `gorm:"size:512" json:"errorMessage,omitempty"`
	MealID       string    `gorm:"size:32" json:"mealId,omitempty"`
	MealName     string    `gorm:"size:256" json:"mealName,omitempty"`
}

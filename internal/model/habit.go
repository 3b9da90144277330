package model

import "time"

// Defaults applied when a habit is created without the optional fields.
const (
	DefaultCategory   = "other"
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	DefaultTargetDays = 1
)

// Habit represents a row in the `habits` table. A habit belongs to
// exactly one user and is only ever read or written through that
// user's identity.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owner of the habit.
//  Name       – free text name shown to the user.
//  Category   – enum-like grouping, "other" by default.
//  Frequency  – "daily" or "weekly".
//  TargetDays – completions wanted per period, at least 1.
//  IsActive   – whether the habit is currently tracked.
//  CreatedAt  – creation timestamp.
type Habit struct {
	ID         uint64    `json:"id"`          // habits.id
	UserID     uint64    `json:"user_id"`     // habits.user_id
	Name       string    `json:"name"`        // habits.name
	Category   string    `json:"category"`    // habits.category
	Frequency  string    `json:"frequency"`   // habits.frequency
	TargetDays int       `json:"target_days"` // habits.target_days
	IsActive   bool      `json:"is_active"`   // habits.is_active
	CreatedAt  time.Time `json:"created_at"`  // habits.created_at
}

// HabitFields is the full set of user-editable habit attributes. Create
// and Update both take a complete HabitFields; defaults are applied
// before it reaches the repository.
type HabitFields struct {
	Name       string
	Category   string
	Frequency  string
	TargetDays int
	IsActive   bool
}

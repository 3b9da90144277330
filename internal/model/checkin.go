package model

import "time"

// DateLayout is the calendar date format used for checkins.
const DateLayout = "2006-01-02"

// HistoryLimit caps how many checkins a history read returns.
const HistoryLimit = 30

// Checkin models a row in the `checkins` table: the completion status
// of one habit on one calendar date. There is at most one row per
// (habit_id, date). UserID is denormalized from the owning habit.
//
// Fields:
//  ID        – primary key identifier.
//  HabitID   – habit this checkin belongs to.
//  UserID    – owner, always equal to the habit's user_id.
//  Date      – calendar date (YYYY-MM-DD).
//  Completed – whether the habit was done that day.
//  Notes     – optional free text (nullable).
//  UpdatedAt – last modification timestamp.
type Checkin struct {
	ID        uint64    // checkins.id
	HabitID   uint64    // checkins.habit_id
	UserID    uint64    // checkins.user_id
	Date      string    // checkins.date
	Completed bool      // checkins.completed
	Notes     *string   // checkins.notes (nullable)
	UpdatedAt time.Time // checkins.updated_at
}

// CheckinEntry is the public shape of a checkin in a history listing.
type CheckinEntry struct {
	Date      string  `json:"date"`
	Completed bool    `json:"completed"`
	Notes     *string `json:"notes"`
}

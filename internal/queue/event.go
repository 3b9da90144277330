// Package queue defines the activity events exchanged over the message
// broker and the consumer that records them.
package queue

import (
	"fmt"
	"time"
)

// ActivityQueue is the durable queue every activity event is routed to.
const ActivityQueue = "habit.activity"

// Activity event types.
const (
	EventHabitCreated    = "habit.created"
	EventHabitUpdated    = "habit.updated"
	EventHabitDeleted    = "habit.deleted"
	EventCheckinRecorded = "checkin.recorded"
)

// ActivityEvent is published after a successful write to a user's habits
// or checkins. It carries enough for consumers to log or aggregate without
// reading the primary database.
type ActivityEvent struct {
	Type       string `json:"type"`
	UserID     uint64 `json:"user_id"`
	HabitID    uint64 `json:"habit_id"`
	HabitName  string `json:"habit_name,omitempty"`
	Date       string `json:"date,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewActivityEvent stamps an event with the current UTC time.
func NewActivityEvent(typ string, userID, habitID uint64) ActivityEvent {
	return ActivityEvent{
		Type:       typ,
		UserID:     userID,
		HabitID:    habitID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Line renders the event as one log line.
func (ev ActivityEvent) Line() string {
	line := fmt.Sprintf("[%s] %s | user_id=%d | habit_id=%d", ev.OccurredAt, ev.Type, ev.UserID, ev.HabitID)
	if ev.HabitName != "" {
		line += fmt.Sprintf(" | name=%q", ev.HabitName)
	}
	if ev.Date != "" {
		line += " | date=" + ev.Date
	}
	return line + "\n"
}

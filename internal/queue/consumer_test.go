package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleMessageAppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	created := ActivityEvent{Type: EventHabitCreated, UserID: 1, HabitID: 5, HabitName: "Read", OccurredAt: "2026-10-16T08:00:00Z"}
	checkin := ActivityEvent{Type: EventCheckinRecorded, UserID: 1, HabitID: 5, Date: "2026-10-16", OccurredAt: "2026-10-16T08:01:00Z"}
	for _, ev := range []ActivityEvent{created, checkin} {
		body, _ := json.Marshal(ev)
		if err := handleMessage(dir, body); err != nil {
			t.Fatalf("handleMessage() error = %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, ActivityLogName))
	if err != nil {
		t.Fatalf("read activity log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	want0 := `[2026-10-16T08:00:00Z] habit.created | user_id=1 | habit_id=5 | name="Read"`
	if lines[0] != want0 {
		t.Errorf("line 0 = %q, want %q", lines[0], want0)
	}
	want1 := `[2026-10-16T08:01:00Z] checkin.recorded | user_id=1 | habit_id=5 | date=2026-10-16`
	if lines[1] != want1 {
		t.Errorf("line 1 = %q, want %q", lines[1], want1)
	}
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{"},
		{"missing type", `{"user_id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := handleMessage(dir, []byte(tt.body)); err == nil {
				t.Error("handleMessage() accepted a bad payload")
			}
		})
	}
	if _, err := os.Stat(filepath.Join(dir, ActivityLogName)); !os.IsNotExist(err) {
		t.Error("bad payloads must not create the activity log")
	}
}

func TestNewActivityEvent(t *testing.T) {
	ev := NewActivityEvent(EventHabitDeleted, 3, 9)
	if ev.Type != EventHabitDeleted || ev.UserID != 3 || ev.HabitID != 9 || ev.OccurredAt == "" {
		t.Errorf("NewActivityEvent() = %+v", ev)
	}
}

// Package validation normalizes and checks request payloads before they
// reach the repositories. Every failure is an *Error carrying a message
// that is safe to return to the client as-is.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/habit-tracker/internal/model"
)

// Field limits.
const (
	UsernameMinLen  = 3
	UsernameMaxLen  = 50
	PasswordMinLen  = 6
	PasswordMaxLen  = 72 // bcrypt ignores anything past 72 bytes
	EmailMaxLen     = 255
	HabitNameMaxLen = 100
	CategoryMaxLen  = 50
	TargetDaysMax   = 365
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Error describes one invalid field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}

// RegisterInput is the register payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register checks a registration payload and returns it normalized:
// username trimmed, email trimmed and lower-cased. The password is
// never altered.
func Register(in RegisterInput) (RegisterInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	n := utf8.RuneCountInString(in.Username)
	if n < UsernameMinLen || n > UsernameMaxLen {
		return in, invalid("username", fmt.Sprintf("Username must be %d-%d characters", UsernameMinLen, UsernameMaxLen))
	}
	if !usernamePattern.MatchString(in.Username) {
		return in, invalid("username", "Username may only contain letters, digits, '_', '.' and '-'")
	}

	email, err := Email(in.Email)
	if err != nil {
		return in, err
	}
	in.Email = email

	if len(in.Password) < PasswordMinLen || len(in.Password) > PasswordMaxLen {
		return in, invalid("password", fmt.Sprintf("Password must be %d-%d characters", PasswordMinLen, PasswordMaxLen))
	}
	return in, nil
}

// Email accepts a single bare address and returns it lower-cased.
func Email(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", invalid("email", "Email is required")
	}
	if len(s) > EmailMaxLen {
		return "", invalid("email", fmt.Sprintf("Email must be at most %d characters", EmailMaxLen))
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", invalid("email", "Email is invalid")
	}
	return strings.ToLower(addr.Address), nil
}

// HabitInput is the create/update payload. Pointer fields are optional
// and fall back to the create-time defaults when omitted.
type HabitInput struct {
	Name       string  `json:"name"`
	Category   *string `json:"category"`
	Frequency  *string `json:"frequency"`
	TargetDays *int    `json:"target_days"`
	IsActive   *bool   `json:"is_active"`
}

// NewHabit validates a create payload. New habits are always active.
func NewHabit(in HabitInput) (model.HabitFields, error) {
	in.IsActive = nil
	return habitFields(in)
}

// HabitUpdate validates an update payload. Updates replace every field,
// so omitted fields are reset to their defaults.
func HabitUpdate(in HabitInput) (model.HabitFields, error) {
	return habitFields(in)
}

func habitFields(in HabitInput) (model.HabitFields, error) {
	f := model.HabitFields{
		Name:       strings.TrimSpace(in.Name),
		Category:   model.DefaultCategory,
		Frequency:  model.FrequencyDaily,
		TargetDays: model.DefaultTargetDays,
		IsActive:   true,
	}

	if f.Name == "" {
		return f, invalid("name", "Habit name is required")
	}
	if utf8.RuneCountInString(f.Name) > HabitNameMaxLen {
		return f, invalid("name", fmt.Sprintf("Habit name must be at most %d characters", HabitNameMaxLen))
	}

	if in.Category != nil {
		if c := strings.ToLower(strings.TrimSpace(*in.Category)); c != "" {
			f.Category = c
		}
	}
	if utf8.RuneCountInString(f.Category) > CategoryMaxLen {
		return f, invalid("category", fmt.Sprintf("Category must be at most %d characters", CategoryMaxLen))
	}

	if in.Frequency != nil {
		if fr := strings.ToLower(strings.TrimSpace(*in.Frequency)); fr != "" {
			f.Frequency = fr
		}
	}
	if f.Frequency != model.FrequencyDaily && f.Frequency != model.FrequencyWeekly {
		return f, invalid("frequency", "Frequency must be 'daily' or 'weekly'")
	}

	if in.TargetDays != nil {
		f.TargetDays = *in.TargetDays
	}
	if f.TargetDays < 1 || f.TargetDays > TargetDaysMax {
		return f, invalid("target_days", fmt.Sprintf("Target days must be between 1 and %d", TargetDaysMax))
	}

	if in.IsActive != nil {
		f.IsActive = *in.IsActive
	}
	return f, nil
}

// ID parses a path id. Only positive integers are accepted.
func ID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

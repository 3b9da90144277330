package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/model"
	"github.com/iliyamo/habit-tracker/internal/repository"
	"github.com/iliyamo/habit-tracker/internal/utils"
)

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-secret-for-habit-tracker"

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open("sqlite", database.SQLiteDSN(filepath.Join(t.TempDir(), "habits.db")))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// CreateTestUser registers a user directly in the store and returns its ID
func CreateTestUser(t *testing.T, db *database.DB, username, email, password string) uint64 {
	t.Helper()

	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	id, err := repository.NewUserRepo(db).Create(context.Background(), username, email, hash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateTestHabit creates a daily habit for userID and returns its ID
func CreateTestHabit(t *testing.T, db *database.DB, userID uint64, name string) uint64 {
	t.Helper()

	id, err := repository.NewHabitRepo(db).Create(context.Background(), userID, model.HabitFields{
		Name:       name,
		Category:   model.DefaultCategory,
		Frequency:  model.FrequencyDaily,
		TargetDays: model.DefaultTargetDays,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("Failed to create test habit: %v", err)
	}
	return id
}

// CountCheckins returns the number of checkin rows for a habit on a date
func CountCheckins(t *testing.T, db *database.DB, habitID uint64, date string) int {
	t.Helper()

	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM checkins WHERE habit_id = ? AND date = ?", habitID, date).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count checkins: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns the Authorization header for a token
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

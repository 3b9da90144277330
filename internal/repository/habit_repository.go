// Package repository contains data access logic separated from HTTP handlers.
// This file holds the habit queries. Every statement carries the owning
// user's id in its predicate so one user can never read or change another
// user's habits.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/model"
)

// HabitRepo encapsulates all database queries related to habits.
type HabitRepo struct {
	db *database.DB
}

// NewHabitRepo constructs a HabitRepo with the provided DB handle.
func NewHabitRepo(db *database.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

const habitColumns = "id, user_id, name, category, frequency, target_days, is_active, created_at"

// ListByUser returns all habits owned by userID, newest first.
func (r *HabitRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Habit, error) {
	const q = `SELECT ` + habitColumns + `
	           FROM habits WHERE user_id = ?
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	out := []model.Habit{}
	for rows.Next() {
		var (
			h       model.Habit
			created dbTime
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Category, &h.Frequency,
			&h.TargetDays, &h.IsActive, &created); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		h.CreatedAt = created.Time
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new habit for userID and returns its id. Callers pass
// fully defaulted fields.
func (r *HabitRepo) Create(ctx context.Context, userID uint64, f model.HabitFields) (uint64, error) {
	const q = `INSERT INTO habits (user_id, name, category, frequency, target_days, is_active, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	id, err := r.db.InsertID(ctx, q, userID, f.Name, f.Category, f.Frequency, f.TargetDays, f.IsActive, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert habit: %w", err)
	}
	return id, nil
}

// GetByIDAndOwner fetches a habit by id but only if it belongs to the
// specified user. A missing or foreign habit yields ErrNotFound.
func (r *HabitRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (model.Habit, error) {
	const q = `SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND user_id = ?`
	var (
		h       model.Habit
		created dbTime
	)
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(&h.ID, &h.UserID, &h.Name, &h.Category,
		&h.Frequency, &h.TargetDays, &h.IsActive, &created)
	if err != nil {
		return model.Habit{}, notFound(err)
	}
	h.CreatedAt = created.Time
	return h, nil
}

// Update replaces every editable field of the habit if it belongs to
// userID. Zero affected rows means not found or not owned; both are
// reported as ErrNotFound.
func (r *HabitRepo) Update(ctx context.Context, id, userID uint64, f model.HabitFields) error {
	const q = `UPDATE habits
	           SET name = ?, category = ?, frequency = ?, target_days = ?, is_active = ?
	           WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Category, f.Frequency, f.TargetDays, f.IsActive, id, userID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return affectedOrNotFound(res)
}

// Delete removes the habit if it belongs to userID. Its checkins go with
// it through the foreign key cascade.
func (r *HabitRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return affectedOrNotFound(res)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/model"
)

// CheckinRepo persists daily completions. "Today" is the calendar date in
// loc, which is fixed per process (UTC unless configured otherwise).
type CheckinRepo struct {
	db  *database.DB
	loc *time.Location
	now func() time.Time
}

// NewCheckinRepo builds a CheckinRepo whose days roll over at midnight in
// loc. A nil loc means UTC.
func NewCheckinRepo(db *database.DB, loc *time.Location) *CheckinRepo {
	if loc == nil {
		loc = time.UTC
	}
	return &CheckinRepo{db: db, loc: loc, now: time.Now}
}

// WithClock returns a copy of the repo that reads time from now.
func (r *CheckinRepo) WithClock(now func() time.Time) *CheckinRepo {
	cp := *r
	cp.now = now
	return &cp
}

// Today returns the current calendar date in the repo's location.
func (r *CheckinRepo) Today() string {
	return r.now().In(r.loc).Format(model.DateLayout)
}

// RecordToday marks the habit completed for today. The habit must exist
// and belong to userID, otherwise ErrNotFound is returned. The write is a
// single upsert on the (habit_id, date) unique key, so repeated or
// concurrent calls leave exactly one row and only refresh updated_at.
func (r *CheckinRepo) RecordToday(ctx context.Context, userID, habitID uint64) (model.Checkin, error) {
	if err := r.ensureOwned(ctx, userID, habitID); err != nil {
		return model.Checkin{}, err
	}

	now := r.now()
	c := model.Checkin{
		HabitID:   habitID,
		UserID:    userID,
		Date:      now.In(r.loc).Format(model.DateLayout),
		Completed: true,
		UpdatedAt: now.UTC(),
	}
	q := `INSERT INTO checkins (habit_id, user_id, date, completed, updated_at)
	      VALUES (?, ?, ?, ?, ?) ` +
		r.db.Dialect.OnConflictUpdate([]string{"habit_id", "date"}, []string{"completed", "updated_at"})
	if _, err := r.db.ExecContext(ctx, q, c.HabitID, c.UserID, c.Date, c.Completed, c.UpdatedAt); err != nil {
		return model.Checkin{}, fmt.Errorf("upsert checkin: %w", err)
	}
	return c, nil
}

// History returns the most recent checkins of a habit owned by userID,
// newest date first and at most model.HistoryLimit rows. Both habit_id and
// user_id are filtered on.
func (r *CheckinRepo) History(ctx context.Context, userID, habitID uint64) ([]model.CheckinEntry, error) {
	if err := r.ensureOwned(ctx, userID, habitID); err != nil {
		return nil, err
	}

	const q = `SELECT date, completed, notes
	           FROM checkins
	           WHERE habit_id = ? AND user_id = ?
	           ORDER BY date DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, habitID, userID, model.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	out := []model.CheckinEntry{}
	for rows.Next() {
		var (
			e     model.CheckinEntry
			date  dbDate
			notes sql.NullString
		)
		if err := rows.Scan(&date, &e.Completed, &notes); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		e.Date = date.Value
		if notes.Valid {
			s := notes.String
			e.Notes = &s
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ensureOwned confirms that habitID exists and belongs to userID.
func (r *CheckinRepo) ensureOwned(ctx context.Context, userID, habitID uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM habits WHERE id = ? AND user_id = ?", habitID, userID).Scan(&one)
	if err != nil {
		return notFound(err)
	}
	return nil
}

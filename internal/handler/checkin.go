package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/queue"
	"github.com/iliyamo/habit-tracker/internal/repository"
)

// CheckIn marks the habit completed for today. Calling it again on the
// same day succeeds and leaves a single record.
func (h *HabitHandler) CheckIn(c echo.Context) error {
	me, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathHabitID(c)
	if !ok {
		return habitNotFound(c)
	}

	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	rec, err := h.Checkins.RecordToday(ctx, me.UserID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return habitNotFound(c)
		}
		return internalError(c, "record checkin", err)
	}

	ev := queue.NewActivityEvent(queue.EventCheckinRecorded, me.UserID, id)
	ev.Date = rec.Date
	h.Events.Emit(ev)

	return c.JSON(http.StatusOK, echo.Map{"message": "Check-in recorded for today!", "date": rec.Date})
}

// History lists up to 30 of the habit's most recent checkins.
func (h *HabitHandler) History(c echo.Context) error {
	me, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathHabitID(c)
	if !ok {
		return habitNotFound(c)
	}

	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	entries, err := h.Checkins.History(ctx, me.UserID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return habitNotFound(c)
		}
		return internalError(c, "checkin history", err)
	}
	return c.JSON(http.StatusOK, entries)
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/queue"
	"github.com/iliyamo/habit-tracker/internal/repository"
	"github.com/iliyamo/habit-tracker/internal/service"
	"github.com/iliyamo/habit-tracker/internal/validation"
)

// HabitHandler serves the owner-scoped habit and checkin endpoints. Every
// read and write is filtered by the caller's user id.
type HabitHandler struct {
	Habits   *repository.HabitRepo
	Checkins *repository.CheckinRepo
	Events   *service.Dispatcher
	Timeout  time.Duration
}

func NewHabitHandler(habits *repository.HabitRepo, checkins *repository.CheckinRepo, events *service.Dispatcher, timeout time.Duration) *HabitHandler {
	if habits == nil || checkins == nil {
		panic("nil repository passed to NewHabitHandler")
	}
	return &HabitHandler{Habits: habits, Checkins: checkins, Events: events, Timeout: timeout}
}

// ListHabits returns the caller's habits, newest first.
func (h *HabitHandler) ListHabits(c echo.Context) error {
	me, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	habits, err := h.Habits.ListByUser(ctx, me.UserID)
	if err != nil {
		return internalError(c, "list habits", err)
	}
	return c.JSON(http.StatusOK, habits)
}

// CreateHabit adds a habit owned by the caller.
func (h *HabitHandler) CreateHabit(c echo.Context) error {
	me, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	var req validation.HabitInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	fields, err := validation.NewHabit(req)
	if err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	id, err := h.Habits.Create(ctx, me.UserID, fields)
	if err != nil {
		return internalError(c, "create habit", err)
	}

	ev := queue.NewActivityEvent(queue.EventHabitCreated, me.UserID, id)
	ev.HabitName = fields.Name
	h.Events.Emit(ev)

	return c.JSON(http.StatusCreated, echo.Map{"message": "Habit created", "habitId": id})
}

// UpdateHabit replaces every editable field of a habit owned by the caller.
func (h *HabitHandler) UpdateHabit(c echo.Context) error {
	me, ok := caller(c)
	if !ok {
		return unauthorized(c)
	}
	id, ok := pathHabitID(c)
	if !ok {
		return habitNotFound(c)
	}
	var req validation.HabitInput
	if err := c.Bind(&req); err != nil {
		return badRequest(c, msgInvalidBody)
	}
	fields, err := validation.HabitUpdate(req)
	if err != nil {
		return validationFailed(c, err)
	}

	ctx, cancel := dbContext(c, h.Timeout)
	defer cancel()

	if err := h.Habits.Update(ctx, id, me.UserID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return habitNotFound(c)
		}
		return internalError(c, "update habit", err)
	}

	ev := queue.NewActivityEvent(queue.EventHabitUpdated, me.UserID, id)
	ev.HabitName = fields.Name
	h.Events.Emit(ev)

	return c.JSON(http.StatusOK, echo.Map{"message": "Habit updated"})
}

// DeleteHabit removes a habit owned by the caller together with its checkins.
func (h *HabitHandler) DeleteHabit(c echo.Context) error {
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

	if err := h.Habits.Delete(ctx, id, me.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return habitNotFound(c)
		}
		return internalError(c, "delete habit", err)
	}

	h.Events.Emit(queue.NewActivityEvent(queue.EventHabitDeleted, me.UserID, id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Habit deleted"})
}

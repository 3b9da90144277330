package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/logger"
	"github.com/iliyamo/habit-tracker/internal/middleware"
	"github.com/iliyamo/habit-tracker/internal/model"
	"github.com/iliyamo/habit-tracker/internal/validation"
)

// Response messages shared by several handlers.
const (
	msgInternal      = "Internal server error"
	msgInvalidBody   = "Invalid request body"
	msgHabitNotFound = "Habit not found"
)

// defaultTimeout bounds storage work when a handler is built without one.
const defaultTimeout = 5 * time.Second

// dbContext derives the context for storage calls from the request.
func dbContext(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(c.Request().Context(), d)
}

// caller returns the authenticated identity. Routes are only reachable
// through JWTAuth, so a missing identity is treated like a missing token.
func caller(c echo.Context) (model.Identity, bool) {
	return middleware.IdentityFrom(c)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": middleware.MsgTokenRequired})
}

// pathHabitID parses :id. Anything but a positive integer is answered as a
// missing habit so that probing ids reveals nothing.
func pathHabitID(c echo.Context) (uint64, bool) {
	return validation.ID(c.Param("id"))
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func habitNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": msgHabitNotFound})
}

// validationFailed answers a *validation.Error with its message.
func validationFailed(c echo.Context, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return badRequest(c, verr.Message)
	}
	return badRequest(c, msgInvalidBody)
}

// internalError logs err with the request id and answers with a generic
// message. Details never reach the client.
func internalError(c echo.Context, op string, err error) error {
	logger.Error(op,
		"err", err,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
}

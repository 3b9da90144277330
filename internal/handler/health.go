package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/logger"
)

// Root answers GET / with a plain text banner.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Habit Tracker API is running")
}

// Health is a liveness probe for load balancers and monitoring.  It
// returns a plain text "ok" without touching the database.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Ready returns a readiness probe that pings the store and reports the
// row count of every application table.
func Ready(db *database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("readiness ping failed", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		counts, err := db.TableCounts(ctx)
		if err != nil {
			logger.Warn("readiness counts failed", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status": "ready",
			"driver": db.Dialect.Name(),
			"tables": counts,
		})
	}
}

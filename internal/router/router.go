package router // package router defines how HTTP routes are registered for the API

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/handler"
	"github.com/iliyamo/habit-tracker/internal/logger"
	"github.com/iliyamo/habit-tracker/internal/middleware"
)

// Options carries everything the HTTP layer needs. Cache may be nil.
type Options struct {
	Prefix      string
	CORSOrigins []string
	DB          *database.DB
	Auth        *handler.AuthHandler
	Habits      *handler.HabitHandler
	Verifier    middleware.TokenVerifier
	Cache       *middleware.UserCache
}

// New builds the Echo instance with the shared middleware stack and every
// route registered.
func New(o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger())
	origins := o.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	RegisterRoutes(e, o.DB)
	RegisterAuth(e, o.Prefix, o.Auth)
	RegisterHabits(e, o.Prefix, o.Habits, o.Verifier, o.Cache)
	return e
}

// RegisterRoutes registers the unauthenticated service routes: the root
// banner, liveness and readiness.
func RegisterRoutes(e *echo.Echo, db *database.DB) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
}

// RegisterAuth registers register and login under <prefix>/auth. Neither
// requires a token.
func RegisterAuth(e *echo.Echo, prefix string, a *handler.AuthHandler) {
	g := e.Group(prefix + "/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterHabits registers the habit and checkin routes. All of them sit
// behind JWTAuth, followed by the per-user response cache.
func RegisterHabits(e *echo.Echo, prefix string, h *handler.HabitHandler, v middleware.TokenVerifier, cache *middleware.UserCache) {
	g := e.Group(prefix, middleware.JWTAuth(v), cache.Middleware())

	g.GET("/habits", h.ListHabits)
	g.POST("/habits", h.CreateHabit)
	g.PUT("/habits/:id", h.UpdateHabit)
	g.DELETE("/habits/:id", h.DeleteHabit)

	g.POST("/habits/:id/checkins", h.CheckIn)
	g.GET("/habits/:id/checkins", h.History)
}

// requestLogger writes one structured line per request.
func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			kv := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				kv = append(kv, "err", v.Error)
			}
			if v.Status >= 500 {
				logger.Error("request", kv...)
			} else {
				logger.Info("request", kv...)
			}
			return nil
		},
	})
}

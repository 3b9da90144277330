package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/habit-tracker/internal/config"
	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/handler"
	"github.com/iliyamo/habit-tracker/internal/logger"
	"github.com/iliyamo/habit-tracker/internal/middleware"
	"github.com/iliyamo/habit-tracker/internal/queue"
	"github.com/iliyamo/habit-tracker/internal/repository"
	"github.com/iliyamo/habit-tracker/internal/router"
	"github.com/iliyamo/habit-tracker/internal/service"
	"github.com/iliyamo/habit-tracker/internal/utils"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "err", err)
	}

	logCloser, err := logger.Init(logger.Config{Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		logger.Fatal("init logger", "err", err)
	}
	defer logCloser.Close()

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logger.Fatal("open database", "driver", cfg.DBDriver, "err", err)
	}
	defer db.Close()

	if !cfg.SkipSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			logger.Fatal("ensure schema", "err", err)
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Warn("redis unavailable, response cache disabled", "addr", cfg.Redis.Addr)
	} else {
		defer rdb.Close()
	}
	cache := middleware.NewUserCache(cfg.Cache, rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub service.Publisher = service.NoopPublisher{}
	if cfg.EventsEnabled {
		amqpPub := service.NewAMQPPublisher(cfg.RabbitURL)
		defer amqpPub.Close()
		pub = amqpPub
		go func() {
			if err := queue.StartActivityConsumer(ctx, cfg.RabbitURL, cfg.LogDir); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("activity consumer stopped", "err", err)
			}
		}()
	}
	events := service.NewDispatcher(pub)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTTL())
	e := router.New(router.Options{
		Prefix:      cfg.APIPrefix,
		CORSOrigins: cfg.CORSOrigins,
		DB:          db,
		Auth:        handler.NewAuthHandler(repository.NewUserRepo(db), tokens, cfg.BcryptCost, cfg.RequestTimeout),
		Habits:      handler.NewHabitHandler(repository.NewHabitRepo(db), repository.NewCheckinRepo(db, cfg.CheckinTZ), events, cfg.RequestTimeout),
		Verifier:    tokens,
		Cache:       cache,
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening",
			"addr", addr,
			"env", cfg.Env,
			"driver", db.Dialect.Name(),
			"prefix", cfg.APIPrefix,
			"cache", cache.Enabled(),
			"events", cfg.EventsEnabled,
			"checkin_tz", cfg.CheckinTZ.String(),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	events.Wait()
}

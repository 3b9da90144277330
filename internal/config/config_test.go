package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "APP_PORT", "API_PREFIX", "DB_DRIVER", "DB_USER", "DB_PASS", "DB_HOST",
		"DB_PORT", "DB_NAME", "DB_DSN", "DB_SKIP_SCHEMA", "JWT_SECRET", "ACCESS_TOKEN_TTL_MIN",
		"BCRYPT_COST", "CHECKIN_TIMEZONE", "CORS_ORIGINS", "LOG_LEVEL", "LOG_DIR",
		"REQUEST_TIMEOUT", "EVENTS_ENABLED", "RABBITMQ_URL", "AMQP_URL",
		"CACHE_ENABLED", "CACHE_TTL", "CACHE_PREFIX", "CACHE_MAX_BODY_BYTES",
		"REDIS_ENABLED", "REDIS_ADDR", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TLS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Env != "dev" || cfg.Port != "8000" || cfg.APIPrefix != "/api" {
		t.Errorf("server defaults = %q %q %q", cfg.Env, cfg.Port, cfg.APIPrefix)
	}
	if cfg.DBDriver != "mysql" || cfg.DBHost != "127.0.0.1" || cfg.DBPort != "3306" || cfg.DBUser != "root" || cfg.DBName != "habit_tracker" {
		t.Errorf("db defaults = %+v", cfg)
	}
	if cfg.AccessTTL() != time.Hour {
		t.Errorf("AccessTTL() = %v, want 1h", cfg.AccessTTL())
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.CheckinTZ != time.UTC {
		t.Errorf("CheckinTZ = %v, want UTC", cfg.CheckinTZ)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.EventsEnabled || cfg.SkipSchema {
		t.Error("events and schema skip must default to off")
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 30*time.Second || cfg.Cache.Prefix != "habits" {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 || cfg.Redis.TLS {
		t.Errorf("redis defaults = %+v", cfg.Redis)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("Load() error = %v, want ErrMissingSecret", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("API_PREFIX", "v2/")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("REQUEST_TIMEOUT", "250ms")
	t.Setenv("DB_SKIP_SCHEMA", "yes")
	t.Setenv("EVENTS_ENABLED", "1")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPrefix != "/v2" {
		t.Errorf("APIPrefix = %q, want /v2", cfg.APIPrefix)
	}
	if cfg.AccessTTL() != 15*time.Minute {
		t.Errorf("AccessTTL() = %v", cfg.AccessTTL())
	}
	if strings.Join(cfg.CORSOrigins, "|") != "http://a.test|http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if !cfg.SkipSchema || !cfg.EventsEnabled {
		t.Error("boolean overrides not applied")
	}
	if cfg.Redis.Addr != "cache:6380" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("malformed BCRYPT_COST should fall back to 10, got %d", cfg.BcryptCost)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CHECKIN_TIMEZONE", "Nowhere/Atlantis")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unknown timezone")
	}
}

func TestDSN(t *testing.T) {
	base := Config{DBUser: "u", DBPass: "p", DBHost: "db", DBPort: "3306", DBName: "habits"}

	tests := []struct {
		name   string
		driver string
		dsn    string
		want   string
	}{
		{"mysql", "mysql", "", "u:p@tcp(db:3306)/habits?"},
		{"postgres", "postgres", "", "postgres://u:p@db:3306/habits?sslmode=disable"},
		{"sqlite", "sqlite", "", "file:habits.db?"},
		{"explicit dsn wins", "mysql", "custom-dsn", "custom-dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			c.DBDriver = tt.driver
			c.DBDSN = tt.dsn
			if got := c.DSN(); !strings.HasPrefix(got, tt.want) {
				t.Errorf("DSN() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestPostgresDefaultPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "postgres")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPort != "5432" {
		t.Errorf("DBPort = %q, want 5432", cfg.DBPort)
	}
}

package database

import (
	"context"
	"fmt"
)

// Tables lists the application tables in creation order.
var Tables = []string{"users", "habits", "checkins"}

// EnsureSchema creates the application tables if they do not exist.
func EnsureSchema(ctx context.Context, db *DB) error {
	for i, stmt := range db.Dialect.Schema() {
		if _, err := db.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d (%s): %w", i+1, db.Dialect.Name(), err)
		}
	}
	return nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS habits (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(100) NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'other',
		frequency VARCHAR(10) NOT NULL DEFAULT 'daily',
		target_days INT UNSIGNED NOT NULL DEFAULT 1,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		KEY idx_habits_user_created (user_id, created_at),
		CONSTRAINT fk_habits_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS checkins (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		habit_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		date DATE NOT NULL,
		completed TINYINT(1) NOT NULL DEFAULT 0,
		notes TEXT NULL,
		updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
		UNIQUE KEY uq_checkins_habit_date (habit_id, date),
		KEY idx_checkins_user_habit (user_id, habit_id, date),
		CONSTRAINT fk_checkins_habit FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE,
		CONSTRAINT fk_checkins_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	// usernames are unique regardless of case, as under MySQL's utf8mb4 collation
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_username_lower ON users (LOWER(username))`,
	`CREATE TABLE IF NOT EXISTS habits (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(100) NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'other',
		frequency VARCHAR(10) NOT NULL DEFAULT 'daily',
		target_days INTEGER NOT NULL DEFAULT 1 CHECK (target_days >= 1),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user_created ON habits(user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS checkins (
		id BIGSERIAL PRIMARY KEY,
		habit_id BIGINT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (habit_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checkins_user_habit ON checkins(user_id, habit_id, date)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE COLLATE NOCASE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'other',
		frequency TEXT NOT NULL DEFAULT 'daily',
		target_days INTEGER NOT NULL DEFAULT 1 CHECK (target_days >= 1),
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habits_user_created ON habits(user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS checkins (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		habit_id INTEGER NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date DATE NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT 0,
		notes TEXT,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (habit_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checkins_user_habit ON checkins(user_id, habit_id, date)`,
}

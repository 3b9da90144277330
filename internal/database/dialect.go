package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the handful of places where MySQL, PostgreSQL and SQLite
// disagree: placeholders, generated ids, upserts, constraint errors and DDL.
type Dialect interface {
	Name() string
	DriverName() string
	// Rebind converts '?' placeholders to the dialect's native form.
	Rebind(q string) string
	// UsesReturning reports whether inserts must use RETURNING id.
	UsesReturning() bool
	// OnConflictUpdate returns the clause appended to an INSERT so that a
	// row colliding on the conflict columns is updated in place with the
	// inserted values of the update columns.
	OnConflictUpdate(conflict, update []string) string
	// IsUniqueViolation reports whether err is a unique-key violation.
	IsUniqueViolation(err error) bool
	// Schema returns the CREATE TABLE statements for the application.
	Schema() []string
}

// ErrUnknownDriver is returned by DialectFor for unsupported driver names.
var ErrUnknownDriver = errors.New("unknown database driver")

// DialectFor maps a configured driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "mysql", "mariadb":
		return mysqlDialect{}, nil
	case "postgres", "postgresql", "pg":
		return postgresDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string           { return "mysql" }
func (mysqlDialect) DriverName() string     { return "mysql" }
func (mysqlDialect) Rebind(q string) string { return q }
func (mysqlDialect) UsesReturning() bool    { return false }
func (mysqlDialect) Schema() []string       { return mysqlSchema }

func (mysqlDialect) OnConflictUpdate(_, update []string) string {
	sets := make([]string, len(update))
	for i, c := range update {
		sets[i] = fmt.Sprintf("%s = VALUES(%s)", c, c)
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

func (mysqlDialect) IsUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "1062")
}

type postgresDialect struct{}

func (postgresDialect) Name() string        { return "postgres" }
func (postgresDialect) DriverName() string  { return "postgres" }
func (postgresDialect) UsesReturning() bool { return true }
func (postgresDialect) Schema() []string    { return postgresSchema }

func (postgresDialect) Rebind(q string) string {
	if !strings.Contains(q, "?") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func (postgresDialect) OnConflictUpdate(conflict, update []string) string {
	return onConflictExcluded(conflict, update)
}

func (postgresDialect) IsUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string           { return "sqlite" }
func (sqliteDialect) DriverName() string     { return "sqlite" }
func (sqliteDialect) Rebind(q string) string { return q }
func (sqliteDialect) UsesReturning() bool    { return false }
func (sqliteDialect) Schema() []string       { return sqliteSchema }

func (sqliteDialect) OnConflictUpdate(conflict, update []string) string {
	return onConflictExcluded(conflict, update)
}

func (sqliteDialect) IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// onConflictExcluded renders the standard ON CONFLICT ... DO UPDATE clause
// shared by PostgreSQL and SQLite.
func onConflictExcluded(conflict, update []string) string {
	sets := make([]string, len(update))
	for i, c := range update {
		sets[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflict, ", "), strings.Join(sets, ", "))
}

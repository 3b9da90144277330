package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open("sqlite", SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	return db
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    string
		wantErr bool
	}{
		{"mysql", "mysql", false},
		{"", "mysql", false},
		{"MariaDB", "mysql", false},
		{"postgres", "postgres", false},
		{"pg", "postgres", false},
		{"sqlite", "sqlite", false},
		{"oracle", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := DialectFor(tt.driver)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DialectFor(%q) expected error", tt.driver)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialectFor(%q) error = %v", tt.driver, err)
			}
			if d.Name() != tt.want {
				t.Errorf("DialectFor(%q) = %s, want %s", tt.driver, d.Name(), tt.want)
			}
		})
	}
}

func TestPostgresRebind(t *testing.T) {
	got := postgresDialect{}.Rebind("SELECT id FROM habits WHERE id = ? AND user_id = ?")
	want := "SELECT id FROM habits WHERE id = $1 AND user_id = $2"
	if got != want {
		t.Errorf("Rebind() = %q, want %q", got, want)
	}
	if q := (mysqlDialect{}).Rebind("a = ?"); q != "a = ?" {
		t.Errorf("mysql Rebind changed query: %q", q)
	}
}

func TestOnConflictUpdate(t *testing.T) {
	conflict := []string{"habit_id", "date"}
	update := []string{"completed", "updated_at"}

	my := mysqlDialect{}.OnConflictUpdate(conflict, update)
	if my != "ON DUPLICATE KEY UPDATE completed = VALUES(completed), updated_at = VALUES(updated_at)" {
		t.Errorf("mysql clause = %q", my)
	}
	pg := postgresDialect{}.OnConflictUpdate(conflict, update)
	if pg != "ON CONFLICT (habit_id, date) DO UPDATE SET completed = excluded.completed, updated_at = excluded.updated_at" {
		t.Errorf("postgres clause = %q", pg)
	}
	if lite := (sqliteDialect{}).OnConflictUpdate(conflict, update); lite != pg {
		t.Errorf("sqlite clause = %q, want %q", lite, pg)
	}
}

func TestDSNBuilders(t *testing.T) {
	if got := MySQLDSN("root", "", "db", "3306", "habits"); got != "root@tcp(db:3306)/habits?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true" {
		t.Errorf("MySQLDSN() = %q", got)
	}
	if got := MySQLDSN("app", "pw", "db", "3306", "habits"); !strings.HasPrefix(got, "app:pw@tcp(db:3306)/") {
		t.Errorf("MySQLDSN() with password = %q", got)
	}
	if got := PostgresDSN("app", "pw", "db", "5432", "habits"); got != "postgres://app:pw@db:5432/habits?sslmode=disable" {
		t.Errorf("PostgresDSN() = %q", got)
	}
	if got := SQLiteDSN("/tmp/x.db"); !strings.Contains(got, "foreign_keys(1)") {
		t.Errorf("SQLiteDSN() missing foreign_keys pragma: %q", got)
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("second EnsureSchema() error = %v", err)
	}
	counts, err := db.TableCounts(context.Background())
	if err != nil {
		t.Fatalf("TableCounts() error = %v", err)
	}
	for _, table := range Tables {
		if n, ok := counts[table]; !ok || n != 0 {
			t.Errorf("counts[%s] = %d, %v; want 0, true", table, n, ok)
		}
	}
}

func TestInsertIDAndUniqueViolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	const q = "INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)"
	id, err := db.InsertID(ctx, q, "alice", "alice@x.com", "hash")
	if err != nil {
		t.Fatalf("InsertID() error = %v", err)
	}
	if id == 0 {
		t.Fatal("InsertID() returned zero id")
	}

	_, err = db.InsertID(ctx, q, "alice", "other@x.com", "hash")
	if err == nil {
		t.Fatal("expected unique violation on duplicate username")
	}
	if !db.Dialect.IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
	if db.Dialect.IsUniqueViolation(nil) {
		t.Error("IsUniqueViolation(nil) = true")
	}
}

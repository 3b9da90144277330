package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/model"
)

// UserRepo is the credential store. It only ever sees password hashes.
type UserRepo struct{ DB *database.DB }

func NewUserRepo(db *database.DB) *UserRepo { return &UserRepo{DB: db} }

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uint64, error) {
	id, err := r.DB.InsertID(ctx,
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?,?,?,?)",
		strings.TrimSpace(username), NormalizeEmail(email), passwordHash, time.Now().UTC())
	if err != nil {
		if r.DB.Dialect.IsUniqueViolation(err) {
			return 0, ErrDuplicateIdentity
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetByEmail fetches a user by normalized email. It returns sql.ErrNoRows
// when nobody registered with that address.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var (
		u       model.User
		created dbTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,created_at FROM users WHERE email=? LIMIT 1",
		NormalizeEmail(email)).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created)
	u.CreatedAt = created.Time
	return u, err
}

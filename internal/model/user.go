package model

import "time"

// User represents an application user record as stored in the
// `users` table. Users are created on registration and never
// updated or deleted through the API. The password hash is kept
// out of every JSON response.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique display name.
//  Email        – unique, lower-cased email address used to log in.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of registration.
type User struct {
	ID           uint64    `json:"id"`       // users.id
	Username     string    `json:"username"` // users.username
	Email        string    `json:"email"`    // users.email
	PasswordHash string    `json:"-"`        // users.password_hash
	CreatedAt    time.Time `json:"-"`        // users.created_at
}

// Identity is the authenticated caller resolved from a bearer token.
// It is the only thing downstream handlers know about the user.
type Identity struct {
	UserID   uint64 `json:"id"`
	Username string `json:"username"`
}

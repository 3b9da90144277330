// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Ownership
// is never reported separately: a row owned by someone else is simply
// not found.
package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a habit does not exist or belongs to
// another user. Handlers should translate this into an HTTP 404
// response without saying which of the two it was.
var ErrNotFound = errors.New("not found")

// ErrDuplicateIdentity is returned when registering a username or
// email that is already taken. Handlers should translate this into an
// HTTP 400 response.
var ErrDuplicateIdentity = errors.New("username or email already exists")

// notFound maps sql.ErrNoRows to ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// affectedOrNotFound turns a zero-row mutation into ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

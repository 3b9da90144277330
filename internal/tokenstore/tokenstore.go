// Package tokenstore keeps the CLI's access token in the OS keyring, one
// entry per API base URL.
package tokenstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// Service is the keyring service name entries are stored under.
const Service = "habit-tracker"

var (
	// ErrNotFound is returned when no token is stored for the URL.
	ErrNotFound = errors.New("no stored token, run 'habitctl login' first")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Store reads and writes tokens for one API base URL.
type Store struct {
	account string
}

// New returns a store keyed by apiURL.
func New(apiURL string) *Store {
	return &Store{account: strings.TrimRight(apiURL, "/")}
}

// Get returns the stored token.
func (s *Store) Get() (string, error) {
	tok, err := keyring.Get(Service, s.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return tok, nil
}

// Set stores token, replacing any previous one.
func (s *Store) Set(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(Service, s.account, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Delete forgets the token. Deleting a missing token is not an error.
func (s *Store) Delete() error {
	err := keyring.Delete(Service, s.account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// Package client is a typed Go client for the habit tracker REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/habit-tracker/internal/model"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// Client talks to one API base URL, e.g. http://localhost:8000/api.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent on authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Token returns the current bearer token, empty when logged out.
func (c *Client) Token() string { return c.token }

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) { c.token = token }

// User is the account summary returned by Login.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// HabitRequest is the create/update payload. Nil fields take the server's
// defaults.
type HabitRequest struct {
	Name       string  `json:"name"`
	Category   *string `json:"category,omitempty"`
	Frequency  *string `json:"frequency,omitempty"`
	TargetDays *int    `json:"target_days,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// Register creates an account and returns its id.
func (c *Client) Register(ctx context.Context, username, email, password string) (uint64, error) {
	var out struct {
		UserID uint64 `json:"userId"`
	}
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out, false); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return User{}, err
	}
	c.token = out.Token
	return out.User, nil
}

// ListHabits returns the caller's habits, newest first.
func (c *Client) ListHabits(ctx context.Context) ([]model.Habit, error) {
	var out []model.Habit
	if err := c.do(ctx, http.MethodGet, "/habits", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHabit adds a habit and returns its id.
func (c *Client) CreateHabit(ctx context.Context, req HabitRequest) (uint64, error) {
	var out struct {
		HabitID uint64 `json:"habitId"`
	}
	if err := c.do(ctx, http.MethodPost, "/habits", req, &out, true); err != nil {
		return 0, err
	}
	return out.HabitID, nil
}

// UpdateHabit replaces a habit's fields.
func (c *Client) UpdateHabit(ctx context.Context, id uint64, req HabitRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/habits/%d", id), req, nil, true)
}

// DeleteHabit removes a habit and its checkins.
func (c *Client) DeleteHabit(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/habits/%d", id), nil, nil, true)
}

// CheckIn records today's completion and returns the server's date.
func (c *Client) CheckIn(ctx context.Context, id uint64) (string, error) {
	var out struct {
		Date string `json:"date"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/habits/%d/checkins", id), nil, &out, true); err != nil {
		return "", err
	}
	return out.Date, nil
}

// History returns up to 30 recent checkins, newest first.
func (c *Client) History(ctx context.Context, id uint64) ([]model.CheckinEntry, error) {
	var out []model.CheckinEntry
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/habits/%d/checkins", id), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}, auth bool) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

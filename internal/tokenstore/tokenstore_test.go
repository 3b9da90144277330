package tokenstore

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetGetDelete(t *testing.T) {
	gokeyring.MockInit()

	s := New("http://localhost:8000/api/")
	if err := s.Set("tok-1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get()
	if err != nil || got != "tok-1" {
		t.Fatalf("Get() = %q, %v", got, err)
	}

	// trailing slash does not change the entry
	if got, _ := New("http://localhost:8000/api").Get(); got != "tok-1" {
		t.Errorf("Get() via normalized URL = %q", got)
	}

	if err := s.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestTokensArePerURL(t *testing.T) {
	gokeyring.MockInit()

	a, b := New("http://a.test/api"), New("http://b.test/api")
	if err := a.Set("token-a"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := b.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("b.Get() error = %v, want ErrNotFound", err)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := New("http://a.test").Set(""); err == nil {
		t.Error("Set(\"\") should return an error")
	}
}

func TestKeyringFailure(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus down"))
	if _, err := New("http://a.test").Get(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Get() error = %v, want ErrKeyringUnavailable", err)
	}
}

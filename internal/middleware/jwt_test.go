package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/model"
	"github.com/iliyamo/habit-tracker/internal/utils"
)

type countingVerifier struct {
	calls int
	inner TokenVerifier
}

func (v *countingVerifier) Verify(raw string) (utils.Claims, error) {
	v.calls++
	return v.inner.Verify(raw)
}

func runAuth(t *testing.T, v TokenVerifier, header string) (*httptest.ResponseRecorder, model.Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var (
		got    model.Identity
		called bool
	)
	h := JWTAuth(v)(func(c echo.Context) error {
		called = true
		got, _ = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	return rec, got, called
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestJWTAuth(t *testing.T) {
	issuer := utils.NewTokenIssuer("mw-secret", time.Hour)
	valid, err := issuer.Issue(7, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	expired, err := issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).Issue(7, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreign, err := utils.NewTokenIssuer("other-secret", time.Hour).Issue(7, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
		wantVerify  int
	}{
		{"no header", "", http.StatusUnauthorized, MsgTokenRequired, 0},
		{"scheme only", "Bearer", http.StatusUnauthorized, MsgTokenRequired, 0},
		{"empty token", "Bearer   ", http.StatusUnauthorized, MsgTokenRequired, 0},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, MsgTokenRequired, 0},
		{"garbage token", "Bearer not.a.jwt", http.StatusForbidden, MsgTokenInvalid, 1},
		{"expired token", "Bearer " + expired.Token, http.StatusForbidden, MsgTokenInvalid, 1},
		{"wrong secret", "Bearer " + foreign.Token, http.StatusForbidden, MsgTokenInvalid, 1},
		{"valid token", "Bearer " + valid.Token, http.StatusOK, "", 1},
		{"lower-case scheme", "bearer " + valid.Token, http.StatusOK, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &countingVerifier{inner: issuer}
			rec, id, called := runAuth(t, v, tt.header)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if v.calls != tt.wantVerify {
				t.Errorf("verifier calls = %d, want %d", v.calls, tt.wantVerify)
			}
			if tt.wantStatus != http.StatusOK {
				if called {
					t.Error("next handler ran on a rejected request")
				}
				if msg := errorMessage(t, rec); msg != tt.wantMessage {
					t.Errorf("error = %q, want %q", msg, tt.wantMessage)
				}
				return
			}
			if id.UserID != 7 || id.Username != "alice" {
				t.Errorf("identity = %+v", id)
			}
		})
	}
}

func TestIdentityFromWithoutAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := IdentityFrom(c); ok {
		t.Error("IdentityFrom() ok on unauthenticated context")
	}
	if got := userKey(c); got != "anon" {
		t.Errorf("userKey() = %q, want anon", got)
	}

	SetIdentity(c, model.Identity{UserID: 12, Username: "bob"})
	if got := userKey(c); got != "12" {
		t.Errorf("userKey() = %q, want 12", got)
	}
}

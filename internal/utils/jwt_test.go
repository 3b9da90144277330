package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	issuedAt := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("test-secret", time.Hour).WithClock(fixedClock(issuedAt))

	tok, err := issuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if !tok.Exp.Equal(issuedAt.Add(time.Hour)) {
		t.Errorf("Exp = %v, want %v", tok.Exp, issuedAt.Add(time.Hour))
	}

	claims, err := issuer.Verify(tok.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("claims = %+v, want userId 42 / alice", claims)
	}
	if claims.Subject != "42" {
		t.Errorf("sub = %q, want 42", claims.Subject)
	}
}

func TestVerifyValidityWindow(t *testing.T) {
	issuedAt := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	tok, err := NewTokenIssuer("test-secret", time.Hour).WithClock(fixedClock(issuedAt)).Issue(7, "bob")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"immediately", issuedAt, nil},
		{"59 minutes later", issuedAt.Add(59 * time.Minute), nil},
		{"one second before expiry", issuedAt.Add(time.Hour - time.Second), nil},
		{"61 minutes later", issuedAt.Add(61 * time.Minute), ErrTokenExpired},
		{"next day", issuedAt.Add(24 * time.Hour), ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewTokenIssuer("test-secret", time.Hour).WithClock(fixedClock(tt.at))
			_, err := v.Verify(tok.Token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	good, err := issuer.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreign, err := NewTokenIssuer("other-secret", time.Hour).Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// alg=none token carrying otherwise valid claims
	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	noneStr, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	// HS256 token without exp
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token without exp: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", foreign.Token},
		{"tampered payload", tamper(good.Token)},
		{"alg none", noneStr},
		{"missing exp", noExp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func TestNewTokenIssuerDefaultTTL(t *testing.T) {
	if got := NewTokenIssuer("s", 0).TTL(); got != DefaultAccessTTL {
		t.Errorf("TTL() = %v, want %v", got, DefaultAccessTTL)
	}
}

// tamper flips one character of the payload segment.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	p := []byte(parts[1])
	if p[0] == 'e' {
		p[0] = 'f'
	} else {
		p[0] = 'e'
	}
	parts[1] = string(p)
	return strings.Join(parts, ".")
}

package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"  // errors wraps the parser's failures into our two sentinels
	"strconv" // strconv renders the subject claim
	"time"    // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// DefaultAccessTTL is how long an access token stays valid after issue.
const DefaultAccessTTL = time.Hour

var (
	// ErrTokenInvalid covers malformed tokens, bad signatures and
	// unexpected signing algorithms.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned once the validity window has elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims are the identity claims carried by an access token.  They are
// serialized as userId and username alongside the registered claims
// (sub, iat, exp).
type Claims struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp.  Access tokens are encoded in the Authorization header when
// calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenIssuer signs and verifies HS256 access tokens with a process-wide
// secret.  It holds no server-side state: a token stays valid for its
// whole window once issued.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds an issuer for the given secret.  A non-positive
// ttl falls back to DefaultAccessTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (ti *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *ti
	cp.now = now
	return &cp
}

// TTL reports the validity window of issued tokens.
func (ti *TokenIssuer) TTL() time.Duration { return ti.ttl }

// Issue builds and signs an HS256 JWT for a user.  The JWT includes the
// userId and username claims plus subject (sub), issued at (iat) and
// expiration (exp).
func (ti *TokenIssuer) Issue(userID uint64, username string) (AccessToken, error) {
	now := ti.now().UTC()
	exp := now.Add(ti.ttl)
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(ti.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Verify parses raw, checks its signature and expiry and returns the
// claims.  Every failure is reported as ErrTokenInvalid or
// ErrTokenExpired.
func (ti *TokenIssuer) Verify(raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid || claims.UserID == 0 {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

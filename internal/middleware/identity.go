package middleware

// identity.go holds the helpers that pass the authenticated caller from
// JWTAuth to the handlers and to the per-user cache.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/model"
)

const identityKey = "identity"

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, id model.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller stored by JWTAuth. ok is false when the
// request never went through the auth middleware.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(identityKey).(model.Identity)
	if !ok || id.UserID == 0 {
		return model.Identity{}, false
	}
	return id, true
}

// userKey renders the caller's id for cache keys, "anon" when there is none.
func userKey(c echo.Context) string {
	if id, ok := IdentityFrom(c); ok {
		return strconv.FormatUint(id.UserID, 10)
	}
	return "anon"
}

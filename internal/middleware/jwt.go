package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/habit-tracker/internal/model"
	"github.com/iliyamo/habit-tracker/internal/utils"
)

// Auth failure messages.
const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid or expired token"
)

// TokenVerifier checks a raw bearer token. *utils.TokenIssuer satisfies it.
type TokenVerifier interface {
	Verify(raw string) (utils.Claims, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the caller's Identity on the context.  A request without a
// token is answered with 401 before the verifier is consulted; a token that
// fails verification for any reason (bad signature, malformed, expired)
// gets 403.
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": MsgTokenRequired})
			}

			claims, err := v.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": MsgTokenInvalid})
			}

			SetIdentity(c, model.Identity{UserID: claims.UserID, Username: claims.Username})
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func bearerToken(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

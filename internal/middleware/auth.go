package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/house_help/internal/tokens"
)

const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxIsWorker = "is_worker"
)

type BearerAuth struct {
	JWTSecret []byte
}

func NewBearerAuth(secret []byte) *BearerAuth {
	return &BearerAuth{JWTSecret: secret}
}

func extractBearer(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth validates the access token from the Authorization header and
// stores the claims on the request context. The acting user id comes from
// here and only here, never from request bodies.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := extractBearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		id, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(CtxUserID, uint(id))
		c.Set(CtxRole, claims.Role)
		c.Set(CtxIsWorker, claims.IsWorker)

		return next(c)
	}
}

// UserID reads the authenticated user id set by RequireAuth.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(CtxUserID).(uint)
	return id, ok
}

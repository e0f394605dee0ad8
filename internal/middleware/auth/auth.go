package authmw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akarpov/product_api/internal/models"
	"github.com/akarpov/product_api/internal/tokens"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

type Middleware struct {
	Issuer *tokens.Issuer
}

func New(issuer *tokens.Issuer) *Middleware {
	return &Middleware{Issuer: issuer}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

// RequireAuth rejects requests without a valid bearer token. Malformed and
// expired tokens get the same response body; only the status matters to the
// client.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

// RequireAdmin additionally gates the handler on the admin role.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "access denied: admins only")
		}
		return nil
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		claims, err := m.Issuer.Parse(raw)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token is missing")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, claims.Role)
		return next(c)
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

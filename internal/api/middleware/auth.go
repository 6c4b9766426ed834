package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/profissa/marketplace-api/internal/core/ports"
)

// TokenVerifier validates a bearer token and resolves the identity behind it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*ports.Identity, error)
}

// RequireAuth validates the bearer token and injects the identity into the
// context. Requests without a valid token are rejected with 401.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return err
			}

			identity, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setIdentity(c, token, identity)
			return next(c)
		}
	}
}

// OptionalAuth resolves the identity when a bearer token is present and lets
// the request through anonymously when the header is absent. A present but
// invalid token is still rejected; the ownership rules decide what anonymous
// callers may do.
func OptionalAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}

			token, err := bearerToken(c)
			if err != nil {
				return err
			}
			identity, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setIdentity(c, token, identity)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}

func setIdentity(c echo.Context, token string, identity *ports.Identity) {
	c.Set("user_id", identity.UserID)
	c.Set("role", identity.Role)
	c.Set("token", token)
}

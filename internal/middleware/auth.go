// Package middleware provides request logging, tracing and authentication middleware.
package middleware

import (
	"context"
	"strings"

	"storyhub/internal/auth"
	"storyhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	localUserID = "userID"
	localClaims = "claims"
)

// Authenticator resolves a bearer token to the identity it carries.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return models.RespondWithError(c, models.NewUnauthenticatedError("Not authenticated"))
		}

		claims, err := a.Authenticate(c.UserContext(), token)
		if err != nil {
			if models.IsCode(err, models.CodeInternal) {
				return err
			}
			return models.RespondWithError(c, models.NewUnauthenticatedError("Could not validate credentials"))
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is presented and
// otherwise continues anonymously.
func OptionalAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if claims, err := a.Authenticate(c.UserContext(), token); err == nil {
				setIdentity(c, claims)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller, if any.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localUserID).(uint)
	return id, ok && id != 0
}

// Claims returns the verified token claims of the caller, if any.
func Claims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(localClaims).(*auth.Claims)
	return claims, ok
}

func setIdentity(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals(localUserID, claims.UserID)
	c.Locals(localClaims, claims)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, claims.UserID))
}

// bearerToken reads the token from the Authorization header, falling back to
// the token query parameter for websocket upgrades.
func bearerToken(c *fiber.Ctx) (string, bool) {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}
	if websocket.IsWebSocketUpgrade(c) {
		if token := c.Query("token"); token != "" {
			return token, true
		}
	}
	return "", false
}

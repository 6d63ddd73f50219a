package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"solidgo/internal/auth"
)

// UserIDLocalKey is the key under which RequireAuth stores the
// authenticated user's ID in Fiber's context locals.
const UserIDLocalKey = "user_id"

// RequireAuth verifies a Bearer access token from the Authorization header.
// On success the user ID is stored in context locals; on failure the request
// is rejected through the global error handler with 401.
func RequireAuth(issuer *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization header is missing")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization header format must be Bearer {token}")
		}

		claims, err := issuer.Verify(parts[1], auth.TokenTypeAccess)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		return c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/model"
)

// IdentityLocalKey is the key under which the authenticated caller is stored in locals.
const IdentityLocalKey = "identity"

// TokenParser turns a bearer token into a caller identity.
type TokenParser interface {
	Parse(raw string) (model.Identity, error)
}

// Authenticate requires a valid token in the Authorization header, either "Bearer <jwt>" or the raw JWT.
// Failures are passed to the app's error handler as 401.
func Authenticate(parser TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if scheme, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "Bearer") {
			raw = strings.TrimSpace(rest)
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		id, err := parser.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid bearer token")
		}

		c.Locals(IdentityLocalKey, id)
		return c.Next()
	}
}

// IdentityFrom returns the caller stored by Authenticate.
func IdentityFrom(c *fiber.Ctx) (model.Identity, bool) {
	id, ok := c.Locals(IdentityLocalKey).(model.Identity)
	return id, ok && !id.Anonymous()
}

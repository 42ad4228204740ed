package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/pointboard/internal/auth"
	"github.com/arzan03/pointboard/internal/services"
)

// LocalsClaims is the fiber Locals key holding the caller's *auth.Claims.
const LocalsClaims = "claims"

// AdminMiddleware ensures that only users with the "admin" role reach the
// wrapped routes.
func AdminMiddleware(tokens auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(services.Response{
				Code:    fiber.StatusUnauthorized,
				Message: services.MsgMissingAuth,
			})
		}

		claims, err := tokens.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(services.Response{
				Code:    fiber.StatusUnauthorized,
				Message: services.MsgMissingAuth,
			})
		}

		if !claims.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(services.Response{
				Code:    fiber.StatusForbidden,
				Message: services.MsgForbidden,
			})
		}

		c.Locals(LocalsClaims, claims)
		return c.Next()
	}
}

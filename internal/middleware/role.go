package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/scope"
)

// RoleRequired gates a route to the given roles. It must run after
// JWTProtected so the token is already in context.
func RoleRequired(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := scope.Caller(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		for _, r := range roles {
			if caller.Role == r {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Insufficient role",
		})
	}
}

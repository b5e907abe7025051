package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/utils/jwt"
)

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Used by the public quote form to associate the
// account when one is logged in.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.ValidateToken(token); err == nil {
				c.Locals("user", claims)
			}
		}
		return c.Next()
	}
}

// StaffOnly gates the back-office routes. Runs after AuthMiddleware.
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		var user model.User
		if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if !user.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Staff access required",
			})
		}

		return c.Next()
	}
}

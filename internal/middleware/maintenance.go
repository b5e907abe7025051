package middleware

import (
	"github.com/gofiber/fiber/v2"

	"onehux_backend/pkg/config"
)

// Maintenance short-circuits every request with a fixed payload while the
// maintenance flag is set. The health endpoint stays reachable.
func Maintenance(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Flags.MaintenanceMode {
			return c.Next()
		}
		if c.Path() == "/api/health" {
			return c.Next()
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "We are performing scheduled maintenance. Please check back shortly.",
		})
	}
}

package middlewares

import (
	"seamless/auth"
	"seamless/config"

	"github.com/gofiber/fiber/v2"
)

func OperatorAuth(cfg config.Providers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Api-Key")
		if key == "" || !auth.Equal(key, cfg.OperatorAPIKey) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_API_KEY",
				"data":    nil,
			})
		}
		return c.Next()
	}
}

package middlewares

import (
	"seamless/auth"
	"seamless/config"

	"github.com/gofiber/fiber/v2"
)

func GoldAPIAuth(cfg config.Providers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			AgentCode   string `json:"agent_code"`
			AgentSecret string `json:"agent_secret"`
		}

		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": 0,
				"msg":    "INVALID_JSON",
			})
		}

		if !auth.Equal(body.AgentCode, cfg.GoldAPIAgentCode) ||
			!auth.Equal(body.AgentSecret, cfg.GoldAPIAgentSecret) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status": 0,
				"msg":    "INVALID_AGENT_CREDENTIALS",
			})
		}

		return c.Next()
	}
}

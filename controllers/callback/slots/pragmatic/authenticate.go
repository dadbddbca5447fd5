package pragmatic

import (
	"strings"

	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

func AuthenticateHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.FormValue("token")
		if token == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       providers.PragmaticCodeInvalidParams,
				"description": "Missing required parameters",
			})
		}

		player, balance, err := e.Authenticate(c.Context(), providerName, token)
		if err != nil {
			return formatError(c, err)
		}

		return success(c, strings.ToUpper(player.Currency), balance, fiber.Map{
			"userId": player.PlayID,
			"token":  token,
		})
	}
}

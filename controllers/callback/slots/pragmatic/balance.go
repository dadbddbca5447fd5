package pragmatic

import (
	"seamless/engine"

	"github.com/gofiber/fiber/v2"
)

func BalanceHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.FormValue("userId")

		player, balance, err := e.Balance(c.Context(), providerName, userID, c.FormValue("token"))
		if err != nil {
			return formatError(c, err)
		}

		return success(c, player.Currency, balance, nil)
	}
}

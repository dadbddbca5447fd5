package pragmatic

import (
	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// EndRoundHandler closes a round that ends without a win. The call carries no
// transaction id of its own, so the engine dedups on a synthesized
// settle-<roundId> key.
func EndRoundHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.FormValue("userId")
		roundID := c.FormValue("roundId")
		if userID == "" || roundID == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       providers.PragmaticCodeInvalidParams,
				"description": "Missing required parameters",
			})
		}

		out, err := e.Process(c.Context(), engine.Request{
			Provider:   providerName,
			ExternalID: userID,
			RoundID:    roundID,
			GameCode:   c.FormValue("gameId"),
			Kind:       engine.KindSettle,
			Payout:     decimal.Zero,
			EventTime:  eventTime(c),
		})
		if err != nil {
			return formatError(c, err)
		}

		return success(c, out.Player.Currency, out.Balance, nil)
	}
}

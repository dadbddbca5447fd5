package pragmatic

import (
	"seamless/engine"
	"seamless/helpers"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

func ResultHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.FormValue("userId")
		reference := c.FormValue("reference")
		roundID := c.FormValue("roundId")
		if userID == "" || reference == "" || roundID == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       providers.PragmaticCodeInvalidParams,
				"description": "Missing required parameters",
			})
		}

		amount, err := helpers.ParseAmount(c.FormValue("amount"))
		if err != nil {
			return invalidAmount(c)
		}

		out, err := e.Process(c.Context(), engine.Request{
			Provider:      providerName,
			ExternalID:    userID,
			TransactionID: reference,
			RoundID:       roundID,
			GameCode:      c.FormValue("gameId"),
			Kind:          engine.KindSettle,
			Payout:        amount,
			EventTime:     eventTime(c),
		})
		if err != nil {
			return formatError(c, err)
		}

		return transactionSuccess(c, out)
	}
}

package pragmatic

import (
	"seamless/engine"
	"seamless/helpers"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

// RefundHandler reverses a prior bet. The new ledger row is keyed
// refund-<reference>; the original row is never touched.
func RefundHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.FormValue("userId")
		reference := c.FormValue("reference")
		if userID == "" || reference == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"error":       providers.PragmaticCodeInvalidParams,
				"description": "Missing required parameters",
			})
		}

		amount, err := helpers.ParseAmount(c.FormValue("amount"))
		if err != nil && c.FormValue("amount") != "" {
			return invalidAmount(c)
		}

		out, err := e.Process(c.Context(), engine.Request{
			Provider:   providerName,
			ExternalID: userID,
			RelatedID:  reference,
			RoundID:    c.FormValue("roundId"),
			GameCode:   c.FormValue("gameId"),
			Kind:       engine.KindRefund,
			Payout:     amount,
			EventTime:  eventTime(c),
		})
		if err != nil {
			return formatError(c, err)
		}

		return transactionSuccess(c, out)
	}
}

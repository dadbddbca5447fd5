package pragmatic

import (
	"strconv"
	"time"

	"seamless/engine"
	"seamless/helpers"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

// eventTime parses the provider's epoch-millisecond timestamp; a missing or
// malformed value falls back to receipt time.
func eventTime(c *fiber.Ctx) time.Time {
	if ms, err := strconv.ParseInt(c.FormValue("timestamp"), 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms)
	}
	return time.Now()
}

func invalidAmount(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":       providers.PragmaticCodeInvalidParams,
		"description": "Invalid amount",
	})
}

func BetHandler(e *engine.Engine) fiber.Handler {
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
			Kind:          engine.KindWager,
			Wager:         amount,
			EventTime:     eventTime(c),
		})
		if err != nil {
			return formatError(c, err)
		}

		return transactionSuccess(c, out)
	}
}

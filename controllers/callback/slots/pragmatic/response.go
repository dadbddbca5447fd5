package pragmatic

import (
	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const providerName = "pragmatic"

func formatError(c *fiber.Ctx, err error) error {
	status, body := providers.Get(providerName).FormatError(err, nil)
	return c.Status(status).JSON(body)
}

func success(c *fiber.Ctx, currency string, cash decimal.Decimal, extra fiber.Map) error {
	body := fiber.Map{
		"currency":    currency,
		"cash":        cash.InexactFloat64(),
		"bonus":       0.0,
		"error":       providers.PragmaticCodeOK,
		"description": "Success",
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func transactionSuccess(c *fiber.Ctx, out *engine.Outcome) error {
	return success(c, out.Player.Currency, out.Balance, fiber.Map{
		"transactionId": out.Record.ID,
		"usedPromo":     0,
	})
}

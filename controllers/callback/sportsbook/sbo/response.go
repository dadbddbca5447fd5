package sbo

import (
	"time"

	"seamless/providers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const providerName = "sbo"

// The provider reports and expects times at GMT-4.
var sboZone = time.FixedZone("GMT-4", -4*60*60)

func formatError(c *fiber.Ctx, err error, username string) error {
	status, body := providers.Get(providerName).FormatError(err, map[string]string{"Username": username})
	return c.Status(status).JSON(body)
}

func balanceSuccess(c *fiber.Ctx, username string, balance decimal.Decimal, extra fiber.Map) error {
	body := fiber.Map{
		"ErrorCode":    providers.SboCodeOK,
		"ErrorMessage": "No Error",
		"AccountName":  username,
		"Balance":      balance.InexactFloat64(),
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// parseEventTime accepts the handful of layouts the provider is known to
// send and normalizes to the provider zone.
func parseEventTime(s string) time.Time {
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.In(sboZone)
		}
	}
	return time.Now().In(sboZone)
}

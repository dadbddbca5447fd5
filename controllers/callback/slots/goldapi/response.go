package goldapi

import (
	"time"

	"seamless/helpers"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const providerName = "gold_api"

const timeLayout = "2006-01-02 15:04:05"

func jakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func formatError(c *fiber.Ctx, err error) error {
	status, body := providers.Get(providerName).FormatError(err, nil)
	return c.Status(status).JSON(body)
}

func success(c *fiber.Ctx, balance decimal.Decimal) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":       1,
		"user_balance": helpers.Format2(balance),
	})
}

func failure(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":       0,
		"user_balance": "0.00",
		"msg":          msg,
	})
}

// parseEventTime reads the provider's local-time timestamp (Asia/Jakarta).
func parseEventTime(s string) time.Time {
	if t, err := time.ParseInLocation(timeLayout, s, jakarta()); err == nil {
		return t
	}
	return time.Now().In(jakarta())
}

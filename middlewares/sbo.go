package middlewares

import (
	"seamless/auth"
	"seamless/config"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

func SboAuth(cfg config.Providers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			CompanyKey string `json:"CompanyKey"`
		}

		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"AccountName":  "",
				"Balance":      0,
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Invalid request format",
			})
		}

		if !auth.Equal(body.CompanyKey, cfg.SboCompanyKey) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeCompanyKey,
				"ErrorMessage": "CompanyKey Error",
				"Balance":      0,
			})
		}

		return c.Next()
	}
}

package sbo

import (
	"strings"

	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

type balanceRequest struct {
	CompanyKey string `json:"CompanyKey"`
	Username   string `json:"Username"`
}

func GetBalanceHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req balanceRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Invalid request format",
			})
		}

		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Username is required",
			})
		}

		_, balance, err := e.Balance(c.Context(), providerName, req.Username, "")
		if err != nil {
			return formatError(c, err, req.Username)
		}

		return balanceSuccess(c, req.Username, balance, nil)
	}
}

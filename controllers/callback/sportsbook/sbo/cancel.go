package sbo

import (
	"strings"

	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

type cancelRequest struct {
	CompanyKey   string `json:"CompanyKey"`
	Username     string `json:"Username"`
	TransferCode string `json:"TransferCode"`
	CancelTime   string `json:"CancelTime"`
}

// CancelHandler voids a wager by writing a compensating refund row keyed
// refund-<TransferCode>; the original wager row stays as recorded.
func CancelHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req cancelRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Invalid request format",
			})
		}

		req.Username = strings.TrimSpace(req.Username)
		req.TransferCode = strings.TrimSpace(req.TransferCode)
		if req.Username == "" || req.TransferCode == "" {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Username and TransferCode are required",
			})
		}

		out, err := e.Process(c.Context(), engine.Request{
			Provider:   providerName,
			ExternalID: req.Username,
			RelatedID:  req.TransferCode,
			RoundID:    req.TransferCode,
			Kind:       engine.KindRefund,
			EventTime:  parseEventTime(req.CancelTime),
		})
		if err != nil {
			return formatError(c, err, req.Username)
		}

		return balanceSuccess(c, req.Username, out.Balance, fiber.Map{
			"TransferCode": req.TransferCode,
		})
	}
}

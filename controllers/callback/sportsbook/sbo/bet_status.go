package sbo

import (
	"strings"

	"seamless/engine"
	"seamless/models"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
)

type betStatusRequest struct {
	CompanyKey   string `json:"CompanyKey"`
	Username     string `json:"Username"`
	TransferCode string `json:"TransferCode"`
}

// GetBetStatusHandler reports the round aggregate for a TransferCode:
// running totals plus the derived order status.
func GetBetStatusHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req betStatusRequest
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

		rows, err := e.RoundRecords(c.Context(), providerName, req.TransferCode)
		if err != nil {
			return formatError(c, err, req.Username)
		}
		if len(rows) == 0 {
			return formatError(c, engine.ErrNoBet, req.Username)
		}

		wagered, paid, err := e.RoundTotals(c.Context(), providerName, req.TransferCode)
		if err != nil {
			return formatError(c, err, req.Username)
		}

		status := "Running"
		for _, row := range rows {
			switch row.Status {
			case models.StatusRefund:
				status = "Void"
			case models.StatusPayout:
				if status == "Running" {
					status = "Settled"
				}
			}
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ErrorCode":    providers.SboCodeOK,
			"ErrorMessage": "No Error",
			"AccountName":  req.Username,
			"TransferCode": req.TransferCode,
			"Status":       status,
			"Stake":        wagered.InexactFloat64(),
			"WinLoss":      paid.InexactFloat64(),
		})
	}
}

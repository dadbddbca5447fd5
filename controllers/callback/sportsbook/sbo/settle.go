package sbo

import (
	"strings"
	"time"

	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type settleRequest struct {
	CompanyKey   string  `json:"CompanyKey"`
	Username     string  `json:"Username"`
	TransferCode string  `json:"TransferCode"`
	WinLoss      float64 `json:"WinLoss"`
	ResultType   int     `json:"ResultType"`
	ResultTime   string  `json:"ResultTime"`
	ProductType  int     `json:"ProductType"`
	IsCashOut    bool    `json:"IsCashOut"`
}

// SettleHandler closes a TransferCode. The call carries no transaction id of
// its own; the engine dedups on settle-<TransferCode>. A settle for a
// TransferCode with no recorded wager is rejected as bet-not-found.
func SettleHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req settleRequest
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

		payout := decimal.NewFromFloat(req.WinLoss)
		if payout.IsNegative() {
			payout = decimal.Zero
		}

		out, err := e.Process(c.Context(), engine.Request{
			Provider:     providerName,
			ExternalID:   req.Username,
			RoundID:      req.TransferCode,
			Kind:         engine.KindSettle,
			Payout:       payout,
			RequireRound: true,
			EventTime:    parseEventTime(req.ResultTime),
		})
		if err != nil {
			return formatError(c, err, req.Username)
		}

		return balanceSuccess(c, req.Username, out.Balance, fiber.Map{
			"TransferCode": req.TransferCode,
			"ResultTime":   out.Record.CreatedAt.In(sboZone).Format(time.RFC3339),
		})
	}
}

package sbo

import (
	"strings"

	"seamless/engine"
	"seamless/providers"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type deductRequest struct {
	CompanyKey    string  `json:"CompanyKey"`
	Username      string  `json:"Username"`
	Amount        float64 `json:"Amount"`
	TransferCode  string  `json:"TransferCode"`
	TransactionID string  `json:"TransactionId"`
	BetTime       string  `json:"BetTime"`
	ProductType   int     `json:"ProductType"`
	GameType      int     `json:"GameType"`
	GameID        int     `json:"GameId"`
	Gpid          int     `json:"Gpid"`
}

// DeductHandler places the wager for a TransferCode. Duplicate deliveries of
// the same TransferCode replay the original outcome.
func DeductHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deductRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Invalid request format",
			})
		}

		req.Username = strings.TrimSpace(req.Username)
		req.TransferCode = strings.TrimSpace(req.TransferCode)
		if req.Username == "" || req.TransferCode == "" || req.Amount <= 0 {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ErrorCode":    providers.SboCodeInvalidRequest,
				"ErrorMessage": "Username, TransferCode, and Amount are required",
			})
		}

		wager := decimal.NewFromFloat(req.Amount)
		out, err := e.Process(c.Context(), engine.Request{
			Provider:      providerName,
			ExternalID:    req.Username,
			TransactionID: req.TransferCode,
			RoundID:       req.TransferCode,
			Kind:          engine.KindWager,
			Wager:         wager,
			EventTime:     parseEventTime(req.BetTime),
		})
		if err != nil {
			return formatError(c, err, req.Username)
		}

		// Replay answers with the originally recorded stake, whatever the
		// retry's payload says.
		return balanceSuccess(c, req.Username, out.Balance, fiber.Map{
			"BetAmount": out.Record.WagerAmount.InexactFloat64(),
		})
	}
}

package goldapi

import (
	"seamless/engine"
	"seamless/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type slotDetail struct {
	ProviderCode string                `json:"provider_code"`
	GameCode     models.FlexibleString `json:"game_code"`
	RoundID      models.FlexibleString `json:"round_id"`
	Bet          models.FlexibleString `json:"bet"`
	Win          models.FlexibleString `json:"win"`
	TxnID        models.FlexibleString `json:"txn_id"`
	TxnType      string                `json:"txn_type"`
	CreatedAtRaw string                `json:"created_at"`
}

type callbackRequest struct {
	AgentCode   string     `json:"agent_code"`
	AgentSecret string     `json:"agent_secret"`
	UserCode    string     `json:"user_code"`
	GameType    string     `json:"game_type"`
	Slot        slotDetail `json:"slot"`
}

// GameCallbackHandler processes the combined debit/credit callback. The
// dedup key is txn_id scoped by txn_type, so a debit and its later credit
// coexist while a redelivery of either replays.
func GameCallbackHandler(e *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req callbackRequest
		if err := c.BodyParser(&req); err != nil {
			return failure(c, "INVALID_JSON")
		}
		if req.UserCode == "" || req.Slot.TxnID == "" {
			return failure(c, "USER_CODE_AND_TXN_ID_REQUIRED")
		}

		bet, err := req.Slot.Bet.ToDecimal()
		if err != nil || bet.IsNegative() {
			return failure(c, "INVALID_BET_AMOUNT")
		}
		win, err := req.Slot.Win.ToDecimal()
		if err != nil || win.IsNegative() {
			return failure(c, "INVALID_WIN_AMOUNT")
		}

		txnID := string(req.Slot.TxnID)
		base := engine.Request{
			Provider:   providerName,
			ExternalID: req.UserCode,
			RoundID:    string(req.Slot.RoundID),
			GameCode:   string(req.Slot.GameCode),
			EventTime:  parseEventTime(req.Slot.CreatedAtRaw),
		}

		switch req.Slot.TxnType {
		case "debit":
			base.TransactionID = txnID + ":debit"
			base.Kind = engine.KindWager
			base.Wager = bet
		case "credit":
			base.TransactionID = txnID + ":credit"
			base.Kind = engine.KindSettle
			base.Payout = win
		case "debit_credit":
			base.TransactionID = txnID + ":debit_credit"
			base.Kind = engine.KindWager
			base.Wager = bet
			base.Payout = win
		case "refund":
			base.Kind = engine.KindRefund
			base.RelatedID = txnID + ":debit"
			base.Payout = decimal.Zero
		default:
			return failure(c, "INVALID_TXN_TYPE")
		}

		out, err := e.Process(c.Context(), base)
		if err != nil {
			return formatError(c, err)
		}

		return success(c, out.Balance)
	}
}

package goldapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"seamless/config"
	"seamless/engine"
	"seamless/ledger"
	"seamless/middlewares"
	"seamless/models"
	"seamless/resolver"
	"seamless/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	mu      sync.Mutex
	balance decimal.Decimal
	applied map[string]decimal.Decimal
}

func (g *stubGateway) ReadBalance(context.Context, config.WalletCredentials, string) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.balance, nil
}

func (g *stubGateway) WagerAndSettle(_ context.Context, _ config.WalletCredentials, _, _,
	wagerTxID string, wager decimal.Decimal, _ string, payout decimal.Decimal) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if after, ok := g.applied[wagerTxID]; ok {
		return after, nil
	}
	if g.balance.LessThan(wager) {
		return decimal.Zero, wallet.ErrInsufficientFunds
	}
	g.balance = g.balance.Sub(wager).Add(payout)
	g.applied[wagerTxID] = g.balance
	return g.balance, nil
}

func (g *stubGateway) Refund(_ context.Context, _ config.WalletCredentials, _, originalTxID string, amount decimal.Decimal) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := "refund|" + originalTxID
	if after, ok := g.applied[key]; ok {
		return after, nil
	}
	g.balance = g.balance.Add(amount)
	g.applied[key] = g.balance
	return g.balance, nil
}

const (
	testAgentCode   = "agent01"
	testAgentSecret = "supersecret"
)

func newTestApp(t *testing.T, balance string) (*fiber.App, *ledger.MemoryStore) {
	t.Helper()

	gw := &stubGateway{
		balance: decimal.RequireFromString(balance),
		applied: map[string]decimal.Decimal{},
	}
	store := ledger.NewMemoryStore()
	players := resolver.New(resolver.NewMemoryPlayerStore(), nil)
	_, err := players.Register(context.Background(), providerName, "user42", "IDR")
	require.NoError(t, err)

	creds := config.StaticWallet(config.WalletCredentials{
		BaseURL:  "http://wallet.local",
		Currency: "IDR",
	})
	e := engine.New(store, gw, players, creds, zerolog.Nop())

	providerCfg := config.Providers{
		GoldAPIAgentCode:   testAgentCode,
		GoldAPIAgentSecret: testAgentSecret,
	}

	app := fiber.New()
	group := app.Group("/", middlewares.GoldAPIAuth(providerCfg))
	group.Post("/user_balance", UserBalanceHandler(e))
	group.Post("/game_callback", GameCallbackHandler(e))
	return app, store
}

func slotCallback(userCode, txnID, txnType, bet, win string) map[string]any {
	return map[string]any{
		"agent_code":   testAgentCode,
		"agent_secret": testAgentSecret,
		"user_code":    userCode,
		"game_type":    "slot",
		"slot": map[string]any{
			"provider_code": "PRAGMATIC",
			"game_code":     "vs20doghouse",
			"round_id":      "round-9",
			"bet":           bet,
			"win":           win,
			"txn_id":        txnID,
			"txn_type":      txnType,
			"created_at":    "2026-08-30 14:00:00",
		},
	}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	return resp.StatusCode, decoded
}

func TestRejectsBadAgentCredentials(t *testing.T) {
	app, store := newTestApp(t, "1000")

	payload := slotCallback("user42", "tx-1", "debit", "100", "0")
	payload["agent_secret"] = "wrong"
	status, body := postJSON(t, app, "/game_callback", payload)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_AGENT_CREDENTIALS", body["msg"])
	assert.Equal(t, 0, store.Count())
}

func TestDebitThenCreditAreSeparateTransactions(t *testing.T) {
	app, store := newTestApp(t, "1000")

	status, body := postJSON(t, app, "/game_callback", slotCallback("user42", "tx-1", "debit", "100", "0"))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["status"])
	assert.Equal(t, "900.00", body["user_balance"])

	// The credit reuses the same txn_id; the type scopes the dedup key.
	status, body = postJSON(t, app, "/game_callback", slotCallback("user42", "tx-1", "credit", "0", "250"))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["status"])
	assert.Equal(t, "1150.00", body["user_balance"])

	assert.Equal(t, 2, store.Count())
}

func TestDebitCreditCombined(t *testing.T) {
	app, store := newTestApp(t, "1000")

	status, body := postJSON(t, app, "/game_callback", slotCallback("user42", "tx-2", "debit_credit", "100", "40"))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["status"])
	assert.Equal(t, "940.00", body["user_balance"])
	assert.Equal(t, 1, store.Count())

	rec, err := store.Find(context.Background(), providerName, "tx-2:debit_credit")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, models.StatusWager, rec.Status)
	assert.True(t, rec.WagerAmount.Equal(decimal.RequireFromString("100")))
	assert.True(t, rec.PayoutAmount.Equal(decimal.RequireFromString("40")))
}

func TestRedeliveryReplays(t *testing.T) {
	app, store := newTestApp(t, "1000")

	payload := slotCallback("user42", "tx-1", "debit", "100", "0")
	_, first := postJSON(t, app, "/game_callback", payload)
	_, second := postJSON(t, app, "/game_callback", payload)

	assert.EqualValues(t, 1, second["status"])
	assert.Equal(t, first["user_balance"], second["user_balance"])
	assert.Equal(t, 1, store.Count())
}

func TestRefundRestoresWager(t *testing.T) {
	app, store := newTestApp(t, "1000")

	_, _ = postJSON(t, app, "/game_callback", slotCallback("user42", "tx-1", "debit", "100", "0"))
	status, body := postJSON(t, app, "/game_callback", slotCallback("user42", "tx-1", "refund", "0", "0"))

	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["status"])
	assert.Equal(t, "1000.00", body["user_balance"])
	assert.Equal(t, 2, store.Count())
}

func TestRefundWithoutOriginalDebit(t *testing.T) {
	app, store := newTestApp(t, "1000")

	status, body := postJSON(t, app, "/game_callback", slotCallback("user42", "tx-missing", "refund", "0", "0"))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, body["status"])
	assert.Equal(t, "TXN_NOT_FOUND", body["msg"])
	assert.Equal(t, 0, store.Count())
}

func TestUnknownTxnType(t *testing.T) {
	app, store := newTestApp(t, "1000")

	status, body := postJSON(t, app, "/game_callback", slotCallback("user42", "tx-1", "bonus", "0", "10"))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, body["status"])
	assert.Equal(t, "INVALID_TXN_TYPE", body["msg"])
	assert.Equal(t, 0, store.Count())
}

func TestUnknownUserReturns404(t *testing.T) {
	app, _ := newTestApp(t, "1000")

	status, body := postJSON(t, app, "/game_callback", slotCallback("ghost", "tx-1", "debit", "100", "0"))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", body["msg"])
}

func TestUserBalance(t *testing.T) {
	app, _ := newTestApp(t, "123.409987")

	status, body := postJSON(t, app, "/user_balance", map[string]any{
		"agent_code":   testAgentCode,
		"agent_secret": testAgentSecret,
		"user_code":    "user42",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["status"])
	assert.Equal(t, "123.40", body["user_balance"])
}

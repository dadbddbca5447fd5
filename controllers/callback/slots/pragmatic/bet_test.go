package pragmatic

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"seamless/auth"
	"seamless/config"
	"seamless/engine"
	"seamless/ledger"
	"seamless/middlewares"
	"seamless/resolver"
	"seamless/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	mu        sync.Mutex
	balance   decimal.Decimal
	applied   map[string]decimal.Decimal
	mutations int
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
	g.mutations++
	g.balance = g.balance.Sub(wager).Add(payout)
	g.applied[wagerTxID] = g.balance
	return g.balance, nil
}

func (g *stubGateway) Refund(_ context.Context, _ config.WalletCredentials, _, originalTxID string, amount decimal.Decimal) (decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mutations++
	g.balance = g.balance.Add(amount)
	return g.balance, nil
}

const testSecret = "s3cret"

func newTestApp(t *testing.T, balance string) (*fiber.App, *stubGateway, *ledger.MemoryStore) {
	t.Helper()

	gw := &stubGateway{
		balance: decimal.RequireFromString(balance),
		applied: map[string]decimal.Decimal{},
	}
	store := ledger.NewMemoryStore()
	players := resolver.New(resolver.NewMemoryPlayerStore(), nil)
	_, err := players.Register(context.Background(), providerName, "alice", "USD")
	require.NoError(t, err)

	creds := config.StaticWallet(config.WalletCredentials{
		BaseURL:  "http://wallet.local",
		Currency: "USD",
	})
	e := engine.New(store, gw, players, creds, zerolog.Nop())

	providerCfg := config.Providers{
		PragmaticProviderID: "pp",
		PragmaticSecret:     testSecret,
	}

	app := fiber.New()
	group := app.Group("/", middlewares.PragmaticAuth(providerCfg))
	group.Post("/bet", BetHandler(e))
	group.Post("/balance", BalanceHandler(e))
	return app, gw, store
}

func signedForm(fields map[string]string) *strings.Reader {
	order := auth.SortedKeys(fields, "hash")
	fields["hash"] = auth.SignMD5(testSecret, fields, order)

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	return strings.NewReader(form.Encode())
}

func postForm(t *testing.T, app *fiber.App, path string, body *strings.Reader) map[string]any {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestBetRejectsBadHash(t *testing.T) {
	app, gw, store := newTestApp(t, "1000")

	form := url.Values{}
	form.Set("providerId", "pp")
	form.Set("userId", "alice")
	form.Set("reference", "tx-1")
	form.Set("roundId", "r-1")
	form.Set("amount", "100")
	form.Set("hash", "0123456789abcdef0123456789abcdef")

	body := postForm(t, app, "/bet", strings.NewReader(form.Encode()))
	assert.EqualValues(t, 1003, body["error"])
	assert.Equal(t, 0, gw.mutations)
	assert.Equal(t, 0, store.Count())
}

func TestBetDebitsAndRecords(t *testing.T) {
	app, gw, store := newTestApp(t, "1000")

	body := postForm(t, app, "/bet", signedForm(map[string]string{
		"providerId": "pp",
		"userId":     "alice",
		"reference":  "tx-1",
		"roundId":    "r-1",
		"amount":     "100",
		"gameId":     "vs20doghouse",
	}))

	assert.EqualValues(t, 0, body["error"])
	assert.EqualValues(t, 900, body["cash"])
	assert.Equal(t, "USD", body["currency"])
	assert.Equal(t, 1, gw.mutations)
	assert.Equal(t, 1, store.Count())
}

func TestBetReplayKeepsOneRow(t *testing.T) {
	app, gw, store := newTestApp(t, "1000")

	fields := func() map[string]string {
		return map[string]string{
			"providerId": "pp",
			"userId":     "alice",
			"reference":  "tx-1",
			"roundId":    "r-1",
			"amount":     "100",
		}
	}
	first := postForm(t, app, "/bet", signedForm(fields()))
	second := postForm(t, app, "/bet", signedForm(fields()))

	assert.EqualValues(t, 0, second["error"])
	assert.Equal(t, first["transactionId"], second["transactionId"])
	assert.Equal(t, 1, gw.mutations)
	assert.Equal(t, 1, store.Count())
}

func TestBetRecordsEpochMillisTimestamp(t *testing.T) {
	app, _, store := newTestApp(t, "1000")

	declared := time.Date(2026, 8, 29, 21, 15, 42, 0, time.UTC)
	body := postForm(t, app, "/bet", signedForm(map[string]string{
		"providerId": "pp",
		"userId":     "alice",
		"reference":  "tx-1",
		"roundId":    "r-1",
		"amount":     "100",
		"timestamp":  strconv.FormatInt(declared.UnixMilli(), 10),
	}))
	require.EqualValues(t, 0, body["error"])

	rec, err := store.Find(context.Background(), providerName, "tx-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.CreatedAt.Equal(declared), "got %s", rec.CreatedAt)
}

func TestBetUnknownPlayer(t *testing.T) {
	app, gw, store := newTestApp(t, "1000")

	body := postForm(t, app, "/bet", signedForm(map[string]string{
		"providerId": "pp",
		"userId":     "nobody",
		"reference":  "tx-1",
		"roundId":    "r-1",
		"amount":     "100",
	}))

	assert.EqualValues(t, 2001, body["error"])
	assert.Equal(t, 0, gw.mutations)
	assert.Equal(t, 0, store.Count())
}

func TestBetInsufficientFunds(t *testing.T) {
	app, _, store := newTestApp(t, "50")

	body := postForm(t, app, "/bet", signedForm(map[string]string{
		"providerId": "pp",
		"userId":     "alice",
		"reference":  "tx-1",
		"roundId":    "r-1",
		"amount":     "100",
	}))

	assert.EqualValues(t, 3001, body["error"])
	assert.Equal(t, 0, store.Count())
}

func TestBalanceEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t, "321.409")

	body := postForm(t, app, "/balance", signedForm(map[string]string{
		"providerId": "pp",
		"userId":     "alice",
	}))

	assert.EqualValues(t, 0, body["error"])
	assert.EqualValues(t, 321.4, body["cash"])
}

package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"seamless/config"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	statusOK                = 1
	statusInsufficientFunds = 2
)

// HTTPGateway talks to the internal wallet service over HTTP and normalizes
// its envelope into the gateway error taxonomy.
type HTTPGateway struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewHTTPGateway(timeout time.Duration, logger zerolog.Logger) *HTTPGateway {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPGateway{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger.With().Str("component", "wallet_gateway").Logger(),
	}
}

type envelope struct {
	Status json.Number     `json:"status"`
	Credit decimal.Decimal `json:"credit"`
	Msg    string          `json:"msg"`
}

func (g *HTTPGateway) ReadBalance(ctx context.Context, creds config.WalletCredentials, playID string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("play_id", playID)
	q.Set("currency", creds.Currency)
	return g.call(ctx, creds, http.MethodGet, "/api/v1/balance?"+q.Encode(), nil)
}

func (g *HTTPGateway) WagerAndSettle(ctx context.Context, creds config.WalletCredentials, playID, currency,
	wagerTxID string, wager decimal.Decimal, payoutTxID string, payout decimal.Decimal) (decimal.Decimal, error) {

	body := map[string]any{
		"play_id":      playID,
		"currency":     currency,
		"wager_tx_id":  wagerTxID,
		"wager":        wager,
		"payout_tx_id": payoutTxID,
		"payout":       payout,
	}
	return g.call(ctx, creds, http.MethodPost, "/api/v1/transfer", body)
}

func (g *HTTPGateway) Refund(ctx context.Context, creds config.WalletCredentials, playID, originalTxID string, amount decimal.Decimal) (decimal.Decimal, error) {
	body := map[string]any{
		"play_id":       playID,
		"currency":      creds.Currency,
		"related_tx_id": originalTxID,
		"amount":        amount,
	}
	return g.call(ctx, creds, http.MethodPost, "/api/v1/refund", body)
}

func (g *HTTPGateway) call(ctx context.Context, creds config.WalletCredentials, method, path string, body map[string]any) (decimal.Decimal, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: encode request: %v", ErrGatewayUnavailable, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, creds.BaseURL+path, reqBody)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: build request: %v", ErrGatewayUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Agent-Code", creds.AgentCode)
	req.Header.Set("X-Secret-Key", creds.SecretKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("path", path).Msg("wallet call failed")
		return decimal.Zero, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: wallet returned status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode response: %v", ErrGatewayUnavailable, err)
	}

	status, err := env.Status.Int64()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: non-numeric status %q", ErrGatewayUnavailable, env.Status.String())
	}

	switch status {
	case statusOK:
		return env.Credit, nil
	case statusInsufficientFunds:
		return env.Credit, ErrInsufficientFunds
	default:
		return decimal.Zero, fmt.Errorf("%w: wallet status %d (%s)", ErrGatewayUnavailable, status, env.Msg)
	}
}

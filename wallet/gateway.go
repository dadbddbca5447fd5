package wallet

import (
	"context"
	"errors"

	"seamless/config"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")

	// ErrGatewayUnavailable covers timeouts, transport faults and any
	// response the adapter cannot interpret. Callers must not treat it as a
	// settled outcome.
	ErrGatewayUnavailable = errors.New("wallet: gateway unavailable")
)

// Gateway is the sole path to the authoritative balance. Every mutating call
// carries the provider transaction id so the wallet can deduplicate
// independently of the local ledger.
type Gateway interface {
	ReadBalance(ctx context.Context, creds config.WalletCredentials, playID string) (decimal.Decimal, error)

	// WagerAndSettle applies the debit and credit side of one round-step in a
	// single atomic wallet call; partial wager-without-payout states never
	// exist in the wallet.
	WagerAndSettle(ctx context.Context, creds config.WalletCredentials, playID, currency,
		wagerTxID string, wager decimal.Decimal, payoutTxID string, payout decimal.Decimal) (decimal.Decimal, error)

	// Refund moves a signed amount: positive returns funds to the player,
	// negative re-deducts an over-credit.
	Refund(ctx context.Context, creds config.WalletCredentials, playID, originalTxID string, amount decimal.Decimal) (decimal.Decimal, error)
}

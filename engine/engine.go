package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seamless/config"
	"seamless/helpers"
	"seamless/ledger"
	"seamless/models"
	"seamless/resolver"
	"seamless/wallet"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var (
	ErrPlayerNotFound    = errors.New("engine: player not found")
	ErrTokenMismatch     = errors.New("engine: session token mismatch")
	ErrInsufficientFunds = errors.New("engine: insufficient funds")
	ErrNoBet             = errors.New("engine: referenced transaction not found")
	ErrInternal          = errors.New("engine: internal error")
)

type Kind int

const (
	// KindWager is the debit side of a round-step; a combined
	// debit-and-credit call is a wager carrying a payout amount.
	KindWager Kind = iota
	// KindSettle closes a round-step with a payout, possibly zero.
	KindSettle
	// KindRefund compensates a prior transaction with a new row.
	KindRefund
)

// Request is one authenticated provider callback, normalized. Authentication
// has already happened at the edge; the engine never sees unsigned traffic.
type Request struct {
	Provider   string
	ExternalID string
	Token      string

	// TransactionID is the provider-supplied id. Empty for settle calls that
	// carry none of their own; the engine then synthesizes one from the
	// round id.
	TransactionID string
	RoundID       string
	RelatedID     string
	GameCode      string

	Kind   Kind
	Wager  decimal.Decimal
	Payout decimal.Decimal

	// RequireRound rejects settles for rounds with no recorded wager, for
	// protocols that are strictly bet-then-settle.
	RequireRound bool

	// EventTime is the provider-declared transaction time, not wall-clock.
	EventTime time.Time
	ExtraInfo datatypes.JSON
}

// Outcome is the engine's terminal state for a request.
type Outcome struct {
	Replayed bool
	Balance  decimal.Decimal
	Record   models.LedgerTransaction
	Player   models.Player
}

// Engine reconciles provider callbacks against the wallet: it resolves the
// player, deduplicates on the provider transaction id, calls the wallet at
// most once per unique id, and persists the reconciled ledger row.
type Engine struct {
	ledger  ledger.Store
	gateway wallet.Gateway
	players *resolver.Resolver
	creds   config.WalletConfig
	logger  zerolog.Logger
}

func New(store ledger.Store, gateway wallet.Gateway, players *resolver.Resolver, creds config.WalletConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		ledger:  store,
		gateway: gateway,
		players: players,
		creds:   creds,
		logger:  logger.With().Str("component", "engine").Logger(),
	}
}

// canonicalTxID derives the dedup key for a request. The key must be stable
// across retries: a retry of the same provider call always lands on the same
// id, whatever fields it carries.
func canonicalTxID(req Request) string {
	switch {
	case req.Kind == KindRefund:
		if req.TransactionID != "" {
			return req.TransactionID
		}
		return "refund-" + req.RelatedID
	case req.TransactionID == "":
		return "settle-" + req.RoundID
	default:
		return req.TransactionID
	}
}

// Balance resolves the player and reads the wallet. Side-effect free.
func (e *Engine) Balance(ctx context.Context, provider, externalID, token string) (*models.Player, decimal.Decimal, error) {
	player, err := e.players.Resolve(ctx, provider, externalID, token)
	if err != nil {
		return nil, decimal.Zero, mapResolveErr(err)
	}
	creds, err := e.creds.Credentials(player.Currency)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	balance, err := e.gateway.ReadBalance(ctx, creds, player.PlayID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return player, helpers.Truncate2(balance), nil
}

// Authenticate resolves a launch-token-only call (no user id in the payload)
// and reads the wallet. Side-effect free.
func (e *Engine) Authenticate(ctx context.Context, provider, token string) (*models.Player, decimal.Decimal, error) {
	player, err := e.players.ResolveToken(ctx, provider, token)
	if err != nil {
		return nil, decimal.Zero, mapResolveErr(err)
	}
	creds, err := e.creds.Credentials(player.Currency)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	balance, err := e.gateway.ReadBalance(ctx, creds, player.PlayID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return player, helpers.Truncate2(balance), nil
}

// Process runs one callback through the dedup-then-mutate-then-record
// pipeline.
func (e *Engine) Process(ctx context.Context, req Request) (*Outcome, error) {
	player, err := e.players.Resolve(ctx, req.Provider, req.ExternalID, req.Token)
	if err != nil {
		return nil, mapResolveErr(err)
	}

	creds, err := e.creds.Credentials(player.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	txID := canonicalTxID(req)

	// Dedup lookup. A claimed id means the money already moved; answer from
	// the stored record without touching the wallet's mutating paths.
	existing, err := e.ledger.Find(ctx, req.Provider, txID)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger lookup: %v", ErrInternal, err)
	}
	if existing != nil {
		return e.replay(ctx, creds, player, existing), nil
	}

	refundAmount := req.Payout
	if req.Kind == KindRefund {
		original, err := e.ledger.Find(ctx, req.Provider, req.RelatedID)
		if err != nil {
			return nil, fmt.Errorf("%w: ledger lookup: %v", ErrInternal, err)
		}
		if original == nil {
			return nil, ErrNoBet
		}
		if refundAmount.IsZero() {
			refundAmount = original.WagerAmount
		}
	}

	if req.Kind == KindSettle && req.RequireRound {
		rows, err := e.ledger.FindByRound(ctx, req.Provider, req.RoundID)
		if err != nil {
			return nil, fmt.Errorf("%w: ledger lookup: %v", ErrInternal, err)
		}
		if len(rows) == 0 {
			return nil, ErrNoBet
		}
	}

	// Funds pre-check before the mutating call.
	if req.Kind == KindWager && req.Wager.IsPositive() {
		balance, err := e.gateway.ReadBalance(ctx, creds, player.PlayID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if balance.LessThan(req.Wager) {
			return nil, ErrInsufficientFunds
		}
	}

	// Exactly one wallet mutation per unique transaction id.
	var balanceAfter decimal.Decimal
	var status string
	switch req.Kind {
	case KindWager:
		balanceAfter, err = e.gateway.WagerAndSettle(ctx, creds, player.PlayID, player.Currency,
			txID, req.Wager, txID, req.Payout)
		status = models.StatusWager
	case KindSettle:
		balanceAfter, err = e.gateway.WagerAndSettle(ctx, creds, player.PlayID, player.Currency,
			txID, req.Wager, txID, req.Payout)
		status = models.StatusPayout
	case KindRefund:
		balanceAfter, err = e.gateway.Refund(ctx, creds, player.PlayID, req.RelatedID, refundAmount)
		status = models.StatusRefund
	}
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		// No ledger row on gateway failure: the id stays unclaimed so a
		// legitimate retry can still succeed.
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	eventTime := req.EventTime
	if eventTime.IsZero() {
		eventTime = time.Now()
	}

	payout := req.Payout
	if req.Kind == KindRefund {
		payout = refundAmount
	}

	rec := models.LedgerTransaction{
		CreatedAt:    eventTime,
		UpdatedAt:    eventTime,
		Provider:     req.Provider,
		ProviderTxID: txID,
		RoundID:      req.RoundID,
		RelatedTxID:  req.RelatedID,
		PlayID:       player.PlayID,
		GameCode:     req.GameCode,
		Currency:     player.Currency,
		WagerAmount:  helpers.Truncate2(req.Wager),
		PayoutAmount: helpers.Truncate2(payout),
		BalanceAfter: helpers.Truncate2(balanceAfter),
		Status:       status,
		ExtraInfo:    req.ExtraInfo,
	}

	if err := e.ledger.Insert(ctx, &rec); err != nil {
		if errors.Is(err, ledger.ErrDuplicate) {
			// A concurrent identical request won the race. Its row is
			// authoritative; this execution's wallet result is discarded.
			winner, findErr := e.ledger.Find(ctx, req.Provider, txID)
			if findErr == nil && winner != nil {
				return e.replay(ctx, creds, player, winner), nil
			}
			return nil, fmt.Errorf("%w: duplicate row vanished for %s", ErrInternal, txID)
		}
		// Wallet mutated but the row is missing; surface loudly for manual
		// reconciliation.
		e.logger.Error().Err(err).
			Str("provider", req.Provider).
			Str("tx_id", txID).
			Str("play_id", player.PlayID).
			Msg("ledger insert failed after wallet mutation")
		return nil, fmt.Errorf("%w: ledger insert: %v", ErrInternal, err)
	}

	e.logger.Info().
		Str("provider", req.Provider).
		Str("tx_id", txID).
		Str("play_id", player.PlayID).
		Str("status", status).
		Str("balance_after", helpers.Format2(balanceAfter)).
		Msg("transaction recorded")

	return &Outcome{Balance: rec.BalanceAfter, Record: rec, Player: *player}, nil
}

// replay answers a repeated callback from the stored record. The balance is
// re-read from the wallet (side-effect free); if the wallet is unreachable
// the recorded post-balance is used so replays stay answerable.
func (e *Engine) replay(ctx context.Context, creds config.WalletCredentials, player *models.Player, rec *models.LedgerTransaction) *Outcome {
	balance := rec.BalanceAfter
	if live, err := e.gateway.ReadBalance(ctx, creds, player.PlayID); err == nil {
		balance = helpers.Truncate2(live)
	}
	e.logger.Info().
		Str("provider", rec.Provider).
		Str("tx_id", rec.ProviderTxID).
		Str("play_id", player.PlayID).
		Msg("replayed transaction")
	return &Outcome{Replayed: true, Balance: balance, Record: *rec, Player: *player}
}

// RoundTotals reports the running wager/payout sums of a round.
func (e *Engine) RoundTotals(ctx context.Context, provider, roundID string) (wagered, paid decimal.Decimal, err error) {
	wagered, err = e.ledger.SumWagerForRound(ctx, provider, roundID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	paid, err = e.ledger.SumPayoutForRound(ctx, provider, roundID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return wagered, paid, nil
}

// RoundRecords returns the ledger rows of a round in insertion order.
func (e *Engine) RoundRecords(ctx context.Context, provider, roundID string) ([]models.LedgerTransaction, error) {
	rows, err := e.ledger.FindByRound(ctx, provider, roundID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return rows, nil
}

func mapResolveErr(err error) error {
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, resolver.ErrTokenMismatch):
		return ErrTokenMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

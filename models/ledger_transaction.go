package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusWager  = "WAGER"
	StatusPayout = "PAYOUT"
	StatusRefund = "REFUND"
)

// LedgerTransaction is one reconciled provider callback. Rows are append-only:
// a refund references the original row through RelatedTxID instead of mutating
// it. The unique index on (provider, provider_tx_id) is the dedup anchor.
type LedgerTransaction struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Provider     string `gorm:"size:32;not null;uniqueIndex:idx_provider_tx"`
	ProviderTxID string `gorm:"size:100;not null;uniqueIndex:idx_provider_tx"`
	RoundID      string `gorm:"size:100;index"`
	RelatedTxID  string `gorm:"size:100;index"`

	PlayID   string `gorm:"size:64;index"`
	GameCode string `gorm:"size:64"`
	Currency string `gorm:"size:8"`

	WagerAmount  decimal.Decimal `gorm:"type:numeric(20,2);default:0"`
	PayoutAmount decimal.Decimal `gorm:"type:numeric(20,2);default:0"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(20,2);default:0"`

	Status    string         `gorm:"size:16;index"`
	ExtraInfo datatypes.JSON `gorm:"type:jsonb"`
}

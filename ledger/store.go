package ledger

import (
	"context"
	"errors"
	"fmt"

	"seamless/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDuplicate reports that the provider transaction id is already claimed.
// Callers treat it as proof that another execution applied the transaction,
// never as a retryable database fault.
var ErrDuplicate = errors.New("ledger: duplicate provider transaction id")

type Store interface {
	// Find returns the record for a provider transaction id, or nil.
	Find(ctx context.Context, provider, providerTxID string) (*models.LedgerTransaction, error)
	FindByRound(ctx context.Context, provider, roundID string) ([]models.LedgerTransaction, error)
	// Insert persists a new record. The unique constraint on
	// (provider, provider_tx_id) is the sole serialization point; a violated
	// constraint surfaces as ErrDuplicate.
	Insert(ctx context.Context, rec *models.LedgerTransaction) error
	SumWagerForRound(ctx context.Context, provider, roundID string) (decimal.Decimal, error)
	SumPayoutForRound(ctx context.Context, provider, roundID string) (decimal.Decimal, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(ctx context.Context, provider, providerTxID string) (*models.LedgerTransaction, error) {
	var rec models.LedgerTransaction
	err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_tx_id = ?", provider, providerTxID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormStore) FindByRound(ctx context.Context, provider, roundID string) ([]models.LedgerTransaction, error) {
	var recs []models.LedgerTransaction
	err := s.db.WithContext(ctx).
		Where("provider = ? AND round_id = ?", provider, roundID).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *GormStore) Insert(ctx context.Context, rec *models.LedgerTransaction) error {
	err := s.db.WithContext(ctx).Create(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s/%s", ErrDuplicate, rec.Provider, rec.ProviderTxID)
		}
		return err
	}
	return nil
}

func (s *GormStore) SumWagerForRound(ctx context.Context, provider, roundID string) (decimal.Decimal, error) {
	return s.sumColumn(ctx, "wager_amount", provider, roundID)
}

func (s *GormStore) SumPayoutForRound(ctx context.Context, provider, roundID string) (decimal.Decimal, error) {
	return s.sumColumn(ctx, "payout_amount", provider, roundID)
}

func (s *GormStore) sumColumn(ctx context.Context, column, provider, roundID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.WithContext(ctx).
		Model(&models.LedgerTransaction{}).
		Where("provider = ? AND round_id = ?", provider, roundID).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

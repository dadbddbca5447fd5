package ledger

import (
	"context"
	"fmt"
	"sync"

	"seamless/models"

	"github.com/shopspring/decimal"
)

// MemoryStore keeps ledger rows in process memory with the same unique-insert
// semantics as the Postgres store. Used as the swappable fake in tests.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	byKey  map[string]*models.LedgerTransaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: map[string]*models.LedgerTransaction{}}
}

func key(provider, providerTxID string) string {
	return provider + "|" + providerTxID
}

func (s *MemoryStore) Find(_ context.Context, provider, providerTxID string) (*models.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.byKey[key(provider, providerTxID)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (s *MemoryStore) FindByRound(_ context.Context, provider, roundID string) ([]models.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []models.LedgerTransaction
	for _, rec := range s.byKey {
		if rec.Provider == provider && rec.RoundID == roundID {
			recs = append(recs, *rec)
		}
	}
	return recs, nil
}

func (s *MemoryStore) Insert(_ context.Context, rec *models.LedgerTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(rec.Provider, rec.ProviderTxID)
	if _, exists := s.byKey[k]; exists {
		return fmt.Errorf("%w: %s/%s", ErrDuplicate, rec.Provider, rec.ProviderTxID)
	}
	s.nextID++
	rec.ID = s.nextID
	cp := *rec
	s.byKey[k] = &cp
	return nil
}

func (s *MemoryStore) SumWagerForRound(ctx context.Context, provider, roundID string) (decimal.Decimal, error) {
	recs, _ := s.FindByRound(ctx, provider, roundID)
	total := decimal.Zero
	for _, rec := range recs {
		total = total.Add(rec.WagerAmount)
	}
	return total, nil
}

func (s *MemoryStore) SumPayoutForRound(ctx context.Context, provider, roundID string) (decimal.Decimal, error) {
	recs, _ := s.FindByRound(ctx, provider, roundID)
	total := decimal.Zero
	for _, rec := range recs {
		total = total.Add(rec.PayoutAmount)
	}
	return total, nil
}

// Count reports the number of stored rows.
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byKey)
}

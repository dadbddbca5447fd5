package resolver

import (
	"context"
	"errors"
	"sync"

	"seamless/models"

	"gorm.io/gorm"
)

type PlayerStore interface {
	// FindPlayer returns the player for (provider, playID), or nil.
	FindPlayer(ctx context.Context, provider, playID string) (*models.Player, error)
	FindPlayerByToken(ctx context.Context, provider, token string) (*models.Player, error)
	CreatePlayer(ctx context.Context, player *models.Player) error
	SavePlayer(ctx context.Context, player *models.Player) error
}

type GormPlayerStore struct {
	db *gorm.DB
}

func NewGormPlayerStore(db *gorm.DB) *GormPlayerStore {
	return &GormPlayerStore{db: db}
}

func (s *GormPlayerStore) FindPlayer(ctx context.Context, provider, playID string) (*models.Player, error) {
	var p models.Player
	err := s.db.WithContext(ctx).
		Where("provider = ? AND play_id = ?", provider, playID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormPlayerStore) FindPlayerByToken(ctx context.Context, provider, token string) (*models.Player, error) {
	var p models.Player
	err := s.db.WithContext(ctx).
		Where("provider = ? AND session_token = ?", provider, token).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormPlayerStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	return s.db.WithContext(ctx).Create(player).Error
}

func (s *GormPlayerStore) SavePlayer(ctx context.Context, player *models.Player) error {
	return s.db.WithContext(ctx).Save(player).Error
}

// MemoryPlayerStore is the in-process fake used by tests.
type MemoryPlayerStore struct {
	mu      sync.Mutex
	nextID  uint
	players map[string]*models.Player
}

func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{players: map[string]*models.Player{}}
}

func playerKey(provider, playID string) string {
	return provider + "|" + playID
}

func (s *MemoryPlayerStore) FindPlayer(_ context.Context, provider, playID string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[playerKey(provider, playID)]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *MemoryPlayerStore) FindPlayerByToken(_ context.Context, provider, token string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		if p.Provider == provider && p.SessionToken == token && token != "" {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryPlayerStore) CreatePlayer(_ context.Context, player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := playerKey(player.Provider, player.PlayID)
	if _, exists := s.players[k]; exists {
		return errors.New("resolver: player already exists")
	}
	s.nextID++
	player.ID = s.nextID
	cp := *player
	s.players[k] = &cp
	return nil
}

func (s *MemoryPlayerStore) SavePlayer(_ context.Context, player *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *player
	s.players[playerKey(player.Provider, player.PlayID)] = &cp
	return nil
}

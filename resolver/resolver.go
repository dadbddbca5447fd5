package resolver

import (
	"context"
	"errors"
	"strings"

	"seamless/auth"
	"seamless/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("resolver: player not found")
	ErrTokenMismatch = errors.New("resolver: session token mismatch")
)

// Resolver maps a provider's external identifier and presented session token
// to an internal player record. Read paths have no side effects; login-style
// calls issue and store a fresh token.
type Resolver struct {
	store PlayerStore

	// prefixes holds the provider-namespace prefix some providers encode
	// into usernames, e.g. PCAUCN_<playid>.
	prefixes map[string]string
}

func New(store PlayerStore, prefixes map[string]string) *Resolver {
	if prefixes == nil {
		prefixes = map[string]string{}
	}
	return &Resolver{store: store, prefixes: prefixes}
}

// StripPrefix validates and removes the provider's username prefix. A missing
// or misplaced prefix is a not-found, not a format error: the id belongs to
// no player of ours.
func (r *Resolver) StripPrefix(provider, externalID string) (string, error) {
	prefix := r.prefixes[provider]
	if prefix == "" {
		return externalID, nil
	}
	if !strings.HasPrefix(externalID, prefix) || len(externalID) == len(prefix) {
		return "", ErrNotFound
	}
	return externalID[len(prefix):], nil
}

// Resolve looks up the player behind an external id. When a token is
// presented it must match the stored session token; a mismatch is reported
// separately from not-found so callers can map it to the provider's
// authentication-failure code.
func (r *Resolver) Resolve(ctx context.Context, provider, externalID, token string) (*models.Player, error) {
	playID, err := r.StripPrefix(provider, externalID)
	if err != nil {
		return nil, err
	}

	player, err := r.store.FindPlayer(ctx, provider, playID)
	if err != nil {
		return nil, err
	}
	if player == nil || !player.IsActive {
		return nil, ErrNotFound
	}

	if token != "" {
		if player.SessionToken == "" || !auth.Equal(player.SessionToken, token) {
			return nil, ErrTokenMismatch
		}
	}
	return player, nil
}

// ResolveToken finds the player by session token alone (launch-token
// authenticate flows that carry no user id).
func (r *Resolver) ResolveToken(ctx context.Context, provider, token string) (*models.Player, error) {
	if token == "" {
		return nil, ErrTokenMismatch
	}
	player, err := r.store.FindPlayerByToken(ctx, provider, token)
	if err != nil {
		return nil, err
	}
	if player == nil || !player.IsActive {
		return nil, ErrNotFound
	}
	return player, nil
}

// Register creates the player on first contact and is a no-op for known ids.
func (r *Resolver) Register(ctx context.Context, provider, externalID, currency string) (*models.Player, error) {
	playID, err := r.StripPrefix(provider, externalID)
	if err != nil {
		return nil, err
	}

	player, err := r.store.FindPlayer(ctx, provider, playID)
	if err != nil {
		return nil, err
	}
	if player != nil {
		return player, nil
	}

	player = &models.Player{
		Provider: provider,
		PlayID:   playID,
		Currency: strings.ToUpper(currency),
		IsActive: true,
	}
	if err := r.store.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Login issues a fresh opaque session token and stores it on the player.
func (r *Resolver) Login(ctx context.Context, provider, externalID string) (*models.Player, string, error) {
	player, err := r.Resolve(ctx, provider, externalID, "")
	if err != nil {
		return nil, "", err
	}
	token := strings.ToLower(uuid.New().String())
	player.SessionToken = token
	if err := r.store.SavePlayer(ctx, player); err != nil {
		return nil, "", err
	}
	return player, token, nil
}

// Logout clears the stored session token. The player record itself survives.
func (r *Resolver) Logout(ctx context.Context, provider, externalID string) error {
	player, err := r.Resolve(ctx, provider, externalID, "")
	if err != nil {
		return err
	}
	player.SessionToken = ""
	return r.store.SavePlayer(ctx, player)
}

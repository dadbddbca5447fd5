package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, prefixes map[string]string) (*Resolver, *MemoryPlayerStore) {
	t.Helper()
	store := NewMemoryPlayerStore()
	return New(store, prefixes), store
}

func TestRegisterIsIdempotent(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	first, err := r.Register(ctx, "pragmatic", "alice", "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", first.Currency)
	assert.True(t, first.IsActive)

	second, err := r.Register(ctx, "pragmatic", "alice", "eur")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "USD", second.Currency, "re-register must not change the record")
}

func TestStripPrefix(t *testing.T) {
	r, _ := newTestResolver(t, map[string]string{"pragmatic": "PCAUCN_"})

	playID, err := r.StripPrefix("pragmatic", "PCAUCN_alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", playID)

	_, err = r.StripPrefix("pragmatic", "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.StripPrefix("pragmatic", "PCAUCN_")
	assert.ErrorIs(t, err, ErrNotFound)

	// Providers without a configured prefix pass ids through.
	playID, err = r.StripPrefix("sbo", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", playID)
}

func TestResolveDistinguishesNotFoundFromTokenMismatch(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	_, err := r.Register(ctx, "sbo", "bob", "THB")
	require.NoError(t, err)

	_, token, err := r.Login(ctx, "sbo", "bob")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	player, err := r.Resolve(ctx, "sbo", "bob", token)
	require.NoError(t, err)
	assert.Equal(t, "bob", player.PlayID)

	_, err = r.Resolve(ctx, "sbo", "bob", "stale-token")
	assert.ErrorIs(t, err, ErrTokenMismatch)

	_, err = r.Resolve(ctx, "sbo", "nobody", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveTokenOnly(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	_, err := r.Register(ctx, "pragmatic", "alice", "USD")
	require.NoError(t, err)
	_, token, err := r.Login(ctx, "pragmatic", "alice")
	require.NoError(t, err)

	player, err := r.ResolveToken(ctx, "pragmatic", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", player.PlayID)

	_, err = r.ResolveToken(ctx, "pragmatic", "")
	assert.ErrorIs(t, err, ErrTokenMismatch)

	_, err = r.ResolveToken(ctx, "pragmatic", "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginRotatesTokenAndLogoutClearsIt(t *testing.T) {
	r, _ := newTestResolver(t, nil)
	ctx := context.Background()

	_, err := r.Register(ctx, "sbo", "bob", "THB")
	require.NoError(t, err)

	_, first, err := r.Login(ctx, "sbo", "bob")
	require.NoError(t, err)
	_, second, err := r.Login(ctx, "sbo", "bob")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// The old token no longer resolves.
	_, err = r.Resolve(ctx, "sbo", "bob", first)
	assert.ErrorIs(t, err, ErrTokenMismatch)

	require.NoError(t, r.Logout(ctx, "sbo", "bob"))
	_, err = r.Resolve(ctx, "sbo", "bob", second)
	assert.ErrorIs(t, err, ErrTokenMismatch)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemorySessionStoreLifecycle(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	live, err := store.Exists(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, live)

	require.NoError(t, store.Save(ctx, "token-1", time.Minute))

	live, err = store.Exists(ctx, "token-1")
	require.NoError(t, err)
	require.True(t, live)

	require.NoError(t, store.Revoke(ctx, "token-1"))

	live, err = store.Exists(ctx, "token-1")
	require.NoError(t, err)
	require.False(t, live)
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "token-2", -time.Second))

	live, err := store.Exists(ctx, "token-2")
	require.NoError(t, err)
	require.False(t, live)
}

func TestMemorySessionStoreRevokeUnknownToken(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.Revoke(context.Background(), "never-saved"))
}

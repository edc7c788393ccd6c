package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocations(t *testing.T) {
	ctx := context.Background()
	revoked := NewMemoryRevocations()

	ok, err := revoked.IsRevoked(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, revoked.Revoke(ctx, "jti-1", time.Hour))
	ok, err = revoked.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// An already expired entry is a no-op.
	require.NoError(t, revoked.Revoke(ctx, "jti-2", -time.Second))
	ok, err = revoked.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRevocationsExpiry(t *testing.T) {
	ctx := context.Background()
	revoked := NewMemoryRevocations()

	require.NoError(t, revoked.Revoke(ctx, "jti", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	ok, err := revoked.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, ok, "entry should lapse with its token")
}

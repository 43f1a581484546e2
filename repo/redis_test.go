package repo

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	backend, err := NewRedisBackend(ctx, addr)
	require.NoError(t, err)
	defer backend.Close()

	key := "tripbot-test." + t.Name()
	_, err = backend.Get(ctx, key+".missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, backend.Set(ctx, key, []byte(`{"a":1}`)))
	got, err := backend.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestRedisBackendRequiresAddress(t *testing.T) {
	_, err := NewRedisBackend(context.Background(), "")
	assert.Error(t, err)
}

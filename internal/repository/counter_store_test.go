package repository

import (
	"testing"
	"time"

	"socialbook/internal/config"
	"socialbook/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounterStore(t *testing.T) (*miniredis.Miniredis, CounterStore) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := util.NewRedisClient(&config.Config{
		RedisHost: mr.Host(),
		RedisPort: mr.Port(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, NewCounterStore(client)
}

func TestCounterStoreCountMissingKey(t *testing.T) {
	_, store := newTestCounterStore(t)

	count, err := store.Count("counter:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCounterStoreIncrement(t *testing.T) {
	mr, store := newTestCounterStore(t)

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Increment("counter:u1", time.Minute))
		count, err := store.Count("counter:u1")
		require.NoError(t, err)
		assert.Equal(t, int64(i), count)
	}

	assert.Equal(t, time.Minute, mr.TTL("counter:u1"))
}

func TestCounterStoreWindowDoesNotExtend(t *testing.T) {
	mr, store := newTestCounterStore(t)

	require.NoError(t, store.Increment("counter:u1", time.Minute))
	mr.FastForward(40 * time.Second)
	require.NoError(t, store.Increment("counter:u1", time.Minute))

	count, err := store.Count("counter:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The second increment keeps the remaining 20s, it does not restart
	// the minute.
	assert.Equal(t, 20*time.Second, mr.TTL("counter:u1"))
}

func TestCounterStoreExpiredWindowRestarts(t *testing.T) {
	mr, store := newTestCounterStore(t)

	require.NoError(t, store.Increment("counter:u1", time.Minute))
	require.NoError(t, store.Increment("counter:u1", time.Minute))
	mr.FastForward(time.Minute)

	count, err := store.Count("counter:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// A send after expiry opens a fresh window with a fresh TTL; the
	// counter key must never end up without one.
	require.NoError(t, store.Increment("counter:u1", time.Minute))

	count, err = store.Count("counter:u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, mr.TTL("counter:u1"))
}

package repository

import (
	"strconv"
	"time"

	"socialbook/internal/util"
)

// CounterStore is an expiring counter over an external key-value store.
// The friend-request flood limit is tracked through it: Count then
// Increment is a deliberate non-transactional get-then-set, so concurrent
// sends from one user can race past the limit by a small margin.
type CounterStore interface {
	Count(key string) (int64, error)
	Increment(key string, window time.Duration) error
}

type redisCounterStore struct {
	redis *util.RedisClient
}

func NewCounterStore(redis *util.RedisClient) CounterStore {
	return &redisCounterStore{redis: redis}
}

// Count returns the current counter value, zero when the key has expired
// or never existed.
func (s *redisCounterStore) Count(key string) (int64, error) {
	val, err := s.redis.Get(key)
	if err != nil {
		return 0, nil
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// Increment bumps the counter. The first hit starts the window; later hits
// keep the remaining TTL so the window resets rather than extends.
func (s *redisCounterStore) Increment(key string, window time.Duration) error {
	val, err := s.redis.Get(key)
	if err != nil {
		return s.redis.Set(key, "1", window)
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		n = 0
	}

	set, err := s.redis.SetKeepTTL(key, strconv.FormatInt(n+1, 10))
	if err != nil {
		return err
	}
	if !set {
		// The window expired between the read and the write; start a
		// fresh one instead of recreating the key without a TTL.
		return s.redis.Set(key, "1", window)
	}
	return nil
}

package question

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

const releaseScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// ReplenishLock serializes pool refills for a category across instances.
type ReplenishLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReplenishLock(client *redis.Client, ttl time.Duration) *ReplenishLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ReplenishLock{client: client, ttl: ttl}
}

func (l *ReplenishLock) key(category Category) string {
	return fmt.Sprintf("quiz:replenish:%s", category)
}

// Acquire takes the category lock. acquired is false when another holder
// owns it. A nil lock always grants.
func (l *ReplenishLock) Acquire(ctx context.Context, category Category) (release func(), acquired bool, err error) {
	if l == nil || l.client == nil {
		return func() {}, true, nil
	}

	key := l.key(category)
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire replenish lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		// only delete our own token; the lock may have expired and been retaken
		_ = l.client.Eval(context.WithoutCancel(ctx), releaseScript, []string{key}, token).Err()
	}
	return release, true, nil
}

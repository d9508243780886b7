package utils

import (
	"context" // Context for Redis operations
	"fmt"     // Error wrapping
	"sync"    // In-process key locks
	"time"    // Lock expiry and retry delay

	"github.com/google/uuid"       // Lock ownership tokens
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging
)

// releaseScript deletes the lock only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a key lock shared by every API instance using the same Redis
type RedisLocker struct {
	rdb   *redis.Client // Redis client
	ttl   time.Duration // Lock expiry, bounds the damage of a crashed holder
	retry time.Duration // Delay between acquisition attempts
}

// NewRedisLocker returns a RedisLocker whose locks expire after ttl
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: 25 * time.Millisecond}
}

// Lock blocks until key is acquired or ctx is done
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString() // Identifies this holder
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result() // SET key token NX PX ttl
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
		case <-time.After(l.retry):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	// Released even when the request context is already cancelled
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,         // Lock key
			"error": err.Error(), // Error message
		}).Warn("Failed to release lock")
	}
}

// LocalLocker is a key lock for a single API instance
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*keyLock
}

type keyLock struct {
	sem  chan struct{} // Holds one token while locked
	refs int           // Holders plus waiters
}

// NewLocalLocker returns an empty LocalLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*keyLock)}
}

// Lock blocks until key is acquired or ctx is done
func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	k, ok := l.keys[key]
	if !ok {
		k = &keyLock{sem: make(chan struct{}, 1)}
		l.keys[key] = k
	}
	k.refs++
	l.mu.Unlock()

	select {
	case k.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-k.sem
				l.drop(key, k)
			})
		}, nil
	case <-ctx.Done():
		l.drop(key, k)
		return nil, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
	}
}

// drop forgets the key once nobody holds or waits for it
func (l *LocalLocker) drop(key string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.keys, key)
	}
}

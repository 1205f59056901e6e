package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const (
	rentalEndLockPrefix = "rental:end:lock:"
	rentalEndLockTTL    = 30 * time.Second
)

// deletes only while ARGV[1] still holds the key
const lockReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var (
	ErrLockNotConfigured = errors.New("lock_not_configured")
	ErrLockKeyEmpty      = errors.New("lock_key_empty")
	// ErrLockExpired means the TTL lapsed before Release; the end ran unguarded past that point.
	ErrLockExpired = errors.New("lock_expired")
)

type lockClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// Locker guards rental ends: one holder per rental id for at most ttl.
type Locker struct {
	client   lockClient
	script   *redis.Script
	prefix   string
	ttl      time.Duration
	newToken func() string
}

// NewRentalEndLocker returns nil without a redis client.
func NewRentalEndLocker(client *redis.Client) *Locker {
	if client == nil {
		return nil
	}
	return newLocker(client, rentalEndLockPrefix, rentalEndLockTTL)
}

func newLocker(client lockClient, prefix string, ttl time.Duration) *Locker {
	return &Locker{
		client:   client,
		script:   redis.NewScript(lockReleaseScript),
		prefix:   prefix,
		ttl:      ttl,
		newToken: uuid.NewString,
	}
}

func (l *Locker) key(rentalID string) (string, error) {
	rentalID = strings.TrimSpace(rentalID)
	if rentalID == "" {
		return "", ErrLockKeyEmpty
	}
	return l.prefix + rentalID, nil
}

// Acquire returns the holder token, or ok=false while another request holds the rental.
func (l *Locker) Acquire(ctx context.Context, rentalID string) (string, bool, error) {
	if l == nil || l.client == nil {
		return "", false, ErrLockNotConfigured
	}
	key, err := l.key(rentalID)
	if err != nil {
		return "", false, err
	}

	token := l.newToken()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release is a no-op for an empty token, which is what a disabled limiter hands out.
func (l *Locker) Release(ctx context.Context, rentalID, token string) error {
	if l == nil || l.client == nil || token == "" {
		return nil
	}
	key, err := l.key(rentalID)
	if err != nil {
		return err
	}

	deleted, err := l.script.Run(ctx, l.client, []string{key}, token).Int64()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrLockExpired
	}
	return nil
}

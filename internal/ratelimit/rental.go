package ratelimit

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/scootfleet/internal/config"
)

const keyRentalStartAccount = "rental:start:account:%s"

// RentalLimiter throttles rental starts per account and serializes ends per rental.
// A nil limiter allows everything.
type RentalLimiter struct {
	bucket *TokenBucket
	locker *Locker
	policy *config.RentalPolicyHolder
}

func NewRentalLimiter(client *redis.Client, policy *config.RentalPolicyHolder) *RentalLimiter {
	if client == nil {
		return nil
	}
	return &RentalLimiter{
		bucket: NewTokenBucket(client),
		locker: NewRentalEndLocker(client),
		policy: policy,
	}
}

func (l *RentalLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *RentalLimiter) AllowStart(ctx context.Context, accountID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	limit := l.policy.Get().StartRateLimit
	if !limit.Enabled {
		return &RateLimitResult{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyRentalStartAccount, strings.TrimSpace(accountID))
	return l.bucket.Allow(ctx, key, limit.Rate, limit.Burst)
}

// TryLockEnd returns ok=true with an empty token when locking is disabled.
func (l *RentalLimiter) TryLockEnd(ctx context.Context, rentalID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	return l.locker.Acquire(ctx, rentalID)
}

func (l *RentalLimiter) ReleaseEnd(ctx context.Context, rentalID, token string) error {
	if !l.Enabled() {
		return nil
	}
	return l.locker.Release(ctx, rentalID, token)
}

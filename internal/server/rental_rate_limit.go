package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/observability/logger"
	"go.uber.org/zap"
)

const (
	rateLimitReasonAccountRate = "account-rate"
	rateLimitReasonEndInFlight = "end-in-flight"
)

// allowRentalStart applies the per-account token bucket. Redis failures fail open.
func (s *Server) allowRentalStart(c *gin.Context, accountID uuid.UUID) error {
	if !s.rentalLimiter.Enabled() {
		return nil
	}

	ctx := c.Request.Context()
	endpoint := normalizeRateLimitEndpoint(c)
	result, err := s.rentalLimiter.AllowStart(ctx, accountID.String())
	if err != nil {
		logger.FromContext(ctx).Warn("rental start rate limit check failed", zap.Error(err))
		return nil
	}
	if !result.Allowed {
		retryAfter := int(result.RetryAfter.Round(time.Second) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Header("X-Rate-Limited-Reason", rateLimitReasonAccountRate)
		logger.FromContext(ctx).Warn("rental start rate limit exceeded",
			zap.String("reason", rateLimitReasonAccountRate),
			zap.String("endpoint", endpoint),
		)
		s.obsMetrics.RecordRateLimitDenied(ctx, endpoint, rateLimitReasonAccountRate)
		return ErrRateLimited
	}

	s.obsMetrics.RecordRateLimitAllowed(ctx, endpoint)
	return nil
}

// lockRentalEnd holds the per-rental lock until the returned release runs.
func (s *Server) lockRentalEnd(c *gin.Context, rentalID uuid.UUID) (func(), error) {
	noop := func() {}
	if !s.rentalLimiter.Enabled() {
		return noop, nil
	}

	ctx := c.Request.Context()
	token, ok, err := s.rentalLimiter.TryLockEnd(ctx, rentalID.String())
	if err != nil {
		logger.FromContext(ctx).Warn("rental end lock failed", zap.Error(err))
		return noop, nil
	}
	if !ok {
		c.Header("Retry-After", "1")
		c.Header("X-Rate-Limited-Reason", rateLimitReasonEndInFlight)
		s.obsMetrics.RecordRateLimitDenied(ctx, normalizeRateLimitEndpoint(c), rateLimitReasonEndInFlight)
		return noop, ErrRateLimited
	}

	return func() {
		if err := s.rentalLimiter.ReleaseEnd(ctx, rentalID.String(), token); err != nil {
			logger.FromContext(ctx).Warn("rental end unlock failed", zap.Error(err))
		}
	}, nil
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = c.Request.URL.Path
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}

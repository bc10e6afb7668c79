package services

import (
	"context"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"go.uber.org/zap"
)

// RateLimiter is a token bucket per key, used to bound how many imports an
// owner can start per period. A limiter with maxTokens <= 0 allows everything.
type RateLimiter struct {
	buckets    map[string]*tokenBucket
	maxTokens  int
	refillRate time.Duration
	mutex      sync.Mutex
	logger     *logging.SafeLogger
}

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a limiter granting maxTokens per key, refilled one
// token every refillRate
func NewRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*tokenBucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		logger:     logger,
	}
}

// NewImportRateLimiter allows importsPerMinute runs per owner
func NewImportRateLimiter(importsPerMinute int, logger *logging.SafeLogger) *RateLimiter {
	if importsPerMinute <= 0 {
		return NewRateLimiter(0, 0, logger)
	}
	return NewRateLimiter(importsPerMinute, time.Minute/time.Duration(importsPerMinute), logger)
}

// Allow consumes a token of key and reports whether one was available
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl == nil || rl.maxTokens <= 0 {
		return true
	}

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b := rl.refill(key, time.Now())
	if b.tokens > 0 {
		b.tokens--
		return true
	}

	rl.logger.Warn("rate limiter rejected request",
		zap.String("key", key),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

// Remaining returns the tokens left for key
func (rl *RateLimiter) Remaining(key string) int {
	if rl == nil || rl.maxTokens <= 0 {
		return 0
	}

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.refill(key, time.Now()).tokens
}

// Cleanup drops buckets that have been full for longer than olderThan
func (rl *RateLimiter) Cleanup(olderThan time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := time.Now().Add(-olderThan)
	for key, b := range rl.buckets {
		if b.tokens >= rl.maxTokens && b.lastRefill.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// refill must be called with the mutex held
func (rl *RateLimiter) refill(key string, now time.Time) *tokenBucket {
	b, ok := rl.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: rl.maxTokens, lastRefill: now}
		rl.buckets[key] = b
		return b
	}

	tokensToAdd := int(now.Sub(b.lastRefill) / rl.refillRate)
	if tokensToAdd > 0 {
		b.tokens += tokensToAdd
		if b.tokens > rl.maxTokens {
			b.tokens = rl.maxTokens
		}
		b.lastRefill = b.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}
	return b
}

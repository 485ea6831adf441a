package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/wouldcart/triplexa/internal/config"
)

const (
	keyCalcEnquiry = "pricing:calc:enquiry:%s"
	keyCalcLock    = "pricing:calc:lock:%s"
)

// CalcLimiter throttles recalculation requests per enquiry. Debouncing in
// the snapshot store already coalesces writes; this keeps a misbehaving
// client from burning CPU on the pipeline itself. Disabled installs get a
// nil limiter and every request passes.
type CalcLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker

	rate    float64
	burst   int
	lockTTL time.Duration
}

func NewCalcLimiter(cfg config.Config) (*CalcLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.CalcRate <= 0 || limitCfg.CalcBurst <= 0 {
		return nil, errors.New("calc rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &CalcLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		rate:    limitCfg.CalcRate,
		burst:   limitCfg.CalcBurst,
		lockTTL: 10 * time.Second,
	}, nil
}

func (l *CalcLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *CalcLimiter) Allow(ctx context.Context, enquiryID string) (*RateLimitResult, error) {
	if !l.Enabled() {
		return &RateLimitResult{Allowed: true}, nil
	}
	key := fmt.Sprintf(keyCalcEnquiry, strings.TrimSpace(enquiryID))
	return l.bucket.Allow(ctx, key, l.rate, l.burst)
}

// TryLock serializes concurrent recalculations of one enquiry across
// instances.
func (l *CalcLimiter) TryLock(ctx context.Context, enquiryID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keyCalcLock, strings.TrimSpace(enquiryID))
	return l.locker.TryLock(ctx, key, l.lockTTL)
}

func (l *CalcLimiter) Unlock(ctx context.Context, enquiryID, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keyCalcLock, strings.TrimSpace(enquiryID))
	return l.locker.Release(ctx, key, token)
}

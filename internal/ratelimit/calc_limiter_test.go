package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wouldcart/triplexa/internal/config"
)

func TestNewCalcLimiter_DisabledReturnsNil(t *testing.T) {
	limiter, err := NewCalcLimiter(config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, limiter)
}

func TestNewCalcLimiter_RequiresRedisAddr(t *testing.T) {
	_, err := NewCalcLimiter(config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:   true,
			CalcRate:  1,
			CalcBurst: 5,
		},
	})
	assert.Error(t, err)
}

func TestNewCalcLimiter_RequiresPositiveRate(t *testing.T) {
	_, err := NewCalcLimiter(config.Config{
		RateLimit: config.RateLimitConfig{
			Enabled:   true,
			RedisAddr: "localhost:6379",
			CalcRate:  0,
			CalcBurst: 5,
		},
	})
	assert.Error(t, err)
}

// A nil limiter must let every request through: the calculate handler calls
// Allow, TryLock and Unlock unconditionally.
func TestDisabledLimiter_PassesThrough(t *testing.T) {
	var limiter *CalcLimiter
	ctx := context.Background()

	assert.False(t, limiter.Enabled())

	result, err := limiter.Allow(ctx, "42")
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	token, acquired, err := limiter.TryLock(ctx, "42")
	assert.NoError(t, err)
	assert.True(t, acquired)
	assert.Empty(t, token)

	assert.NoError(t, limiter.Unlock(ctx, "42", token))
}

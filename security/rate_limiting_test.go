package security

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreAllowWithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := &redisStore{redis: db, limit: 120}

	mock.ExpectIncr("ratelimit:device:abc").SetVal(1)
	mock.ExpectExpire("ratelimit:device:abc", time.Minute).SetVal(true)

	allowed, err := store.Allow("device:abc")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreBlocksOverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := &redisStore{redis: db, limit: 120}

	mock.ExpectIncr("ratelimit:device:abc").SetVal(121)

	allowed, err := store.Allow("device:abc")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisStoreFailsOpen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := &redisStore{redis: db, limit: 120}

	mock.ExpectIncr("ratelimit:device:abc").SetErr(errors.New("connection refused"))

	allowed, err := store.Allow("device:abc")
	require.NoError(t, err)
	assert.True(t, allowed, "limiter must pass traffic when redis is down")
}

func TestSuspiciousUserAgents(t *testing.T) {
	r := &RateLimiter{}

	assert.True(t, r.isSuspiciousUserAgent("Googlebot/2.1"))
	assert.True(t, r.isSuspiciousUserAgent("my-scraper 1.0"))
	assert.False(t, r.isSuspiciousUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)"))
	assert.False(t, r.isSuspiciousUserAgent(""))
}

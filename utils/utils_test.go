package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(16)
	require.NoError(t, err)
	// n random bytes hex-encode to 2n characters.
	assert.Len(t, code, 32)
	assert.Regexp(t, "^[0-9A-F]+$", code)

	other, err := GenerateCode(16)
	require.NoError(t, err)
	assert.NotEqual(t, code, other)
}

func TestCircuitBreakerPassesThrough(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestCircuitBreakerReturnsUpstreamError(t *testing.T) {
	cb := NewCircuitBreaker("test")
	upstream := errors.New("device offline")

	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return nil, upstream
	})
	assert.ErrorIs(t, err, upstream)
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker("test")
	upstream := errors.New("device offline")

	// Trip threshold is 20 requests at a 50% failure ratio.
	for i := 0; i < 20; i++ {
		cb.Execute(context.Background(), func() (interface{}, error) {
			return nil, upstream
		})
	}

	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		t.Fatal("call must not reach the upstream while open")
		return nil, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

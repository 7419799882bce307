package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{"created to pending", PaymentCreated, PaymentPending, true},
		{"created to confirmed skips pending", PaymentCreated, PaymentConfirmed, false},
		{"pending to confirmed", PaymentPending, PaymentConfirmed, true},
		{"pending to rejected", PaymentPending, PaymentRejected, true},
		{"pending back to created", PaymentPending, PaymentCreated, false},
		{"confirmed to refunded", PaymentConfirmed, PaymentRefunded, true},
		{"confirmed to rejected", PaymentConfirmed, PaymentRejected, false},
		{"rejected is terminal", PaymentRejected, PaymentPending, false},
		{"refunded is terminal", PaymentRefunded, PaymentConfirmed, false},
		{"no self transition", PaymentPending, PaymentPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPaymentStatusLifecyclePath(t *testing.T) {
	// The only full path through the lifecycle.
	path := []PaymentStatus{PaymentCreated, PaymentPending, PaymentConfirmed, PaymentRefunded}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, path[i].CanTransitionTo(path[i+1]),
			"%s -> %s should be legal", path[i], path[i+1])
	}
	assert.True(t, path[len(path)-1].IsTerminal())
}

func TestPaymentStatusTerminal(t *testing.T) {
	assert.False(t, PaymentCreated.IsTerminal())
	assert.False(t, PaymentPending.IsTerminal())
	assert.False(t, PaymentConfirmed.IsTerminal())
	assert.True(t, PaymentRejected.IsTerminal())
	assert.True(t, PaymentRefunded.IsTerminal())
}

func TestPaymentStatusValidity(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentCreated, PaymentPending, PaymentConfirmed, PaymentRejected, PaymentRefunded} {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, PaymentStatus("SETTLED").IsValid())
	assert.False(t, PaymentStatus("").IsValid())
}

func TestPaymentProviderValidity(t *testing.T) {
	for _, p := range []PaymentProvider{ProviderVPOS, ProviderMyAmeria, ProviderIdram, ProviderApplePay} {
		assert.True(t, p.IsValid(), "%s should be valid", p)
	}
	assert.False(t, PaymentProvider("STRIPE").IsValid())
	assert.False(t, PaymentProvider("vpos").IsValid(), "provider tags are case sensitive")
}

func TestPersonStatusValidity(t *testing.T) {
	for _, s := range []PersonStatus{PersonPending, PersonApproved, PersonRejected, PersonMember, PersonFree} {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, PersonStatus("banned").IsValid())
	assert.False(t, PersonStatus("Member").IsValid())
}

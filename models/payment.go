package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentCreated   PaymentStatus = "CREATED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentConfirmed PaymentStatus = "CONFIRMED"
	PaymentRejected  PaymentStatus = "REJECTED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentCreated, PaymentPending, PaymentConfirmed, PaymentRejected, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step. REJECTED and REFUNDED are terminal; CONFIRMED only
// allows the refund step.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentCreated:
		return next == PaymentPending
	case PaymentPending:
		return next == PaymentConfirmed || next == PaymentRejected
	case PaymentConfirmed:
		return next == PaymentRefunded
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentRejected || s == PaymentRefunded
}

type PaymentProvider string

const (
	ProviderVPOS     PaymentProvider = "VPOS"
	ProviderMyAmeria PaymentProvider = "MYAMERIA"
	ProviderIdram    PaymentProvider = "IDRAM"
	ProviderApplePay PaymentProvider = "APPLEPAY"
)

func (p PaymentProvider) IsValid() bool {
	switch p {
	case ProviderVPOS, ProviderMyAmeria, ProviderIdram, ProviderApplePay:
		return true
	}
	return false
}

type Payment struct {
	OrderID           int             `json:"order_id"`
	PersonID          string          `json:"person_id"`
	EventID           string          `json:"event_id"`
	Amount            float64         `json:"amount"`
	Provider          PaymentProvider `json:"provider"`
	TicketHolders     []string        `json:"ticket_holders"`
	UpstreamPaymentID string          `json:"upstream_payment_id,omitempty"`
	Status            PaymentStatus   `json:"status"` // CREATED, PENDING, CONFIRMED, REJECTED, REFUNDED
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

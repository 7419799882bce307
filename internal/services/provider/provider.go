package provider

import (
	"context"

	"pass-platform/internal/status"
	"pass-platform/models"

	"github.com/shopspring/decimal"
)

// InitRequest is a provider-agnostic checkout initiation request.
type InitRequest struct {
	OrderID     int             `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	PersonID    string          `json:"person_id,omitempty"`
	BackURL     string          `json:"back_url,omitempty"`
}

// InitResult carries what the caller needs to hand the payer over to
// the provider's checkout.
type InitResult struct {
	UpstreamPaymentID string `json:"upstream_payment_id"`
	RedirectURL       string `json:"redirect_url,omitempty"`
}

// Details is a provider detail response mapped onto the common
// reconciliation vocabulary.
type Details struct {
	UpstreamPaymentID string               `json:"upstream_payment_id"`
	OrderID           int                  `json:"order_id"`
	Status            models.PaymentStatus `json:"status"`
	Amount            decimal.Decimal      `json:"amount"`
	Description       string               `json:"description,omitempty"`
	Refunded          bool                 `json:"refunded"`
}

// Gateway defines the common interface for all payment providers.
type Gateway interface {
	// Provider returns the provider tag.
	Provider() models.PaymentProvider

	// InitPayment registers the order upstream and opens a checkout.
	InitPayment(ctx context.Context, req *InitRequest) (*InitResult, error)

	// PaymentDetails fetches the upstream view of a payment.
	PaymentDetails(ctx context.Context, upstreamID string) (*Details, error)

	// Refund refunds a confirmed upstream payment.
	Refund(ctx context.Context, upstreamID string, amount decimal.Decimal) error

	// SetConfirmationChannel sets the channel for receiving async
	// confirmations, for providers that push them.
	SetConfirmationChannel(ch chan *status.Confirmation)

	// Close gracefully closes any connections.
	Close(ctx context.Context) error
}

// Factory creates gateway instances based on provider tag.
type Factory interface {
	CreateGateway(ctx context.Context, p models.PaymentProvider, config interface{}) (Gateway, error)
	GetSupportedProviders() []models.PaymentProvider
}

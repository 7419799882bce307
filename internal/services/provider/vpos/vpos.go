package vpos

import (
	"context"
	"fmt"

	"pass-platform/models"
	"pass-platform/schemas"

	"github.com/shopspring/decimal"
)

type (
	Config struct {
		BaseURL  string `json:"base_url" mapstructure:"base_url"`
		ClientID string `json:"client_id" mapstructure:"client_id"`
		Username string `json:"username" mapstructure:"username"`
		Password string `json:"password" mapstructure:"password"`
		BackURL  string `json:"back_url" mapstructure:"back_url"`
	}

	VPOS struct {
		backURL string

		client *Client
	}
)

// approved response code per the gateway docs. Anything else on a
// finished order is a decline.
const responseCodeApproved = "00"

// New returns a new virtual POS instance.
func New(ctx context.Context, cfg *Config) (*VPOS, error) {
	client := newClient(ctx, &ClientConfig{
		BaseURL:  cfg.BaseURL,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	return &VPOS{
		backURL: cfg.BackURL,
		client:  client,
	}, nil
}

// InitPayment registers the order and returns the upstream payment id
// together with the hosted checkout redirect.
func (v *VPOS) InitPayment(ctx context.Context, orderID int, amount decimal.Decimal, description, opaque string) (string, string, error) {
	f, _ := amount.Float64()
	reply, err := v.client.initPayment(ctx, orderID, f, description, v.backURL, opaque)
	if err != nil {
		return "", "", err
	}

	redirect := fmt.Sprintf("%s/Payments/Pay?id=%s&lang=en", v.client.baseURL, reply.PaymentID)
	return reply.PaymentID, redirect, nil
}

// PaymentDetails fetches the raw gateway detail response.
func (v *VPOS) PaymentDetails(ctx context.Context, paymentID string) (*schemas.VPOSPaymentDetailsResponse, error) {
	return v.client.getPaymentDetails(ctx, paymentID)
}

// Refund refunds a deposited payment.
func (v *VPOS) Refund(ctx context.Context, paymentID string, amount decimal.Decimal) error {
	f, _ := amount.Float64()
	return v.client.refundPayment(ctx, paymentID, f)
}

// StatusFromDetails maps a gateway detail response onto the payment
// lifecycle vocabulary.
func StatusFromDetails(d *schemas.VPOSPaymentDetailsResponse) models.PaymentStatus {
	if d.RefundedAmount != nil && *d.RefundedAmount > 0 {
		return models.PaymentRefunded
	}
	if d.ResponseCode != nil && *d.ResponseCode == responseCodeApproved {
		return models.PaymentConfirmed
	}
	if d.ResponseCode == nil || *d.ResponseCode == "" {
		return models.PaymentPending
	}
	return models.PaymentRejected
}

package provider

import (
	"context"
	"fmt"
	"strconv"

	"pass-platform/internal/services/provider/vpos"
	"pass-platform/internal/status"
	"pass-platform/models"

	"github.com/shopspring/decimal"
)

// VPOSAdapter wraps the virtual POS client to conform to Gateway.
type VPOSAdapter struct {
	client *vpos.VPOS
}

// NewVPOSAdapter creates a new virtual POS adapter.
func NewVPOSAdapter(ctx context.Context, config *vpos.Config) (*VPOSAdapter, error) {
	client, err := vpos.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create VPOS client: %w", err)
	}

	return &VPOSAdapter{
		client: client,
	}, nil
}

func (a *VPOSAdapter) Provider() models.PaymentProvider {
	return models.ProviderVPOS
}

func (a *VPOSAdapter) InitPayment(ctx context.Context, req *InitRequest) (*InitResult, error) {
	// Opaque carries the internal order id back through the gateway's
	// return redirect.
	paymentID, redirect, err := a.client.InitPayment(ctx, req.OrderID, req.Amount, req.Description, strconv.Itoa(req.OrderID))
	if err != nil {
		return nil, err
	}

	return &InitResult{
		UpstreamPaymentID: paymentID,
		RedirectURL:       redirect,
	}, nil
}

func (a *VPOSAdapter) PaymentDetails(ctx context.Context, upstreamID string) (*Details, error) {
	d, err := a.client.PaymentDetails(ctx, upstreamID)
	if err != nil {
		return nil, err
	}

	details := &Details{
		UpstreamPaymentID: upstreamID,
		Status:            vpos.StatusFromDetails(d),
		Refunded:          d.RefundedAmount != nil && *d.RefundedAmount > 0,
	}
	if d.OrderID != nil {
		details.OrderID = *d.OrderID
	}
	if d.Amount != nil {
		details.Amount = decimal.NewFromFloat(*d.Amount)
	}
	if d.TrxnDescription != nil {
		details.Description = *d.TrxnDescription
	}
	return details, nil
}

func (a *VPOSAdapter) Refund(ctx context.Context, upstreamID string, amount decimal.Decimal) error {
	return a.client.Refund(ctx, upstreamID, amount)
}

// SetConfirmationChannel is a no-op: the gateway has no push channel,
// confirmations are pulled via PaymentDetails.
func (a *VPOSAdapter) SetConfirmationChannel(ch chan *status.Confirmation) {
}

func (a *VPOSAdapter) Close(ctx context.Context) error {
	return nil
}

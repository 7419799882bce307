package provider

import (
	"context"
	"fmt"
	"strconv"

	"pass-platform/internal/services/provider/myameria"
	"pass-platform/internal/status"
	"pass-platform/models"

	"github.com/shopspring/decimal"
)

// MyAmeriaAdapter wraps the wallet client to conform to Gateway.
type MyAmeriaAdapter struct {
	client *myameria.Wallet
}

// NewMyAmeriaAdapter creates a new MyAmeria adapter.
func NewMyAmeriaAdapter(ctx context.Context, config *myameria.Config) (*MyAmeriaAdapter, error) {
	client, err := myameria.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create MyAmeria client: %w", err)
	}

	return &MyAmeriaAdapter{
		client: client,
	}, nil
}

func (a *MyAmeriaAdapter) Provider() models.PaymentProvider {
	return models.ProviderMyAmeria
}

func (a *MyAmeriaAdapter) InitPayment(ctx context.Context, req *InitRequest) (*InitResult, error) {
	// The wallet correlates on transactionId; the internal order id
	// plays that role.
	paymentID, redirect, err := a.client.CreatePayment(ctx, req.Amount, strconv.Itoa(req.OrderID), req.PersonID)
	if err != nil {
		return nil, err
	}

	return &InitResult{
		UpstreamPaymentID: paymentID,
		RedirectURL:       redirect,
	}, nil
}

func (a *MyAmeriaAdapter) PaymentDetails(ctx context.Context, upstreamID string) (*Details, error) {
	d, err := a.client.PaymentDetails(ctx, upstreamID, "")
	if err != nil {
		return nil, err
	}

	orderID, _ := strconv.Atoi(d.TransactionID)
	return &Details{
		UpstreamPaymentID: d.PaymentID,
		OrderID:           orderID,
		Status:            myameria.StatusFromDetails(d),
		Amount:            decimal.NewFromFloat(d.Amount),
		Refunded:          d.IsRefunded,
	}, nil
}

func (a *MyAmeriaAdapter) Refund(ctx context.Context, upstreamID string, amount decimal.Decimal) error {
	return a.client.Refund(ctx, upstreamID, amount)
}

// SetConfirmationChannel sets the channel fed by the wallet's PubNub
// subscription.
func (a *MyAmeriaAdapter) SetConfirmationChannel(ch chan *status.Confirmation) {
	a.client.SetConfirmationChannel(ch)
}

func (a *MyAmeriaAdapter) Close(ctx context.Context) error {
	a.client.Unsubscribe(ctx)
	return nil
}

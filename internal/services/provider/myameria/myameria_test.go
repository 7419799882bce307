package myameria

import (
	"testing"

	"pass-platform/models"
	"pass-platform/schemas"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromDetails(t *testing.T) {
	assert.Equal(t, models.PaymentConfirmed, StatusFromDetails(&schemas.MyameriaPaymentDetailsResponse{
		IsSuccessful: true,
	}))
	assert.Equal(t, models.PaymentRejected, StatusFromDetails(&schemas.MyameriaPaymentDetailsResponse{
		IsSuccessful: false,
	}))
	// A refunded payment reports successful too; refund wins.
	assert.Equal(t, models.PaymentRefunded, StatusFromDetails(&schemas.MyameriaPaymentDetailsResponse{
		IsSuccessful: true,
		IsRefunded:   true,
	}))
}

func TestPayloadToDomain(t *testing.T) {
	p := payload{
		PaymentID:     "pay-1",
		TransactionID: "42",
		Amount:        5000,
		IsSuccessful:  true,
		PaymentDate:   "2026-08-29T12:30:00Z",
	}

	conf, err := p.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, "pay-1", conf.UpstreamPaymentID)
	assert.Equal(t, "42", conf.TransactionID)
	assert.True(t, conf.Succeeded)
	assert.True(t, conf.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 2026, conf.CreatedAt.Year())
}

func TestPayloadToDomainBadDate(t *testing.T) {
	p := payload{PaymentID: "pay-1", PaymentDate: "yesterday"}
	_, err := p.ToDomain()
	assert.Error(t, err)
}

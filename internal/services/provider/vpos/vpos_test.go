package vpos

import (
	"testing"

	"pass-platform/models"
	"pass-platform/schemas"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestStatusFromDetails(t *testing.T) {
	tests := []struct {
		name    string
		details schemas.VPOSPaymentDetailsResponse
		want    models.PaymentStatus
	}{
		{
			name:    "approved",
			details: schemas.VPOSPaymentDetailsResponse{ResponseCode: strPtr("00")},
			want:    models.PaymentConfirmed,
		},
		{
			name:    "declined",
			details: schemas.VPOSPaymentDetailsResponse{ResponseCode: strPtr("51")},
			want:    models.PaymentRejected,
		},
		{
			name:    "still in checkout",
			details: schemas.VPOSPaymentDetailsResponse{ResponseCode: strPtr("")},
			want:    models.PaymentPending,
		},
		{
			name:    "no response yet",
			details: schemas.VPOSPaymentDetailsResponse{},
			want:    models.PaymentPending,
		},
		{
			name: "refund wins over approval",
			details: schemas.VPOSPaymentDetailsResponse{
				ResponseCode:   strPtr("00"),
				RefundedAmount: floatPtr(5000),
			},
			want: models.PaymentRefunded,
		},
		{
			name: "zero refunded amount is not a refund",
			details: schemas.VPOSPaymentDetailsResponse{
				ResponseCode:   strPtr("00"),
				RefundedAmount: floatPtr(0),
			},
			want: models.PaymentConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromDetails(&tt.details))
		})
	}
}

package status

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confirmation is an asynchronous payment confirmation pushed by a
// provider, normalized away from any provider's native payload.
type Confirmation struct {
	UpstreamPaymentID string          `json:"upstream_payment_id"`
	TransactionID     string          `json:"transaction_id"`
	Amount            decimal.Decimal `json:"amount"`
	Succeeded         bool            `json:"succeeded"`
	CreatedAt         time.Time       `json:"created_at"`
}

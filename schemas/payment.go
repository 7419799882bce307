package schemas

import (
	"time"

	"pass-platform/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var providerRule = validation.In(
	models.ProviderVPOS,
	models.ProviderMyAmeria,
	models.ProviderIdram,
	models.ProviderApplePay,
)

type PaymentCreate struct {
	PersonID      string                 `json:"person_id"`
	EventID       string                 `json:"event_id"`
	Amount        float64                `json:"amount"`
	Provider      models.PaymentProvider `json:"provider"`
	TicketHolders []string               `json:"ticket_holders"`
}

func (r PaymentCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PersonID, validation.Required, is.UUID),
		validation.Field(&r.EventID, validation.Required, is.UUID),
		validation.Field(&r.Amount, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.Provider, validation.Required, providerRule),
		validation.Field(&r.TicketHolders, validation.Required, validation.Each(is.UUID)),
	)
}

type PaymentResponse struct {
	OrderID           int                    `json:"order_id"`
	PersonID          string                 `json:"person_id"`
	EventID           string                 `json:"event_id"`
	Amount            float64                `json:"amount"`
	Provider          models.PaymentProvider `json:"provider"`
	TicketHolders     []string               `json:"ticket_holders"`
	UpstreamPaymentID *string                `json:"upstream_payment_id"`
	Status            models.PaymentStatus   `json:"status"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         *time.Time             `json:"updated_at"`
}

type PaymentConfirmRequest struct {
	OrderID   int                    `json:"order_id"`
	Provider  models.PaymentProvider `json:"provider"`
	PaymentID string                 `json:"payment_id,omitempty"`
}

func (r PaymentConfirmRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OrderID, validation.Required, validation.Min(1)),
		validation.Field(&r.Provider, validation.Required, providerRule),
		validation.Field(&r.PaymentID, is.UUID),
	)
}

// PaymentConfirmResponse is the common vocabulary every provider adapter
// maps its native detail response onto.
type PaymentConfirmResponse struct {
	OrderID     int                    `json:"order_id"`
	Provider    models.PaymentProvider `json:"provider"`
	PaymentID   *string                `json:"payment_id"`
	Status      models.PaymentStatus   `json:"status"`
	Description *string                `json:"description"`
	PersonID    string                 `json:"person_id"`
	EventID     string                 `json:"event_id"`
	Amount      float64                `json:"amount"`
	TicketCount int                    `json:"ticket_count"`
}

// Virtual POS wire shapes. Field casing is the gateway's, not ours.

type VposInitPaymentRequest struct {
	ClientID    string  `json:"ClientID"`
	Username    string  `json:"Username"`
	Password    string  `json:"Password"`
	Description string  `json:"Description"`
	OrderID     int     `json:"OrderID"`
	Amount      float64 `json:"Amount"`
	BackURL     string  `json:"BackURL,omitempty"`
	Opaque      string  `json:"Opaque,omitempty"`
}

type VPOSPaymentDetailsRequest struct {
	Username  string `json:"Username"`
	Password  string `json:"Password"`
	PaymentID string `json:"PaymentID"`
}

type VPOSPaymentDetailsResponse struct {
	Amount          *float64 `json:"Amount"`
	ApprovedAmount  *float64 `json:"ApprovedAmount"`
	ApprovalCode    *string  `json:"ApprovalCode"`
	CardNumber      *string  `json:"CardNumber"`
	ClientName      *string  `json:"ClientName"`
	ClientEmail     *string  `json:"ClientEmail"`
	Currency        *string  `json:"Currency"`
	DateTime        *string  `json:"DateTime"`
	DepositedAmount *float64 `json:"DepositedAmount"`
	Description     *string  `json:"Description"`
	MerchantID      *string  `json:"MerchantId"`
	Opaque          *string  `json:"Opaque"`
	OrderID         *int     `json:"OrderID"`
	PaymentState    *string  `json:"PaymentState"`
	PaymentType     *int     `json:"PaymentType"`
	ResponseCode    *string  `json:"ResponseCode"`
	RRN             *string  `json:"rrn"`
	TerminalID      *string  `json:"TerminalId"`
	TrxnDescription *string  `json:"TrxnDescription"`
	OrderStatus     *int     `json:"OrderStatus"`
	RefundedAmount  *float64 `json:"RefundedAmount"`
	CardHolderID    *string  `json:"CardHolderID"`
	MDOrderID       *string  `json:"MDOrderID"`
	PrimaryRC       *string  `json:"PrimaryRC"`
	ExpDate         *string  `json:"ExpDate"`
	ProcessingIP    *string  `json:"ProcessingIP"`
	BindingID       *string  `json:"BindingID"`
	ActionCode      *string  `json:"ActionCode"`
	ExchangeRate    *float64 `json:"ExchangeRate"`
}

// MyAmeria wallet wire shapes.

type MyAmeriaCreateRequest struct {
	TransactionAmount float64 `json:"transactionAmount"`
	TransactionID     string  `json:"transactionId,omitempty"`
	MerchantID        string  `json:"merchantId,omitempty"`
	IsBindingEnabled  bool    `json:"isBindingEnabled"`
	UserID            string  `json:"userId,omitempty"`
}

type MyameriaPaymentDetailsRequest struct {
	TransactionID string `json:"transactionId"`
	PaymentID     string `json:"paymentId"`
	MerchantID    string `json:"merchantId"`
}

type MyameriaPaymentDetailsResponse struct {
	IsSuccessful   bool              `json:"isSuccessful"`
	Amount         float64           `json:"amount"`
	TransactionID  string            `json:"transactionId"`
	PaymentID      string            `json:"paymentId"`
	MerchantID     string            `json:"merchantId"`
	CreatedDate    time.Time         `json:"createdDate"`
	PaymentDate    time.Time         `json:"paymentDate"`
	IsRefunded     bool              `json:"isRefunded"`
	RefundedAmount float64           `json:"refundedAmount"`
	RefundedDate   *time.Time        `json:"refundedDate"`
	BindID         *string           `json:"bindId"`
	Labels         map[string]string `json:"labels,omitempty"`
}

package schemas

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type EventTicketCreate struct {
	PersonID       string `json:"person_id"`
	EventID        string `json:"event_id"`
	PaymentOrderID *int   `json:"payment_order_id,omitempty"`
}

func (r EventTicketCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PersonID, validation.Required, is.UUID),
		validation.Field(&r.EventID, validation.Required, is.UUID),
		validation.Field(&r.PaymentOrderID, validation.Min(1)),
	)
}

type EventTicketResponse struct {
	ID             string    `json:"id"`
	PersonID       string    `json:"person_id"`
	EventID        string    `json:"event_id"`
	PaymentOrderID *int      `json:"payment_order_id"`
	IsUsed         bool      `json:"is_used"`
	ApplePassURL   *string   `json:"apple_pass_url"`
	GooglePassURL  *string   `json:"google_pass_url"`
	LastUpdated    time.Time `json:"last_updated"`
	IsSent         bool      `json:"is_sent"`
}

type AttendanceResponse struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	PersonID      string     `json:"person_id"`
	EventTicketID *string    `json:"event_ticket_id"`
	DateModified  *time.Time `json:"date_modified"`
}

// SendLink asks for a ticket access link to be emailed out.
type SendLink struct {
	Email   string `json:"email"`
	EventID string `json:"event_id"`
}

func (r SendLink) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.EventID, validation.Required, is.UUID),
	)
}

// TokenValidationResponse resolves an access token to its person and
// event, flagging whether a ticket already exists for the pair.
type TokenValidationResponse struct {
	PersonID  string `json:"person_id"`
	EventID   string `json:"event_id"`
	HasTicket bool   `json:"has_ticket"`
}

// ChatMessage is a generic outbound chat-style message.
type ChatMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (r ChatMessage) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ChatID, validation.Required),
		validation.Field(&r.Text, validation.Required),
	)
}

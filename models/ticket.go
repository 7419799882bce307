package models

import (
	"time"
)

type EventTicket struct {
	ID             string     `json:"id"`
	PersonID       string     `json:"person_id"`
	EventID        string     `json:"event_id"`
	PaymentOrderID *int       `json:"payment_order_id,omitempty"`
	IsUsed         bool       `json:"is_used"`
	ApplePassURL   string     `json:"apple_pass_url,omitempty"`
	GooglePassURL  string     `json:"google_pass_url,omitempty"`
	LastUpdated    time.Time  `json:"last_updated"`
	IsSent         bool       `json:"is_sent"`
	AttendedAt     *time.Time `json:"attended_at,omitempty"`
}

type Attendance struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	PersonID      string     `json:"person_id"`
	EventTicketID string     `json:"event_ticket_id,omitempty"`
	DateModified  *time.Time `json:"date_modified,omitempty"`
}

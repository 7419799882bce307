package models

import (
	"time"
)

type Event struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	StartsAt              time.Time  `json:"starts_at"`
	EndsAt                *time.Time `json:"ends_at,omitempty"`
	EarlyBirdDate         *time.Time `json:"early_bird_date,omitempty"`
	EarlyBirdPrice        *int       `json:"early_bird_price,omitempty"`
	VenueID               string     `json:"venue_id"`
	ImageURL              string     `json:"image_url,omitempty"`
	Description           string     `json:"description,omitempty"`
	GeneralAdmissionPrice *int       `json:"general_admission_price,omitempty"`
	MemberTicketPrice     *int       `json:"member_ticket_price,omitempty"`
	MaxCapacity           *int       `json:"max_capacity,omitempty"`
	Shared                bool       `json:"shared"`
	Created               time.Time  `json:"created"`
}

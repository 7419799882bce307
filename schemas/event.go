package schemas

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type EventCreate struct {
	Name                  string     `json:"name"`
	StartsAt              time.Time  `json:"starts_at"`
	EndsAt                *time.Time `json:"ends_at,omitempty"`
	EarlyBirdDate         *time.Time `json:"early_bird_date,omitempty"`
	VenueID               string     `json:"venue_id"`
	ImageURL              *string    `json:"image_url,omitempty"`
	Description           *string    `json:"description,omitempty"`
	EarlyBirdPrice        *int       `json:"early_bird_price,omitempty"`
	GeneralAdmissionPrice *int       `json:"general_admission_price,omitempty"`
	MemberTicketPrice     *int       `json:"member_ticket_price,omitempty"`
	MaxCapacity           *int       `json:"max_capacity,omitempty"`
	Shared                bool       `json:"shared"`
}

func (r EventCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.VenueID, validation.Required, is.UUID),
		validation.Field(&r.EarlyBirdPrice, validation.Min(0)),
		validation.Field(&r.GeneralAdmissionPrice, validation.Min(0)),
		validation.Field(&r.MemberTicketPrice, validation.Min(0)),
		validation.Field(&r.MaxCapacity, validation.Min(1)),
	)
}

type EventUpdate struct {
	Name                  *string    `json:"name,omitempty"`
	StartsAt              *time.Time `json:"starts_at,omitempty"`
	EndsAt                *time.Time `json:"ends_at,omitempty"`
	EarlyBirdDate         *time.Time `json:"early_bird_date,omitempty"`
	VenueID               *string    `json:"venue_id,omitempty"`
	ImageURL              *string    `json:"image_url,omitempty"`
	Description           *string    `json:"description,omitempty"`
	EarlyBirdPrice        *int       `json:"early_bird_price,omitempty"`
	GeneralAdmissionPrice *int       `json:"general_admission_price,omitempty"`
	MemberTicketPrice     *int       `json:"member_ticket_price,omitempty"`
	MaxCapacity           *int       `json:"max_capacity,omitempty"`
	Shared                *bool      `json:"shared,omitempty"`
}

func (r EventUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.VenueID, is.UUID),
		validation.Field(&r.EarlyBirdPrice, validation.Min(0)),
		validation.Field(&r.GeneralAdmissionPrice, validation.Min(0)),
		validation.Field(&r.MemberTicketPrice, validation.Min(0)),
		validation.Field(&r.MaxCapacity, validation.Min(1)),
	)
}

func (r EventUpdate) Apply(set func(field string, value any)) {
	if r.Name != nil {
		set("name", *r.Name)
	}
	if r.StartsAt != nil {
		set("starts_at", *r.StartsAt)
	}
	if r.EndsAt != nil {
		set("ends_at", *r.EndsAt)
	}
	if r.EarlyBirdDate != nil {
		set("early_bird_date", *r.EarlyBirdDate)
	}
	if r.VenueID != nil {
		set("venue_id", *r.VenueID)
	}
	if r.ImageURL != nil {
		set("image_url", *r.ImageURL)
	}
	if r.Description != nil {
		set("description", *r.Description)
	}
	if r.EarlyBirdPrice != nil {
		set("early_bird_price", *r.EarlyBirdPrice)
	}
	if r.GeneralAdmissionPrice != nil {
		set("general_admission_price", *r.GeneralAdmissionPrice)
	}
	if r.MemberTicketPrice != nil {
		set("member_ticket_price", *r.MemberTicketPrice)
	}
	if r.MaxCapacity != nil {
		set("max_capacity", *r.MaxCapacity)
	}
	if r.Shared != nil {
		set("shared", *r.Shared)
	}
}

type EventResponse struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	StartsAt              time.Time  `json:"starts_at"`
	EndsAt                *time.Time `json:"ends_at"`
	EarlyBirdDate         *time.Time `json:"early_bird_date"`
	VenueID               string     `json:"venue_id"`
	ImageURL              *string    `json:"image_url"`
	Description           *string    `json:"description"`
	EarlyBirdPrice        *int       `json:"early_bird_price"`
	GeneralAdmissionPrice *int       `json:"general_admission_price"`
	MemberTicketPrice     *int       `json:"member_ticket_price"`
	MaxCapacity           *int       `json:"max_capacity"`
	Shared                bool       `json:"shared"`
}

package schemas

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type MemberCardCreate struct {
	PersonID string `json:"person_id"`
}

func (r MemberCardCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PersonID, validation.Required, is.UUID),
	)
}

type MemberCardResponse struct {
	ID            string    `json:"id"`
	SerialNumber  int       `json:"serial_number"`
	PersonID      string    `json:"person_id"`
	ApplePassURL  string    `json:"apple_pass_url"`
	GooglePassURL string    `json:"google_pass_url"`
	LastUpdated   time.Time `json:"last_updated"`
}

// RegistrationRequest is the wallet app's push-token registration body.
// Field casing follows the pass web service contract.
type RegistrationRequest struct {
	PushToken string `json:"pushToken"`
}

func (r RegistrationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PushToken, validation.Required),
	)
}

type UpdatedPassesResponse struct {
	SerialNumbers []string `json:"serialNumbers"`
	LastUpdated   string   `json:"lastUpdated"`
}

type LogRequest struct {
	Logs []string `json:"logs"`
}

func (r LogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Logs, validation.Required),
	)
}

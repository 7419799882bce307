package schemas

import (
	"pass-platform/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type PersonCreate struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	InstagramHandle *string `json:"instagram_handle,omitempty"`
	TelegramHandle  *string `json:"telegram_handle,omitempty"`
}

func (r PersonCreate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type PersonUpdate struct {
	Name            *string              `json:"name,omitempty"`
	Email           *string              `json:"email,omitempty"`
	InstagramHandle *string              `json:"instagram_handle,omitempty"`
	TelegramHandle  *string              `json:"telegram_handle,omitempty"`
	Status          *models.PersonStatus `json:"status,omitempty"`
	AvatarURL       *string              `json:"avatar_url,omitempty"`
}

func (r PersonUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Status, validation.In(
			models.PersonPending,
			models.PersonApproved,
			models.PersonRejected,
			models.PersonMember,
			models.PersonFree,
		)),
		validation.Field(&r.AvatarURL, is.URL),
	)
}

func (r PersonUpdate) Apply(set func(field string, value any)) {
	if r.Name != nil {
		set("name", *r.Name)
	}
	if r.Email != nil {
		set("email", *r.Email)
	}
	if r.InstagramHandle != nil {
		set("instagram_handle", *r.InstagramHandle)
	}
	if r.TelegramHandle != nil {
		set("telegram_handle", *r.TelegramHandle)
	}
	if r.Status != nil {
		set("status", string(*r.Status))
	}
	if r.AvatarURL != nil {
		set("avatar_url", *r.AvatarURL)
	}
}

type PersonResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	InstagramHandle *string             `json:"instagram_handle"`
	TelegramHandle  *string             `json:"telegram_handle"`
	Status          models.PersonStatus `json:"status"`
	AvatarURL       *string             `json:"avatar_url"`
}

package schemas

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type VenueCreate struct {
	Name           string  `json:"name"`
	ShortName      string  `json:"short_name"`
	Address        *string `json:"address,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	GoogleMapsLink string  `json:"google_maps_link"`
	YandexMapsLink string  `json:"yandex_maps_link"`
}

func (r VenueCreate) Validate() error {
	// Latitude/longitude are intentionally unchecked beyond presence;
	// the upstream contract declares no range for them.
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.ShortName, validation.Required),
		validation.Field(&r.GoogleMapsLink, validation.Required, is.URL),
		validation.Field(&r.YandexMapsLink, validation.Required, is.URL),
	)
}

type VenueUpdate struct {
	Name           *string  `json:"name,omitempty"`
	ShortName      *string  `json:"short_name,omitempty"`
	Address        *string  `json:"address,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	GoogleMapsLink *string  `json:"google_maps_link,omitempty"`
	YandexMapsLink *string  `json:"yandex_maps_link,omitempty"`
}

func (r VenueUpdate) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GoogleMapsLink, is.URL),
		validation.Field(&r.YandexMapsLink, is.URL),
	)
}

// Apply invokes set for each present field. Omitted fields are untouched,
// so the empty update is a no-op.
func (r VenueUpdate) Apply(set func(field string, value any)) {
	if r.Name != nil {
		set("name", *r.Name)
	}
	if r.ShortName != nil {
		set("short_name", *r.ShortName)
	}
	if r.Address != nil {
		set("address", *r.Address)
	}
	if r.Latitude != nil {
		set("latitude", *r.Latitude)
	}
	if r.Longitude != nil {
		set("longitude", *r.Longitude)
	}
	if r.GoogleMapsLink != nil {
		set("google_maps_link", *r.GoogleMapsLink)
	}
	if r.YandexMapsLink != nil {
		set("yandex_maps_link", *r.YandexMapsLink)
	}
}

type VenueResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ShortName      string  `json:"short_name"`
	Address        *string `json:"address"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	GoogleMapsLink string  `json:"google_maps_link"`
	YandexMapsLink string  `json:"yandex_maps_link"`
}

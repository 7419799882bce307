package models

type Venue struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ShortName      string  `json:"short_name"`
	Address        string  `json:"address,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	GoogleMapsLink string  `json:"google_maps_link"`
	YandexMapsLink string  `json:"yandex_maps_link"`
}

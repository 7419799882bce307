package handlers

import (
	"net/http"

	"pass-platform/models"
	"pass-platform/schemas"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type VenueHandler struct {
	app *pocketbase.PocketBase
}

func NewVenueHandler(app *pocketbase.PocketBase) *VenueHandler {
	return &VenueHandler{app: app}
}

// CreateVenue - Create a venue
func (h *VenueHandler) CreateVenue(e *core.RequestEvent) error {
	var req schemas.VenueCreate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	collection, err := h.app.FindCollectionByNameOrId("venues")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("id", uuid.NewString())
	record.Set("name", req.Name)
	record.Set("short_name", req.ShortName)
	if req.Address != nil {
		record.Set("address", *req.Address)
	}
	record.Set("latitude", req.Latitude)
	record.Set("longitude", req.Longitude)
	record.Set("google_maps_link", req.GoogleMapsLink)
	record.Set("yandex_maps_link", req.YandexMapsLink)

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to create venue", err)
	}

	return e.JSON(http.StatusCreated, venueResponse(record))
}

// GetVenue - Get a venue by id
func (h *VenueHandler) GetVenue(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("venues", e.Request.PathValue("venueId"))
	if err != nil {
		return apis.NewNotFoundError("Venue not found", err)
	}
	return e.JSON(http.StatusOK, venueResponse(record))
}

// ListVenues - List all venues
func (h *VenueHandler) ListVenues(e *core.RequestEvent) error {
	records, err := h.app.FindRecordsByFilter("venues", "id != ''", "name", 0, 0)
	if err != nil {
		return apis.NewBadRequestError("Failed to list venues", err)
	}

	result := make([]schemas.VenueResponse, 0, len(records))
	for _, record := range records {
		result = append(result, venueResponse(record))
	}
	return e.JSON(http.StatusOK, result)
}

// UpdateVenue - Partially update a venue; omitted fields stay untouched
func (h *VenueHandler) UpdateVenue(e *core.RequestEvent) error {
	var req schemas.VenueUpdate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	record, err := h.app.FindRecordById("venues", e.Request.PathValue("venueId"))
	if err != nil {
		return apis.NewNotFoundError("Venue not found", err)
	}

	req.Apply(func(field string, value any) {
		record.Set(field, value)
	})

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to update venue", err)
	}
	return e.JSON(http.StatusOK, venueResponse(record))
}

// DeleteVenue - Delete a venue
func (h *VenueHandler) DeleteVenue(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("venues", e.Request.PathValue("venueId"))
	if err != nil {
		return apis.NewNotFoundError("Venue not found", err)
	}
	if err := h.app.Delete(record); err != nil {
		return apis.NewBadRequestError("Failed to delete venue", err)
	}
	return e.NoContent(http.StatusNoContent)
}

func venueFromRecord(record *core.Record) *models.Venue {
	return &models.Venue{
		ID:             record.Id,
		Name:           record.GetString("name"),
		ShortName:      record.GetString("short_name"),
		Address:        record.GetString("address"),
		Latitude:       record.GetFloat("latitude"),
		Longitude:      record.GetFloat("longitude"),
		GoogleMapsLink: record.GetString("google_maps_link"),
		YandexMapsLink: record.GetString("yandex_maps_link"),
	}
}

func venueResponse(record *core.Record) schemas.VenueResponse {
	v := venueFromRecord(record)
	resp := schemas.VenueResponse{
		ID:             v.ID,
		Name:           v.Name,
		ShortName:      v.ShortName,
		Latitude:       v.Latitude,
		Longitude:      v.Longitude,
		GoogleMapsLink: v.GoogleMapsLink,
		YandexMapsLink: v.YandexMapsLink,
	}
	if v.Address != "" {
		resp.Address = &v.Address
	}
	return resp
}

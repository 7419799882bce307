package handlers

import (
	"net/http"
	"time"

	"pass-platform/models"
	"pass-platform/schemas"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	app *pocketbase.PocketBase
}

func NewEventHandler(app *pocketbase.PocketBase) *EventHandler {
	return &EventHandler{app: app}
}

// CreateEvent - Create an event at a venue
func (h *EventHandler) CreateEvent(e *core.RequestEvent) error {
	var req schemas.EventCreate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	// The venue must exist before anything can be scheduled at it.
	if _, err := h.app.FindRecordById("venues", req.VenueID); err != nil {
		return apis.NewNotFoundError("Venue not found", err)
	}

	collection, err := h.app.FindCollectionByNameOrId("events")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("id", uuid.NewString())
	record.Set("name", req.Name)
	record.Set("starts_at", req.StartsAt)
	record.Set("venue_id", req.VenueID)
	record.Set("shared", req.Shared)
	if req.EndsAt != nil {
		record.Set("ends_at", *req.EndsAt)
	}
	if req.EarlyBirdDate != nil {
		record.Set("early_bird_date", *req.EarlyBirdDate)
	}
	if req.ImageURL != nil {
		record.Set("image_url", *req.ImageURL)
	}
	if req.Description != nil {
		record.Set("description", *req.Description)
	}
	if req.EarlyBirdPrice != nil {
		record.Set("early_bird_price", *req.EarlyBirdPrice)
	}
	if req.GeneralAdmissionPrice != nil {
		record.Set("general_admission_price", *req.GeneralAdmissionPrice)
	}
	if req.MemberTicketPrice != nil {
		record.Set("member_ticket_price", *req.MemberTicketPrice)
	}
	if req.MaxCapacity != nil {
		record.Set("max_capacity", *req.MaxCapacity)
	}

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to create event", err)
	}

	return e.JSON(http.StatusCreated, eventResponse(record))
}

// GetEvent - Get an event by id
func (h *EventHandler) GetEvent(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	return e.JSON(http.StatusOK, eventResponse(record))
}

// ListEvents - List events, soonest first
func (h *EventHandler) ListEvents(e *core.RequestEvent) error {
	records, err := h.app.FindRecordsByFilter("events", "id != ''", "starts_at", 0, 0)
	if err != nil {
		return apis.NewBadRequestError("Failed to list events", err)
	}

	result := make([]schemas.EventResponse, 0, len(records))
	for _, record := range records {
		result = append(result, eventResponse(record))
	}
	return e.JSON(http.StatusOK, result)
}

// UpdateEvent - Partially update an event
func (h *EventHandler) UpdateEvent(e *core.RequestEvent) error {
	var req schemas.EventUpdate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	if req.VenueID != nil {
		if _, err := h.app.FindRecordById("venues", *req.VenueID); err != nil {
			return apis.NewNotFoundError("Venue not found", err)
		}
	}

	req.Apply(func(field string, value any) {
		record.Set(field, value)
	})

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to update event", err)
	}
	return e.JSON(http.StatusOK, eventResponse(record))
}

func eventFromRecord(record *core.Record) *models.Event {
	ev := &models.Event{
		ID:          record.Id,
		Name:        record.GetString("name"),
		StartsAt:    record.GetDateTime("starts_at").Time(),
		VenueID:     record.GetString("venue_id"),
		ImageURL:    record.GetString("image_url"),
		Description: record.GetString("description"),
		Shared:      record.GetBool("shared"),
		Created:     record.GetDateTime("created").Time(),
	}
	if v := record.GetDateTime("ends_at").Time(); !v.IsZero() {
		ev.EndsAt = timePtr(v)
	}
	if v := record.GetDateTime("early_bird_date").Time(); !v.IsZero() {
		ev.EarlyBirdDate = timePtr(v)
	}
	if v := record.GetInt("early_bird_price"); v != 0 {
		ev.EarlyBirdPrice = &v
	}
	if v := record.GetInt("general_admission_price"); v != 0 {
		ev.GeneralAdmissionPrice = &v
	}
	if v := record.GetInt("member_ticket_price"); v != 0 {
		ev.MemberTicketPrice = &v
	}
	if v := record.GetInt("max_capacity"); v != 0 {
		ev.MaxCapacity = &v
	}
	return ev
}

func eventResponse(record *core.Record) schemas.EventResponse {
	ev := eventFromRecord(record)
	resp := schemas.EventResponse{
		ID:                    ev.ID,
		Name:                  ev.Name,
		StartsAt:              ev.StartsAt,
		EndsAt:                ev.EndsAt,
		EarlyBirdDate:         ev.EarlyBirdDate,
		VenueID:               ev.VenueID,
		EarlyBirdPrice:        ev.EarlyBirdPrice,
		GeneralAdmissionPrice: ev.GeneralAdmissionPrice,
		MemberTicketPrice:     ev.MemberTicketPrice,
		MaxCapacity:           ev.MaxCapacity,
		Shared:                ev.Shared,
	}
	if ev.ImageURL != "" {
		resp.ImageURL = &ev.ImageURL
	}
	if ev.Description != "" {
		resp.Description = &ev.Description
	}
	return resp
}

func timePtr(t time.Time) *time.Time {
	return &t
}

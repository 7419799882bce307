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

type PersonHandler struct {
	app *pocketbase.PocketBase
}

func NewPersonHandler(app *pocketbase.PocketBase) *PersonHandler {
	return &PersonHandler{app: app}
}

// CreatePerson - Create a person; new persons start pending
func (h *PersonHandler) CreatePerson(e *core.RequestEvent) error {
	var req schemas.PersonCreate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	collection, err := h.app.FindCollectionByNameOrId("persons")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("id", uuid.NewString())
	record.Set("name", req.Name)
	record.Set("email", req.Email)
	if req.InstagramHandle != nil {
		record.Set("instagram_handle", *req.InstagramHandle)
	}
	if req.TelegramHandle != nil {
		record.Set("telegram_handle", *req.TelegramHandle)
	}
	record.Set("status", string(models.PersonPending))

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to create person", err)
	}

	return e.JSON(http.StatusCreated, personResponse(record))
}

// GetPerson - Get a person by id
func (h *PersonHandler) GetPerson(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("persons", e.Request.PathValue("personId"))
	if err != nil {
		return apis.NewNotFoundError("Person not found", err)
	}
	return e.JSON(http.StatusOK, personResponse(record))
}

// UpdatePerson - Partially update a person
func (h *PersonHandler) UpdatePerson(e *core.RequestEvent) error {
	var req schemas.PersonUpdate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	record, err := h.app.FindRecordById("persons", e.Request.PathValue("personId"))
	if err != nil {
		return apis.NewNotFoundError("Person not found", err)
	}

	req.Apply(func(field string, value any) {
		record.Set(field, value)
	})

	if err := h.app.Save(record); err != nil {
		return apis.NewBadRequestError("Failed to update person", err)
	}
	return e.JSON(http.StatusOK, personResponse(record))
}

func personFromRecord(record *core.Record) *models.Person {
	return &models.Person{
		ID:              record.Id,
		Name:            record.GetString("name"),
		Email:           record.GetString("email"),
		InstagramHandle: record.GetString("instagram_handle"),
		TelegramHandle:  record.GetString("telegram_handle"),
		Status:          models.PersonStatus(record.GetString("status")),
		AvatarURL:       record.GetString("avatar_url"),
	}
}

func personResponse(record *core.Record) schemas.PersonResponse {
	p := personFromRecord(record)
	resp := schemas.PersonResponse{
		ID:     p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Status: p.Status,
	}
	if p.InstagramHandle != "" {
		resp.InstagramHandle = &p.InstagramHandle
	}
	if p.TelegramHandle != "" {
		resp.TelegramHandle = &p.TelegramHandle
	}
	if p.AvatarURL != "" {
		resp.AvatarURL = &p.AvatarURL
	}
	return resp
}

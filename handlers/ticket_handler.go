package handlers

import (
	"net/http"

	"pass-platform/models"
	"pass-platform/schemas"
	"pass-platform/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	app     *pocketbase.PocketBase
	tickets *services.TicketService
}

func NewTicketHandler(app *pocketbase.PocketBase, tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{app: app, tickets: tickets}
}

// IssueTicket - Issue a single event ticket
func (h *TicketHandler) IssueTicket(e *core.RequestEvent) error {
	var req schemas.EventTicketCreate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	if _, err := h.app.FindRecordById("persons", req.PersonID); err != nil {
		return apis.NewNotFoundError("Person not found", err)
	}
	if _, err := h.app.FindRecordById("events", req.EventID); err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	ticket, err := h.tickets.IssueTicket(e.Request.Context(), req)
	if err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusCreated, ticketResponse(ticket))
}

// GetTicket - Get a ticket by id
func (h *TicketHandler) GetTicket(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("event_tickets", e.Request.PathValue("ticketId"))
	if err != nil {
		return apis.NewNotFoundError("Ticket not found", err)
	}

	t := &models.EventTicket{
		ID:            record.Id,
		PersonID:      record.GetString("person_id"),
		EventID:       record.GetString("event_id"),
		IsUsed:        record.GetBool("is_used"),
		ApplePassURL:  record.GetString("apple_pass_url"),
		GooglePassURL: record.GetString("google_pass_url"),
		LastUpdated:   record.GetDateTime("updated").Time(),
		IsSent:        record.GetBool("is_sent"),
	}
	if orderID := record.GetInt("payment_order_id"); orderID != 0 {
		t.PaymentOrderID = &orderID
	}
	return e.JSON(http.StatusOK, ticketResponse(t))
}

// SendLink - Email an event access link, creating the person on first contact
func (h *TicketHandler) SendLink(e *core.RequestEvent) error {
	var req schemas.SendLink
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	if _, err := h.app.FindRecordById("events", req.EventID); err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	if err := h.tickets.SendLink(e.Request.Context(), req); err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]string{"status": "sent"})
}

// ValidateToken - Resolve an access token to its person and event
func (h *TicketHandler) ValidateToken(e *core.RequestEvent) error {
	token := e.Request.PathValue("token")
	if token == "" {
		return apis.NewBadRequestError("Missing token", nil)
	}

	resp, err := h.tickets.ValidateToken(e.Request.Context(), token)
	if err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusOK, resp)
}

// MarkAttendance - Flag a ticket used and record the attendance
func (h *TicketHandler) MarkAttendance(e *core.RequestEvent) error {
	attendance, err := h.tickets.MarkAttendance(e.Request.Context(), e.Request.PathValue("ticketId"))
	if err != nil {
		return apis.NewNotFoundError("Ticket not found", err)
	}

	resp := schemas.AttendanceResponse{
		ID:           attendance.ID,
		EventID:      attendance.EventID,
		PersonID:     attendance.PersonID,
		DateModified: attendance.DateModified,
	}
	if attendance.EventTicketID != "" {
		id := attendance.EventTicketID
		resp.EventTicketID = &id
	}
	return e.JSON(http.StatusCreated, resp)
}

// SendChatMessage - Publish an outbound chat message
func (h *TicketHandler) SendChatMessage(e *core.RequestEvent) error {
	var msg schemas.ChatMessage
	if err := e.BindBody(&msg); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := h.tickets.SendChatMessage(e.Request.Context(), msg); err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusOK, map[string]string{"status": "queued"})
}

func ticketResponse(t *models.EventTicket) schemas.EventTicketResponse {
	resp := schemas.EventTicketResponse{
		ID:             t.ID,
		PersonID:       t.PersonID,
		EventID:        t.EventID,
		PaymentOrderID: t.PaymentOrderID,
		IsUsed:         t.IsUsed,
		LastUpdated:    t.LastUpdated,
		IsSent:         t.IsSent,
	}
	if t.ApplePassURL != "" {
		u := t.ApplePassURL
		resp.ApplePassURL = &u
	}
	if t.GooglePassURL != "" {
		u := t.GooglePassURL
		resp.GooglePassURL = &u
	}
	return resp
}

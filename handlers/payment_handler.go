package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"pass-platform/models"
	"pass-platform/schemas"
	"pass-platform/services"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// PaymentHandler exposes the payment lifecycle. Live order state is in
// Redis; a payments record is mirrored into the database from PENDING
// onward, so in-flight checkouts can be resynced after a restart and
// history survives order key expiry.
type PaymentHandler struct {
	app      *pocketbase.PocketBase
	payments *services.PaymentService
	tickets  *services.TicketService
}

func NewPaymentHandler(app *pocketbase.PocketBase, payments *services.PaymentService, tickets *services.TicketService) *PaymentHandler {
	return &PaymentHandler{
		app:      app,
		payments: payments,
		tickets:  tickets,
	}
}

// CreatePayment - Register an order; no upstream call happens yet
func (h *PaymentHandler) CreatePayment(e *core.RequestEvent) error {
	var req schemas.PaymentCreate
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

	p, err := h.payments.CreatePayment(e.Request.Context(), req)
	if err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusCreated, paymentResponse(p))
}

// GetPayment - Get an order by id
func (h *PaymentHandler) GetPayment(e *core.RequestEvent) error {
	orderID, err := orderIDParam(e)
	if err != nil {
		return err
	}
	p, err := h.payments.GetPayment(e.Request.Context(), orderID)
	if err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusOK, paymentResponse(p))
}

// InitiatePayment - Open the upstream checkout for a created order
func (h *PaymentHandler) InitiatePayment(e *core.RequestEvent) error {
	orderID, err := orderIDParam(e)
	if err != nil {
		return err
	}
	res, err := h.payments.InitiatePayment(e.Request.Context(), orderID)
	if err != nil {
		return domainError(e, err)
	}

	// Mirror the now-PENDING order so a restart can restore it.
	if p, err := h.payments.GetPayment(e.Request.Context(), orderID); err == nil {
		h.persistPayment(e, p)
	}

	return e.JSON(http.StatusOK, res)
}

// ConfirmPayment - Settle a pending order against the provider
func (h *PaymentHandler) ConfirmPayment(e *core.RequestEvent) error {
	var req schemas.PaymentConfirmRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	resp, err := h.payments.ConfirmPayment(e.Request.Context(), req)
	if err != nil {
		return domainError(e, err)
	}

	if resp.Status == models.PaymentConfirmed {
		h.settleConfirmed(e, resp)
	}

	return e.JSON(http.StatusOK, resp)
}

// RefundPayment - Refund a confirmed order upstream
func (h *PaymentHandler) RefundPayment(e *core.RequestEvent) error {
	orderID, err := orderIDParam(e)
	if err != nil {
		return err
	}
	p, err := h.payments.RefundPayment(e.Request.Context(), orderID)
	if err != nil {
		return domainError(e, err)
	}
	h.persistPayment(e, p)
	return e.JSON(http.StatusOK, paymentResponse(p))
}

// settleConfirmed mirrors a confirmed order into the database and
// issues its tickets. Failures here never fail the confirmation: the
// money has moved, the rest is catch-up work.
func (h *PaymentHandler) settleConfirmed(e *core.RequestEvent, resp *schemas.PaymentConfirmResponse) {
	p, err := h.payments.GetPayment(e.Request.Context(), resp.OrderID)
	if err != nil {
		log.Printf("settle order %d: reload: %v", resp.OrderID, err)
		return
	}
	h.persistPayment(e, p)
	if _, err := h.tickets.IssueTicketsForPayment(e.Request.Context(), p); err != nil {
		log.Printf("settle order %d: issue tickets: %v", resp.OrderID, err)
	}
}

func (h *PaymentHandler) persistPayment(e *core.RequestEvent, p *models.Payment) {
	record, err := h.app.FindFirstRecordByData("payments", "order_id", p.OrderID)
	if err != nil {
		collection, err := h.app.FindCollectionByNameOrId("payments")
		if err != nil {
			log.Printf("persist order %d: %v", p.OrderID, err)
			return
		}
		record = core.NewRecord(collection)
		record.Set("order_id", p.OrderID)
	}
	record.Set("person_id", p.PersonID)
	record.Set("event_id", p.EventID)
	record.Set("amount", p.Amount)
	record.Set("provider", string(p.Provider))
	record.Set("ticket_holders", strings.Join(p.TicketHolders, ","))
	record.Set("upstream_payment_id", p.UpstreamPaymentID)
	record.Set("status", string(p.Status))
	if err := h.app.Save(record); err != nil {
		log.Printf("persist order %d: save: %v", p.OrderID, err)
	}
}

func orderIDParam(e *core.RequestEvent) (int, error) {
	orderID, err := strconv.Atoi(e.Request.PathValue("orderId"))
	if err != nil || orderID < 1 {
		return 0, apis.NewBadRequestError("Invalid order id", err)
	}
	return orderID, nil
}

func paymentResponse(p *models.Payment) schemas.PaymentResponse {
	resp := schemas.PaymentResponse{
		OrderID:       p.OrderID,
		PersonID:      p.PersonID,
		EventID:       p.EventID,
		Amount:        p.Amount,
		Provider:      p.Provider,
		TicketHolders: p.TicketHolders,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.UpstreamPaymentID != "" {
		id := p.UpstreamPaymentID
		resp.UpstreamPaymentID = &id
	}
	return resp
}

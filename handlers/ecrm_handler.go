package handlers

import (
	"net/http"

	"pass-platform/internal/services/ecrm"
	"pass-platform/monitoring"
	"pass-platform/schemas"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type ECRMHandler struct {
	client  *ecrm.Client
	monitor *monitoring.Monitor

	// defaultCRN addresses the house register when the request carries
	// no crn of its own.
	defaultCRN int
}

func NewECRMHandler(client *ecrm.Client, monitor *monitoring.Monitor, defaultCRN int) *ECRMHandler {
	return &ECRMHandler{
		client:     client,
		monitor:    monitor,
		defaultCRN: defaultCRN,
	}
}

// PrintReceipt - Print a fiscal receipt on the cash register
func (h *ECRMHandler) PrintReceipt(e *core.RequestEvent) error {
	var req schemas.ECRMPrintRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.CRN == 0 {
		req.CRN = h.defaultCRN
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	reply, err := h.client.PrintReceipt(e.Request.Context(), &req)
	if h.monitor != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		h.monitor.TrackFiscalPrint(result)
	}
	if err != nil {
		return apis.NewBadRequestError("Fiscal print failed", err)
	}
	return e.JSON(http.StatusOK, reply)
}

// CheckConnection - Ping the fiscal device
func (h *ECRMHandler) CheckConnection(e *core.RequestEvent) error {
	var req schemas.ECRMCheckConnRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.CRN == 0 {
		req.CRN = h.defaultCRN
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	if err := h.client.CheckConnection(e.Request.Context(), req.CRN); err != nil {
		return apis.NewBadRequestError("Fiscal device unreachable", err)
	}
	return e.JSON(http.StatusOK, map[string]string{"status": "connected"})
}

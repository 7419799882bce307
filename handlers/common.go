package handlers

import (
	"errors"
	"net/http"

	"pass-platform/internal/status"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// validationError surfaces an ozzo validation failure as a structured
// per-field rejection. Anything else becomes a plain bad request.
func validationError(e *core.RequestEvent, err error) error {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
	}
	return apis.NewBadRequestError("Invalid request", err)
}

// domainError distinguishes state-machine violations from validation
// failures: the former are conflicts, not malformed input.
func domainError(e *core.RequestEvent, err error) error {
	switch {
	case errors.Is(err, status.ErrOrderNotFound), errors.Is(err, status.ErrTokenNotFound):
		return apis.NewNotFoundError("Not found", err)
	case errors.Is(err, status.ErrInvalidTransition),
		errors.Is(err, status.ErrTerminalState),
		errors.Is(err, status.ErrTransitionInFlight),
		errors.Is(err, status.ErrUpstreamPending):
		return e.JSON(http.StatusConflict, map[string]string{
			"error": err.Error(),
		})
	case errors.Is(err, status.ErrNotMember):
		return e.JSON(http.StatusConflict, map[string]string{
			"error": err.Error(),
		})
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return validationError(e, err)
	}
	return apis.NewBadRequestError("Request failed", err)
}

package handlers

import (
	"net/http"

	"pass-platform/models"
	"pass-platform/schemas"
	"pass-platform/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type CardHandler struct {
	cards *services.CardService
}

func NewCardHandler(cards *services.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// IssueCard - Issue a membership card for a member
func (h *CardHandler) IssueCard(e *core.RequestEvent) error {
	var req schemas.MemberCardCreate
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := req.Validate(); err != nil {
		return validationError(e, err)
	}

	card, err := h.cards.IssueCard(e.Request.Context(), req.PersonID)
	if err != nil {
		return domainError(e, err)
	}
	return e.JSON(http.StatusCreated, cardResponse(card))
}

// GetCard - Get a membership card by id
func (h *CardHandler) GetCard(e *core.RequestEvent) error {
	card, err := h.cards.GetCard(e.Request.Context(), e.Request.PathValue("cardId"))
	if err != nil {
		return apis.NewNotFoundError("Card not found", err)
	}
	return e.JSON(http.StatusOK, cardResponse(card))
}

// TouchCard - Mark a card updated so wallet apps refresh the pass
func (h *CardHandler) TouchCard(e *core.RequestEvent) error {
	if err := h.cards.TouchCard(e.Request.Context(), e.Request.PathValue("cardId")); err != nil {
		return apis.NewNotFoundError("Card not found", err)
	}
	return e.NoContent(http.StatusNoContent)
}

func cardResponse(card *models.MemberCard) schemas.MemberCardResponse {
	return schemas.MemberCardResponse{
		ID:            card.ID,
		SerialNumber:  card.SerialNumber,
		PersonID:      card.PersonID,
		ApplePassURL:  card.ApplePassURL,
		GooglePassURL: card.GooglePassURL,
		LastUpdated:   card.LastUpdated,
	}
}

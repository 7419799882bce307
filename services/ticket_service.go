package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"pass-platform/internal/status"
	"pass-platform/models"
	"pass-platform/schemas"
	"pass-platform/utils"

	"github.com/google/uuid"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/redis/go-redis/v9"
)

const (
	accessTokenPrefix = "ticket:token:"
	accessTokenTTL    = 30 * 24 * time.Hour
	chatChannel       = "chat-outbound"
)

// TicketService issues event tickets, resolves access tokens and marks
// attendance.
type TicketService struct {
	app       core.App
	Redis     *redis.Client
	Publisher Publisher

	passBaseURL string
}

func NewTicketService(app core.App, redisClient *redis.Client, pub Publisher, passBaseURL string) *TicketService {
	return &TicketService{
		app:         app,
		Redis:       redisClient,
		Publisher:   pub,
		passBaseURL: passBaseURL,
	}
}

// IssueTicket creates a single event ticket.
func (s *TicketService) IssueTicket(ctx context.Context, req schemas.EventTicketCreate) (*models.EventTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	collection, err := s.app.FindCollectionByNameOrId("event_tickets")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	id := uuid.NewString()
	record.Set("id", id)
	record.Set("person_id", req.PersonID)
	record.Set("event_id", req.EventID)
	if req.PaymentOrderID != nil {
		record.Set("payment_order_id", *req.PaymentOrderID)
	}
	record.Set("is_used", false)
	record.Set("is_sent", false)
	record.Set("apple_pass_url", fmt.Sprintf("%s/v1/passes/ticket/%s", s.passBaseURL, id))
	record.Set("google_pass_url", fmt.Sprintf("%s/v1/gpasses/ticket/%s", s.passBaseURL, id))

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("issueTicket: save: %w", err)
	}

	return ticketFromRecord(record), nil
}

// IssueTicketsForPayment creates one ticket per holder of a confirmed
// payment. Holders that already have a ticket for the event keep the
// one they have.
func (s *TicketService) IssueTicketsForPayment(ctx context.Context, p *models.Payment) ([]*models.EventTicket, error) {
	if p.Status != models.PaymentConfirmed {
		return nil, status.ErrInvalidTransition
	}

	tickets := make([]*models.EventTicket, 0, len(p.TicketHolders))
	for _, holder := range p.TicketHolders {
		if _, err := s.app.FindFirstRecordByFilter(
			"event_tickets",
			"person_id = {:personId} && event_id = {:eventId}",
			dbx.Params{"personId": holder, "eventId": p.EventID},
		); err == nil {
			continue
		}

		orderID := p.OrderID
		ticket, err := s.IssueTicket(ctx, schemas.EventTicketCreate{
			PersonID:       holder,
			EventID:        p.EventID,
			PaymentOrderID: &orderID,
		})
		if err != nil {
			return tickets, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// SendLink emails an access link for the event to the address, creating
// the person on first contact.
func (s *TicketService) SendLink(ctx context.Context, req schemas.SendLink) error {
	if err := req.Validate(); err != nil {
		return err
	}

	person, err := s.app.FindFirstRecordByData("persons", "email", req.Email)
	if err != nil {
		collection, err := s.app.FindCollectionByNameOrId("persons")
		if err != nil {
			return err
		}
		person = core.NewRecord(collection)
		person.Set("id", uuid.NewString())
		person.Set("email", req.Email)
		person.Set("name", req.Email)
		person.Set("status", string(models.PersonPending))
		if err := s.app.Save(person); err != nil {
			return fmt.Errorf("sendLink: create person: %w", err)
		}
	}

	token, err := utils.GenerateCode(16)
	if err != nil {
		return fmt.Errorf("sendLink: token: %w", err)
	}

	payload, _ := json.Marshal(map[string]string{
		"person_id": person.Id,
		"event_id":  req.EventID,
	})
	if err := s.Redis.Set(ctx, accessTokenPrefix+token, payload, accessTokenTTL).Err(); err != nil {
		return fmt.Errorf("sendLink: store token: %w", err)
	}

	settings := s.app.Settings()
	message := &mailer.Message{
		From: mail.Address{
			Address: settings.Meta.SenderAddress,
			Name:    settings.Meta.SenderName,
		},
		To:      []mail.Address{{Address: req.Email}},
		Subject: "Your event access link",
		HTML: fmt.Sprintf(
			`<p>Open this link to get your ticket:</p><p><a href="%s/access/%s">%s/access/%s</a></p>`,
			s.passBaseURL, token, s.passBaseURL, token,
		),
	}

	return s.app.NewMailClient().Send(message)
}

// ValidateToken resolves an access token to its person and event, and
// reports whether a ticket already exists for the pair.
func (s *TicketService) ValidateToken(ctx context.Context, token string) (*schemas.TokenValidationResponse, error) {
	raw, err := s.Redis.Get(ctx, accessTokenPrefix+token).Result()
	if err != nil {
		return nil, status.ErrTokenNotFound
	}

	var claims struct {
		PersonID string `json:"person_id"`
		EventID  string `json:"event_id"`
	}
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		return nil, fmt.Errorf("validateToken: %w", err)
	}

	hasTicket := false
	if _, err := s.app.FindFirstRecordByFilter(
		"event_tickets",
		"person_id = {:personId} && event_id = {:eventId}",
		dbx.Params{"personId": claims.PersonID, "eventId": claims.EventID},
	); err == nil {
		hasTicket = true
	}

	return &schemas.TokenValidationResponse{
		PersonID:  claims.PersonID,
		EventID:   claims.EventID,
		HasTicket: hasTicket,
	}, nil
}

// MarkAttendance flags a ticket used and records attendance for its
// person and event.
func (s *TicketService) MarkAttendance(ctx context.Context, ticketID string) (*models.Attendance, error) {
	ticket, err := s.app.FindRecordById("event_tickets", ticketID)
	if err != nil {
		return nil, fmt.Errorf("markAttendance: ticket lookup: %w", err)
	}

	ticket.Set("is_used", true)
	ticket.Set("attended_at", time.Now())
	if err := s.app.Save(ticket); err != nil {
		return nil, fmt.Errorf("markAttendance: save ticket: %w", err)
	}

	collection, err := s.app.FindCollectionByNameOrId("attendance")
	if err != nil {
		return nil, err
	}
	record := core.NewRecord(collection)
	record.Set("id", uuid.NewString())
	record.Set("event_id", ticket.GetString("event_id"))
	record.Set("person_id", ticket.GetString("person_id"))
	record.Set("event_ticket_id", ticket.Id)
	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("markAttendance: save attendance: %w", err)
	}

	modified := record.GetDateTime("updated").Time()
	return &models.Attendance{
		ID:            record.Id,
		EventID:       record.GetString("event_id"),
		PersonID:      record.GetString("person_id"),
		EventTicketID: ticket.Id,
		DateModified:  &modified,
	}, nil
}

// SendChatMessage publishes a generic outbound chat-style message.
func (s *TicketService) SendChatMessage(ctx context.Context, msg schemas.ChatMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if s.Publisher == nil {
		return nil
	}
	s.Publisher.Publish(chatChannel, map[string]any{
		"chat_id": msg.ChatID,
		"text":    msg.Text,
	})
	return nil
}

func ticketFromRecord(record *core.Record) *models.EventTicket {
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
	if attended := record.GetDateTime("attended_at").Time(); !attended.IsZero() {
		t.AttendedAt = &attended
	}
	return t
}

package services

import (
	"context"
	"fmt"
	"time"

	"pass-platform/internal/status"
	"pass-platform/models"
	"pass-platform/monitoring"
	"pass-platform/utils"

	"github.com/google/uuid"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	cardSerialSeqKey   = "card:serial_seq"
	passUpdatesChannel = "pass-updates"
)

// CardService issues membership cards and keeps their wallet passes
// fresh. Cards exist only for persons in member status.
type CardService struct {
	app       core.App
	Redis     *redis.Client
	Publisher Publisher

	monitor *monitoring.Monitor

	passBaseURL string
}

func NewCardService(app core.App, redisClient *redis.Client, pub Publisher, monitor *monitoring.Monitor, passBaseURL string) *CardService {
	return &CardService{
		app:         app,
		Redis:       redisClient,
		Publisher:   pub,
		monitor:     monitor,
		passBaseURL: passBaseURL,
	}
}

// IssueCard creates a membership card for the person. Serial numbers
// are allocated from a Redis sequence and never reused.
func (s *CardService) IssueCard(ctx context.Context, personID string) (*models.MemberCard, error) {
	person, err := s.app.FindRecordById("persons", personID)
	if err != nil {
		return nil, fmt.Errorf("issueCard: person lookup: %w", err)
	}
	if person.GetString("status") != string(models.PersonMember) {
		return nil, status.ErrNotMember
	}

	serial, err := s.Redis.Incr(ctx, cardSerialSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("issueCard: serial seq: %w", err)
	}

	// The wallet app authenticates pass fetches with this token; only
	// its bcrypt hash is stored.
	authToken, err := utils.GenerateCode(16)
	if err != nil {
		return nil, fmt.Errorf("issueCard: auth token: %w", err)
	}
	tokenHash, err := bcrypt.GenerateFromPassword([]byte(authToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("issueCard: token hash: %w", err)
	}

	collection, err := s.app.FindCollectionByNameOrId("member_cards")
	if err != nil {
		return nil, err
	}

	record := core.NewRecord(collection)
	record.Set("id", uuid.NewString())
	record.Set("serial_number", serial)
	record.Set("person_id", personID)
	record.Set("apple_pass_url", fmt.Sprintf("%s/v1/passes/member/%d", s.passBaseURL, serial))
	record.Set("google_pass_url", fmt.Sprintf("%s/v1/gpasses/member/%d", s.passBaseURL, serial))
	record.Set("auth_token_hash", string(tokenHash))

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("issueCard: save: %w", err)
	}

	return &models.MemberCard{
		ID:            record.Id,
		SerialNumber:  int(serial),
		PersonID:      personID,
		ApplePassURL:  record.GetString("apple_pass_url"),
		GooglePassURL: record.GetString("google_pass_url"),
		Created:       record.GetDateTime("created").Time(),
		LastUpdated:   record.GetDateTime("updated").Time(),
	}, nil
}

// GetCard loads a membership card by id.
func (s *CardService) GetCard(ctx context.Context, cardID string) (*models.MemberCard, error) {
	record, err := s.app.FindRecordById("member_cards", cardID)
	if err != nil {
		return nil, fmt.Errorf("getCard: %w", err)
	}
	return cardFromRecord(record), nil
}

// VerifyPassToken checks a wallet app's pass auth token against the
// stored hash for the card with the given serial.
func (s *CardService) VerifyPassToken(ctx context.Context, serial int, token string) bool {
	record, err := s.app.FindFirstRecordByData("member_cards", "serial_number", serial)
	if err != nil {
		return false
	}
	hash := record.GetString("auth_token_hash")
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// RegisterDevice stores a wallet device's push token.
func (s *CardService) RegisterDevice(ctx context.Context, deviceID, pushToken string) error {
	collection, err := s.app.FindCollectionByNameOrId("pass_devices")
	if err != nil {
		return err
	}

	// Re-registration just refreshes the token.
	existing, err := s.app.FindFirstRecordByData("pass_devices", "device_id", deviceID)
	if err == nil {
		existing.Set("push_token", pushToken)
		return s.app.Save(existing)
	}

	record := core.NewRecord(collection)
	record.Set("id", uuid.NewString())
	record.Set("device_id", deviceID)
	record.Set("push_token", pushToken)
	return s.app.Save(record)
}

// UnregisterDevice drops a wallet device's registration.
func (s *CardService) UnregisterDevice(ctx context.Context, deviceID string) error {
	record, err := s.app.FindFirstRecordByData("pass_devices", "device_id", deviceID)
	if err != nil {
		return nil
	}
	return s.app.Delete(record)
}

// GetCardBySerial loads a membership card by its pass serial number.
func (s *CardService) GetCardBySerial(ctx context.Context, serial int) (*models.MemberCard, error) {
	record, err := s.app.FindFirstRecordByData("member_cards", "serial_number", serial)
	if err != nil {
		return nil, fmt.Errorf("getCardBySerial: %w", err)
	}
	return cardFromRecord(record), nil
}

// UpdatedSerialsSince lists serial numbers of cards touched at or after
// the given time, for wallet pass refresh polling.
func (s *CardService) UpdatedSerialsSince(ctx context.Context, since time.Time) ([]string, error) {
	records, err := s.app.FindRecordsByFilter(
		"member_cards",
		"updated >= {:since}",
		"-updated",
		0,
		0,
		dbx.Params{"since": since.UTC().Format("2006-01-02 15:04:05.000Z")},
	)
	if err != nil {
		return nil, fmt.Errorf("updatedSerialsSince: %w", err)
	}

	serials := make([]string, 0, len(records))
	for _, r := range records {
		serials = append(serials, r.GetString("serial_number"))
	}
	return serials, nil
}

// TouchCard bumps a card's updated time and broadcasts a pass update so
// wallet apps re-fetch it.
func (s *CardService) TouchCard(ctx context.Context, cardID string) error {
	record, err := s.app.FindRecordById("member_cards", cardID)
	if err != nil {
		return fmt.Errorf("touchCard: %w", err)
	}
	// Saving refreshes the autodate updated field.
	if err := s.app.Save(record); err != nil {
		return fmt.Errorf("touchCard: save: %w", err)
	}

	if s.Publisher != nil {
		s.Publisher.Publish(passUpdatesChannel, map[string]any{
			"serial_number": record.GetString("serial_number"),
		})
	}
	if s.monitor != nil {
		s.monitor.TrackPassUpdate()
	}
	return nil
}

// StoreDeviceLogs persists wallet app log lines for troubleshooting.
func (s *CardService) StoreDeviceLogs(ctx context.Context, logs []string) error {
	collection, err := s.app.FindCollectionByNameOrId("pass_logs")
	if err != nil {
		return err
	}
	for _, line := range logs {
		record := core.NewRecord(collection)
		record.Set("id", uuid.NewString())
		record.Set("message", line)
		if err := s.app.Save(record); err != nil {
			return err
		}
	}
	return nil
}

func cardFromRecord(record *core.Record) *models.MemberCard {
	return &models.MemberCard{
		ID:            record.Id,
		SerialNumber:  record.GetInt("serial_number"),
		PersonID:      record.GetString("person_id"),
		ApplePassURL:  record.GetString("apple_pass_url"),
		GooglePassURL: record.GetString("google_pass_url"),
		Created:       record.GetDateTime("created").Time(),
		LastUpdated:   record.GetDateTime("updated").Time(),
	}
}

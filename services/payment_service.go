package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"pass-platform/config"
	"pass-platform/internal/services/provider"
	"pass-platform/internal/status"
	"pass-platform/models"
	"pass-platform/monitoring"
	"pass-platform/schemas"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	orderSeqKey      = "payment:order_seq"
	statusChannel    = "payment-status"
	orderKeyPrefix   = "payment:order:"
	lockKeyPrefix    = "payment:lock:"
	upstreamKeyIndex = "payment:upstream:"
)

// PaymentService owns the payment lifecycle. Order state lives in a
// Redis hash per order; every transition goes through transition(),
// which is the only writer of the status field.
type PaymentService struct {
	Redis     *redis.Client
	Publisher Publisher
	Registry  *provider.Registry

	monitor *monitoring.Monitor

	lockTTL    time.Duration
	paymentTTL time.Duration
}

func NewPaymentService(redisClient *redis.Client, pub Publisher, registry *provider.Registry, monitor *monitoring.Monitor, cfg *config.Config) *PaymentService {
	return &PaymentService{
		Redis:      redisClient,
		Publisher:  pub,
		Registry:   registry,
		monitor:    monitor,
		lockTTL:    cfg.TransitionLockTTL,
		paymentTTL: cfg.PaymentTimeout,
	}
}

// CreatePayment registers a new order locally with status CREATED.
// No upstream interaction happens here.
func (s *PaymentService) CreatePayment(ctx context.Context, req schemas.PaymentCreate) (*models.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	orderID, err := s.Redis.Incr(ctx, orderSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("createPayment: order seq: %w", err)
	}

	holders, _ := json.Marshal(req.TicketHolders)
	now := time.Now()

	p := &models.Payment{
		OrderID:       int(orderID),
		PersonID:      req.PersonID,
		EventID:       req.EventID,
		Amount:        req.Amount,
		Provider:      req.Provider,
		TicketHolders: req.TicketHolders,
		Status:        models.PaymentCreated,
		CreatedAt:     now,
	}

	orderKey := orderKey(p.OrderID)
	fields := map[string]any{
		"order_id":       p.OrderID,
		"person_id":      p.PersonID,
		"event_id":       p.EventID,
		"amount":         p.Amount,
		"provider":       string(p.Provider),
		"ticket_holders": string(holders),
		"status":         string(p.Status),
		"created_at":     now.Unix(),
	}
	for k, v := range fields {
		s.Redis.HSet(ctx, orderKey, k, v)
	}
	s.Redis.Expire(ctx, orderKey, s.paymentTTL)

	return p, nil
}

// GetPayment loads an order by id.
func (s *PaymentService) GetPayment(ctx context.Context, orderID int) (*models.Payment, error) {
	data, err := s.Redis.HGetAll(ctx, orderKey(orderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("getPayment: %w", err)
	}
	if len(data) == 0 {
		return nil, status.ErrOrderNotFound
	}
	return paymentFromHash(data)
}

// InitiatePayment opens the upstream checkout, moving the order from
// CREATED to PENDING.
func (s *PaymentService) InitiatePayment(ctx context.Context, orderID int) (*provider.InitResult, error) {
	p, err := s.GetPayment(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(models.PaymentPending) {
		return nil, s.transitionError(p, models.PaymentPending)
	}

	gw, err := s.Registry.Get(p.Provider)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	res, err := gw.InitPayment(ctx, &provider.InitRequest{
		OrderID:     p.OrderID,
		Amount:      decimal.NewFromFloat(p.Amount),
		Currency:    "AMD",
		Description: fmt.Sprintf("Event tickets, order %d", p.OrderID),
		PersonID:    p.PersonID,
	})
	s.trackProviderCall(p.Provider, "init", err, started)
	if err != nil {
		return nil, fmt.Errorf("initiatePayment: %w", err)
	}

	if err := s.transition(ctx, p, models.PaymentPending); err != nil {
		return nil, err
	}
	s.Redis.HSet(ctx, orderKey(orderID), "upstream_payment_id", res.UpstreamPaymentID)
	// Index the upstream id so async confirmations can find the order.
	s.Redis.Set(ctx, upstreamKeyIndex+res.UpstreamPaymentID, orderID, s.paymentTTL)

	return res, nil
}

// ConfirmPayment settles a PENDING order against the provider's view of
// it. Repeated confirmations carrying the upstream id of an already
// confirmed order are answered idempotently; any other attempt to move
// an order out of a terminal state is an error. A detail response that
// is itself still pending settles nothing: the order stays PENDING.
func (s *PaymentService) ConfirmPayment(ctx context.Context, req schemas.PaymentConfirmRequest) (*schemas.PaymentConfirmResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	unlock, err := s.acquireLock(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, err := s.GetPayment(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	// Duplicate webhook carrying the same upstream id: echo the stored
	// outcome instead of failing.
	if p.Status == models.PaymentConfirmed &&
		(req.PaymentID == "" || req.PaymentID == p.UpstreamPaymentID) {
		return s.confirmResponse(p, "already confirmed"), nil
	}
	if p.Status.IsTerminal() {
		s.trackRejected(p.Provider)
		return nil, status.ErrTerminalState
	}
	if p.Status != models.PaymentPending {
		s.trackRejected(p.Provider)
		return nil, status.ErrInvalidTransition
	}

	gw, err := s.Registry.Get(p.Provider)
	if err != nil {
		return nil, err
	}

	upstreamID := p.UpstreamPaymentID
	if req.PaymentID != "" {
		upstreamID = req.PaymentID
	}

	started := time.Now()
	details, err := gw.PaymentDetails(ctx, upstreamID)
	s.trackProviderCall(p.Provider, "details", err, started)
	if err != nil {
		return nil, fmt.Errorf("confirmPayment: %w", err)
	}

	var next models.PaymentStatus
	var desc string
	switch details.Status {
	case models.PaymentConfirmed:
		next = models.PaymentConfirmed
		desc = details.Description
	case models.PaymentCreated, models.PaymentPending:
		// The payer has not finished the upstream checkout. Leave the
		// order PENDING so the real outcome can still settle it.
		return nil, status.ErrUpstreamPending
	default:
		next = models.PaymentRejected
		desc = "payment declined by provider"
	}

	if err := s.transition(ctx, p, next); err != nil {
		return nil, err
	}
	if details.UpstreamPaymentID != "" {
		p.UpstreamPaymentID = details.UpstreamPaymentID
		s.Redis.HSet(ctx, orderKey(p.OrderID), "upstream_payment_id", p.UpstreamPaymentID)
	}

	s.publishStatus(p)

	return s.confirmResponse(p, desc), nil
}

// RefundPayment refunds a CONFIRMED order upstream and moves it to
// REFUNDED.
func (s *PaymentService) RefundPayment(ctx context.Context, orderID int) (*models.Payment, error) {
	unlock, err := s.acquireLock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, err := s.GetPayment(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(models.PaymentRefunded) {
		return nil, s.transitionError(p, models.PaymentRefunded)
	}

	gw, err := s.Registry.Get(p.Provider)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	err = gw.Refund(ctx, p.UpstreamPaymentID, decimal.NewFromFloat(p.Amount))
	s.trackProviderCall(p.Provider, "refund", err, started)
	if err != nil {
		return nil, fmt.Errorf("refundPayment: %w", err)
	}

	if err := s.transition(ctx, p, models.PaymentRefunded); err != nil {
		return nil, err
	}
	s.publishStatus(p)

	return p, nil
}

// HandleConfirmations consumes async provider confirmations. It runs
// for the lifetime of the process.
func (s *PaymentService) HandleConfirmations(ctx context.Context, ch chan *status.Confirmation, p models.PaymentProvider) {
	for {
		select {
		case conf := <-ch:
			orderIDStr, err := s.Redis.Get(ctx, upstreamKeyIndex+conf.UpstreamPaymentID).Result()
			if err != nil {
				log.Printf("confirmation for unknown upstream payment %s", conf.UpstreamPaymentID)
				continue
			}
			orderID, _ := strconv.Atoi(orderIDStr)

			if _, err := s.ConfirmPayment(ctx, schemas.PaymentConfirmRequest{
				OrderID:   orderID,
				Provider:  p,
				PaymentID: conf.UpstreamPaymentID,
			}); err != nil {
				log.Printf("async confirmation for order %d: %v", orderID, err)
			}

		case <-ctx.Done():
			return
		}
	}
}

// transition applies a lifecycle step after checking its legality.
func (s *PaymentService) transition(ctx context.Context, p *models.Payment, next models.PaymentStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return s.transitionError(p, next)
	}

	now := time.Now()
	key := orderKey(p.OrderID)
	s.Redis.HSet(ctx, key, "status", string(next))
	s.Redis.HSet(ctx, key, "updated_at", now.Unix())

	if s.monitor != nil {
		s.monitor.TrackTransition(string(p.Provider), string(p.Status), string(next))
	}

	p.Status = next
	p.UpdatedAt = &now
	return nil
}

func (s *PaymentService) transitionError(p *models.Payment, next models.PaymentStatus) error {
	s.trackRejected(p.Provider)
	if p.Status.IsTerminal() {
		return status.ErrTerminalState
	}
	return status.ErrInvalidTransition
}

// acquireLock takes the per-order transition lock, guaranteeing at most
// one in-flight transition per order id.
func (s *PaymentService) acquireLock(ctx context.Context, orderID int) (func(), error) {
	key := fmt.Sprintf("%s%d", lockKeyPrefix, orderID)
	ok, err := s.Redis.SetNX(ctx, key, 1, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("transition lock: %w", err)
	}
	if !ok {
		return nil, status.ErrTransitionInFlight
	}
	return func() {
		s.Redis.Del(ctx, key)
	}, nil
}

func (s *PaymentService) publishStatus(p *models.Payment) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(statusChannel, map[string]any{
		"order_id":  p.OrderID,
		"person_id": p.PersonID,
		"event_id":  p.EventID,
		"provider":  string(p.Provider),
		"status":    string(p.Status),
	})
}

func (s *PaymentService) confirmResponse(p *models.Payment, desc string) *schemas.PaymentConfirmResponse {
	resp := &schemas.PaymentConfirmResponse{
		OrderID:     p.OrderID,
		Provider:    p.Provider,
		Status:      p.Status,
		PersonID:    p.PersonID,
		EventID:     p.EventID,
		Amount:      p.Amount,
		TicketCount: len(p.TicketHolders),
	}
	if p.UpstreamPaymentID != "" {
		id := p.UpstreamPaymentID
		resp.PaymentID = &id
	}
	if desc != "" {
		resp.Description = &desc
	}
	return resp
}

func (s *PaymentService) trackProviderCall(p models.PaymentProvider, op string, err error, started time.Time) {
	if s.monitor == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.monitor.TrackProviderCall(string(p), op, result, time.Since(started))
}

func (s *PaymentService) trackRejected(p models.PaymentProvider) {
	if s.monitor != nil {
		s.monitor.TrackRejectedTransition(string(p))
	}
}

func orderKey(orderID int) string {
	return fmt.Sprintf("%s%d", orderKeyPrefix, orderID)
}

func paymentFromHash(data map[string]string) (*models.Payment, error) {
	orderID, err := strconv.Atoi(data["order_id"])
	if err != nil {
		return nil, fmt.Errorf("malformed order record: %w", err)
	}
	amount, _ := strconv.ParseFloat(data["amount"], 64)

	var holders []string
	if raw := data["ticket_holders"]; raw != "" {
		json.Unmarshal([]byte(raw), &holders)
	}

	p := &models.Payment{
		OrderID:           orderID,
		PersonID:          data["person_id"],
		EventID:           data["event_id"],
		Amount:            amount,
		Provider:          models.PaymentProvider(data["provider"]),
		TicketHolders:     holders,
		UpstreamPaymentID: data["upstream_payment_id"],
		Status:            models.PaymentStatus(data["status"]),
	}
	if created, err := strconv.ParseInt(data["created_at"], 10, 64); err == nil {
		p.CreatedAt = time.Unix(created, 0)
	}
	if updated, err := strconv.ParseInt(data["updated_at"], 10, 64); err == nil {
		t := time.Unix(updated, 0)
		p.UpdatedAt = &t
	}
	return p, nil
}

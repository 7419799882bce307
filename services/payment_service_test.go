package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pass-platform/config"
	"pass-platform/internal/services/provider"
	"pass-platform/internal/services/provider/vpos"
	"pass-platform/internal/status"
	"pass-platform/models"
	"pass-platform/schemas"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPersonID = "7f2f4b10-4a2e-4a8f-9a6e-1c0f1f6a2b3c"
	testEventID  = "b1c6a9d2-83fe-4e1a-bb0d-2f4a6c8e0d1f"
)

type recordedMessage struct {
	channel string
	message map[string]any
}

// recordingPublisher captures broadcasts instead of hitting PubNub.
type recordingPublisher struct {
	published []recordedMessage
}

func (p *recordingPublisher) Publish(channel string, message map[string]any) {
	p.published = append(p.published, recordedMessage{channel, message})
}

func newTestPaymentService(t *testing.T) (*PaymentService, redismock.ClientMock, *recordingPublisher) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(false)

	pub := &recordingPublisher{}
	svc := NewPaymentService(db, pub, provider.NewRegistry(provider.NewFactory()), nil, &config.Config{
		PaymentTimeout:    15 * time.Minute,
		TransitionLockTTL: 30 * time.Second,
	})
	return svc, mock, pub
}

func pendingOrderHash(status models.PaymentStatus) map[string]string {
	return map[string]string{
		"order_id":            "7",
		"person_id":           testPersonID,
		"event_id":            testEventID,
		"amount":              "5000",
		"provider":            "VPOS",
		"ticket_holders":      `["` + testPersonID + `"]`,
		"upstream_payment_id": "upstream-7",
		"status":              string(status),
		"created_at":          "1756400000",
	}
}

func TestCreatePaymentStartsCreated(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)
	ctx := context.Background()

	req := schemas.PaymentCreate{
		PersonID:      testPersonID,
		EventID:       testEventID,
		Amount:        5000,
		Provider:      models.ProviderVPOS,
		TicketHolders: []string{testPersonID},
	}

	mock.ExpectIncr("payment:order_seq").SetVal(7)
	mock.Regexp().ExpectHSet("payment:order:7", "order_id", `\d+`).SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "person_id", ".+").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "event_id", ".+").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "amount", ".+").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "provider", "VPOS").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "ticket_holders", ".+").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "status", "CREATED").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "created_at", `\d+`).SetVal(1)
	mock.ExpectExpire("payment:order:7", 15*time.Minute).SetVal(true)

	p, err := svc.CreatePayment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 7, p.OrderID)
	assert.Equal(t, models.PaymentCreated, p.Status)
	assert.Equal(t, models.ProviderVPOS, p.Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentRejectsZeroAmount(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	req := schemas.PaymentCreate{
		PersonID:      testPersonID,
		EventID:       testEventID,
		Amount:        0,
		Provider:      models.ProviderVPOS,
		TicketHolders: []string{testPersonID},
	}

	_, err := svc.CreatePayment(context.Background(), req)
	assert.Error(t, err)
	// Validation fails before any Redis traffic.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentNotFound(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectHGetAll("payment:order:404").SetVal(map[string]string{})

	_, err := svc.GetPayment(context.Background(), 404)
	assert.ErrorIs(t, err, status.ErrOrderNotFound)
}

func TestGetPaymentParsesHash(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentPending))

	p, err := svc.GetPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, p.OrderID)
	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, "upstream-7", p.UpstreamPaymentID)
	assert.Equal(t, []string{testPersonID}, p.TicketHolders)
	assert.InDelta(t, 5000.0, p.Amount, 0.001)
}

func TestConfirmPaymentIdempotentOnDuplicate(t *testing.T) {
	svc, mock, pub := newTestPaymentService(t)

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentConfirmed))
	mock.ExpectDel("payment:lock:7").SetVal(1)

	resp, err := svc.ConfirmPayment(context.Background(), schemas.PaymentConfirmRequest{
		OrderID:  7,
		Provider: models.ProviderVPOS,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentConfirmed, resp.Status)
	require.NotNil(t, resp.Description)
	assert.Equal(t, "already confirmed", *resp.Description)
	// The duplicate answer is an echo, not a new settlement.
	assert.Empty(t, pub.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentRefusesTerminalOrder(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentRefunded))
	mock.ExpectDel("payment:lock:7").SetVal(1)

	_, err := svc.ConfirmPayment(context.Background(), schemas.PaymentConfirmRequest{
		OrderID:  7,
		Provider: models.ProviderVPOS,
	})
	assert.ErrorIs(t, err, status.ErrTerminalState)
}

func TestConfirmPaymentRefusesCreatedOrder(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentCreated))
	mock.ExpectDel("payment:lock:7").SetVal(1)

	_, err := svc.ConfirmPayment(context.Background(), schemas.PaymentConfirmRequest{
		OrderID:  7,
		Provider: models.ProviderVPOS,
	})
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
}

func TestConfirmPaymentLeavesUnsettledOrderPending(t *testing.T) {
	// The gateway has not seen the payer finish checkout yet; its detail
	// response carries no response code at all.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc, mock, pub := newTestPaymentService(t)
	require.NoError(t, svc.Registry.Register(context.Background(), models.ProviderVPOS, &vpos.Config{BaseURL: srv.URL}))

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentPending))
	mock.ExpectDel("payment:lock:7").SetVal(1)

	_, err := svc.ConfirmPayment(context.Background(), schemas.PaymentConfirmRequest{
		OrderID:  7,
		Provider: models.ProviderVPOS,
	})
	assert.ErrorIs(t, err, status.ErrUpstreamPending)
	assert.Empty(t, pub.published)
	// No status write happened: the order is still PENDING and a later
	// confirmation can settle it.
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentPending))
	p, err := svc.GetPayment(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, p.Status.CanTransitionTo(models.PaymentConfirmed))
}

func TestConfirmPaymentRejectsDeclinedOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ResponseCode":"51","TrxnDescription":"insufficient funds"}`))
	}))
	defer srv.Close()

	svc, mock, pub := newTestPaymentService(t)
	require.NoError(t, svc.Registry.Register(context.Background(), models.ProviderVPOS, &vpos.Config{BaseURL: srv.URL}))

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentPending))
	mock.ExpectHSet("payment:order:7", "status", "REJECTED").SetVal(1)
	mock.Regexp().ExpectHSet("payment:order:7", "updated_at", `\d+`).SetVal(1)
	mock.ExpectHSet("payment:order:7", "upstream_payment_id", "upstream-7").SetVal(1)
	mock.ExpectDel("payment:lock:7").SetVal(1)

	resp, err := svc.ConfirmPayment(context.Background(), schemas.PaymentConfirmRequest{
		OrderID:  7,
		Provider: models.ProviderVPOS,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRejected, resp.Status)
	require.Len(t, pub.published, 1)
	assert.Equal(t, "REJECTED", pub.published[0].message["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentLockContention(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(false)

	_, err := svc.ConfirmPayment(context.Background(), schemas.PaymentConfirmRequest{
		OrderID:  7,
		Provider: models.ProviderVPOS,
	})
	assert.ErrorIs(t, err, status.ErrTransitionInFlight)
}

func TestRefundPaymentOnlyFromConfirmed(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentPending))
	mock.ExpectDel("payment:lock:7").SetVal(1)

	_, err := svc.RefundPayment(context.Background(), 7)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
}

func TestRefundPaymentRefusesRefundedOrder(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectSetNX("payment:lock:7", 1, 30*time.Second).SetVal(true)
	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentRefunded))
	mock.ExpectDel("payment:lock:7").SetVal(1)

	_, err := svc.RefundPayment(context.Background(), 7)
	assert.ErrorIs(t, err, status.ErrTerminalState)
}

func TestInitiatePaymentRequiresCreatedOrder(t *testing.T) {
	svc, mock, _ := newTestPaymentService(t)

	mock.ExpectHGetAll("payment:order:7").SetVal(pendingOrderHash(models.PaymentPending))

	_, err := svc.InitiatePayment(context.Background(), 7)
	assert.ErrorIs(t, err, status.ErrInvalidTransition)
}

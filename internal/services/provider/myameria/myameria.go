package myameria

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pass-platform/internal/status"
	"pass-platform/models"
	"pass-platform/schemas"

	pubnub "github.com/pubnub/go/v7"
	"github.com/shopspring/decimal"
)

type (
	Config struct {
		BaseURL    string `json:"base_url" mapstructure:"base_url"`
		MerchantID string `json:"merchant_id" mapstructure:"merchant_id"`
		APIKey     string `json:"api_key" mapstructure:"api_key"`

		PNSubKey    string `json:"pn_subkey" mapstructure:"pn_subkey"`
		PNSubSecret string `json:"pn_subsecret" mapstructure:"pn_subsecret"`
		PNUUID      string `json:"pn_uuid" mapstructure:"pn_uuid"`
		PNChannel   string `json:"pn_channel" mapstructure:"pn_channel"`
		PNCipherKey string `json:"pn_cipherKey" mapstructure:"pn_cipherkey"`
	}

	Wallet struct {
		MerchantID string

		pnSubKey    string
		pnSubSecret string
		pnUUID      string
		pnChannels  []string
		pnCipherKey string

		sub *subscribe

		client *Client
	}
)

type payload struct {
	PaymentID     string  `json:"paymentId"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	IsSuccessful  bool    `json:"isSuccessful"`
	PaymentDate   string  `json:"paymentDate"`
}

// New returns a new MyAmeria wallet instance subscribed to the
// merchant's confirmation channel.
func New(ctx context.Context, cfg *Config) (*Wallet, error) {
	client := newClient(ctx, &ClientConfig{
		BaseURL:    cfg.BaseURL,
		MerchantID: cfg.MerchantID,
		APIKey:     cfg.APIKey,
	})

	w := &Wallet{
		MerchantID: cfg.MerchantID,

		pnSubKey:    cfg.PNSubKey,
		pnSubSecret: cfg.PNSubSecret,
		pnUUID:      cfg.PNUUID,
		pnChannels:  []string{cfg.PNChannel},
		pnCipherKey: cfg.PNCipherKey,

		client: client,
	}

	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(w.pnUUID))
	pnCfg.SubscribeKey = w.pnSubKey
	pnCfg.CipherKey = w.pnCipherKey
	pnCfg.SecretKey = w.pnSubSecret

	newSub, err := w.newSubscription(ctx, pnCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to MyAmeria's PubNub channel: %v", err)
	}

	newSub.pn.AddListener(newSub.lis)
	newSub.pn.Subscribe().Channels(w.pnChannels).Execute()
	w.sub = newSub

	return w, nil
}

type subscribe struct {
	pn  *pubnub.PubNub
	lis *pubnub.Listener
	ch  chan *status.Confirmation
}

func (w *Wallet) newSubscription(ctx context.Context, pnCfg *pubnub.Config) (*subscribe, error) {
	sub := &subscribe{
		pn:  pubnub.NewPubNub(pnCfg),
		lis: pubnub.NewListener(),
	}

	go sub.processSubscription(ctx)

	return sub, nil
}

func (s *subscribe) processSubscription(ctx context.Context) error {
	listener := s.lis
	for {
		select {
		case st := <-listener.Status:
			switch st.Category {
			case pubnub.PNConnectedCategory:
				log.Println("connected to pubnub")

			case pubnub.PNReconnectedCategory:
				log.Println("reconnected to pubnub")

			case pubnub.PNDisconnectedCategory:
				log.Println("disconnected from pubnub")

			default:
				log.Println("pubnub status category:", st.Category)
			}

		case message := <-listener.Message:
			log.Println("message received pubnub: ", message.Message)

			var p payload
			dec := json.NewDecoder(strings.NewReader(message.Message.(string)))
			if err := dec.Decode(&p); err != nil {
				log.Println(err)
				continue
			}

			conf, err := p.ToDomain()
			if err != nil {
				log.Println(err)
				continue
			}
			if s.ch != nil {
				s.ch <- conf
			}

		case <-ctx.Done():
			log.Println("close subscribe")
			return nil
		}
	}
}

func (p *payload) ToDomain() (*status.Confirmation, error) {
	ts, err := time.Parse(time.RFC3339, p.PaymentDate)
	if err != nil {
		return nil, err
	}

	return &status.Confirmation{
		UpstreamPaymentID: p.PaymentID,
		TransactionID:     p.TransactionID,
		Amount:            decimal.NewFromFloat(p.Amount),
		Succeeded:         p.IsSuccessful,
		CreatedAt:         ts,
	}, nil
}

func (w *Wallet) SetConfirmationChannel(ch chan *status.Confirmation) {
	w.sub.ch = ch
}

// CreatePayment opens a wallet checkout and returns the upstream
// payment id plus the redirect to the wallet app.
func (w *Wallet) CreatePayment(ctx context.Context, amount decimal.Decimal, transactionID, userID string) (string, string, error) {
	f, _ := amount.Float64()
	reply, err := w.client.createPayment(ctx, f, transactionID, userID)
	if err != nil {
		return "", "", err
	}
	return reply.PaymentID, reply.RedirectURL, nil
}

// PaymentDetails fetches the raw wallet detail response.
func (w *Wallet) PaymentDetails(ctx context.Context, paymentID, transactionID string) (*schemas.MyameriaPaymentDetailsResponse, error) {
	return w.client.getPaymentDetails(ctx, paymentID, transactionID)
}

// Refund refunds a settled wallet payment.
func (w *Wallet) Refund(ctx context.Context, paymentID string, amount decimal.Decimal) error {
	f, _ := amount.Float64()
	return w.client.refundPayment(ctx, paymentID, f)
}

func (w *Wallet) Unsubscribe(ctx context.Context) {
	w.sub.pn.Unsubscribe().Channels(w.pnChannels).Execute()
}

// StatusFromDetails maps a wallet detail response onto the payment
// lifecycle vocabulary.
func StatusFromDetails(d *schemas.MyameriaPaymentDetailsResponse) models.PaymentStatus {
	switch {
	case d.IsRefunded:
		return models.PaymentRefunded
	case d.IsSuccessful:
		return models.PaymentConfirmed
	default:
		return models.PaymentRejected
	}
}

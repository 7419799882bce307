package myameria

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pass-platform/schemas"
)

type ClientConfig struct {
	BaseURL    string `json:"base_url" mapstructure:"base_url"`
	MerchantID string `json:"merchant_id" mapstructure:"merchant_id"`
	APIKey     string `json:"api_key" mapstructure:"api_key"`
}

type Client struct {
	// baseURL is the base url of the wallet backend.
	baseURL string

	// merchantID is the merchant id registered with the wallet.
	merchantID string

	// apiKey authenticates every call.
	apiKey string

	// hc is the http client.
	hc *http.Client
}

func newClient(_ context.Context, c *ClientConfig) *Client {
	return &Client{
		baseURL:    c.BaseURL,
		merchantID: c.MerchantID,
		apiKey:     c.APIKey,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) post(ctx context.Context, path string, body, reply interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("myameria: json.Marshal: %w", err)
	}

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), path), bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("myameria: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("myameria: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("myameria: resp.StatusCode: 401 => Unauthorized")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("myameria: unexpected status code: %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(reply); err != nil {
		return fmt.Errorf("myameria: json.Decode: %w", err)
	}
	return nil
}

type createPaymentReply struct {
	PaymentID   string `json:"paymentId"`
	RedirectURL string `json:"redirectUrl"`
}

// createPayment opens a wallet checkout for the given amount.
func (c *Client) createPayment(ctx context.Context, amount float64, transactionID, userID string) (*createPaymentReply, error) {
	body := schemas.MyAmeriaCreateRequest{
		TransactionAmount: amount,
		TransactionID:     transactionID,
		MerchantID:        c.merchantID,
		IsBindingEnabled:  false,
		UserID:            userID,
	}

	var reply createPaymentReply
	if err := c.post(ctx, "/api/payments/create", body, &reply); err != nil {
		return nil, fmt.Errorf("createPayment: %w", err)
	}
	if reply.PaymentID == "" {
		return nil, errors.New("createPayment: empty paymentId in reply")
	}
	return &reply, nil
}

// getPaymentDetails fetches the wallet's view of a payment.
func (c *Client) getPaymentDetails(ctx context.Context, paymentID, transactionID string) (*schemas.MyameriaPaymentDetailsResponse, error) {
	body := schemas.MyameriaPaymentDetailsRequest{
		TransactionID: transactionID,
		PaymentID:     paymentID,
		MerchantID:    c.merchantID,
	}

	var reply schemas.MyameriaPaymentDetailsResponse
	if err := c.post(ctx, "/api/payments/details", body, &reply); err != nil {
		return nil, fmt.Errorf("getPaymentDetails: %w", err)
	}
	return &reply, nil
}

type refundReply struct {
	IsSuccessful bool   `json:"isSuccessful"`
	Message      string `json:"message"`
}

// refundPayment refunds a settled wallet payment.
func (c *Client) refundPayment(ctx context.Context, paymentID string, amount float64) error {
	body := struct {
		PaymentID  string  `json:"paymentId"`
		MerchantID string  `json:"merchantId"`
		Amount     float64 `json:"amount"`
	}{paymentID, c.merchantID, amount}

	var reply refundReply
	if err := c.post(ctx, "/api/payments/refund", body, &reply); err != nil {
		return fmt.Errorf("refundPayment: %w", err)
	}
	if !reply.IsSuccessful {
		return fmt.Errorf("refundPayment: reply.Message: %s", reply.Message)
	}
	return nil
}

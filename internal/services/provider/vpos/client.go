package vpos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pass-platform/schemas"
)

type ClientConfig struct {
	BaseURL  string `json:"base_url" mapstructure:"base_url"`
	ClientID string `json:"client_id" mapstructure:"client_id"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
}

type Client struct {
	// baseURL is the base url of the virtual POS gateway.
	baseURL string

	// clientID identifies the merchant terminal.
	clientID string

	// username and password authenticate every call; the gateway has
	// no token handshake.
	username string
	password string

	// hc is the http client.
	hc *http.Client
}

func newClient(_ context.Context, c *ClientConfig) *Client {
	return &Client{
		baseURL:  c.BaseURL,
		clientID: c.ClientID,
		username: c.Username,
		password: c.Password,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) post(ctx context.Context, path string, body, reply interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("vpos: json.Marshal: %w", err)
	}

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), path), bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("vpos: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("vpos: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vpos: unexpected status code: %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(reply); err != nil {
		return fmt.Errorf("vpos: json.Decode: %w", err)
	}
	return nil
}

type initPaymentReply struct {
	PaymentID       string `json:"PaymentID"`
	ResponseCode    int    `json:"ResponseCode"`
	ResponseMessage string `json:"ResponseMessage"`
}

// initPayment registers the order with the gateway and returns the
// upstream payment id.
func (c *Client) initPayment(ctx context.Context, orderID int, amount float64, description, backURL, opaque string) (*initPaymentReply, error) {
	body := schemas.VposInitPaymentRequest{
		ClientID:    c.clientID,
		Username:    c.username,
		Password:    c.password,
		Description: description,
		OrderID:     orderID,
		Amount:      amount,
		BackURL:     backURL,
		Opaque:      opaque,
	}

	var reply initPaymentReply
	if err := c.post(ctx, "/api/VPOS/InitPayment", body, &reply); err != nil {
		return nil, fmt.Errorf("initPayment: %w", err)
	}
	if reply.ResponseCode != 1 {
		return nil, fmt.Errorf("initPayment: reply.ResponseCode: %d, reply.ResponseMessage: %s", reply.ResponseCode, reply.ResponseMessage)
	}

	return &reply, nil
}

// getPaymentDetails fetches the gateway's view of a payment.
func (c *Client) getPaymentDetails(ctx context.Context, paymentID string) (*schemas.VPOSPaymentDetailsResponse, error) {
	body := schemas.VPOSPaymentDetailsRequest{
		Username:  c.username,
		Password:  c.password,
		PaymentID: paymentID,
	}

	var reply schemas.VPOSPaymentDetailsResponse
	if err := c.post(ctx, "/api/VPOS/GetPaymentDetails", body, &reply); err != nil {
		return nil, fmt.Errorf("getPaymentDetails: %w", err)
	}
	return &reply, nil
}

type refundReply struct {
	ResponseCode    string `json:"ResponseCode"`
	ResponseMessage string `json:"ResponseMessage"`
}

// refundPayment refunds a deposited payment, fully or partially.
func (c *Client) refundPayment(ctx context.Context, paymentID string, amount float64) error {
	body := struct {
		Username  string  `json:"Username"`
		Password  string  `json:"Password"`
		PaymentID string  `json:"PaymentID"`
		Amount    float64 `json:"Amount"`
	}{c.username, c.password, paymentID, amount}

	var reply refundReply
	if err := c.post(ctx, "/api/VPOS/RefundPayment", body, &reply); err != nil {
		return fmt.Errorf("refundPayment: %w", err)
	}
	if reply.ResponseCode != "00" {
		return fmt.Errorf("refundPayment: reply.ResponseCode: %s, reply.ResponseMessage: %s", reply.ResponseCode, reply.ResponseMessage)
	}
	return nil
}

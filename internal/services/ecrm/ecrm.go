package ecrm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pass-platform/schemas"
	"pass-platform/utils"
)

type Config struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
	Token   string `json:"token" mapstructure:"token"`
}

// Client talks to the cash-register bridge. Every call addresses a
// specific fiscal device by its crn. Calls are not deduplicated:
// repeating a print legitimately mints a new fiscal document.
type Client struct {
	baseURL string
	token   string

	// breaker guards the bridge; fiscal devices go offline often.
	breaker *utils.CircuitBreaker

	hc *http.Client
}

func NewClient(_ context.Context, cfg *Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		breaker: utils.NewCircuitBreaker("ecrm"),

		hc: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*schemas.ECRMResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ecrm: json.Marshal: %w", err)
	}

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		_baseURL, _ := url.Parse(c.baseURL)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), path), bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("ecrm: http.NewReq: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("ecrm: http.Do: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("ecrm: unexpected status code: %d", resp.StatusCode)
		}

		var reply schemas.ECRMResponse
		dec := json.NewDecoder(resp.Body)
		if err := dec.Decode(&reply); err != nil {
			return nil, fmt.Errorf("ecrm: json.Decode: %w", err)
		}
		return &reply, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*schemas.ECRMResponse), nil
}

// PrintReceipt prints a fiscal receipt on the device addressed by
// req.CRN and returns the fiscal result.
func (c *Client) PrintReceipt(ctx context.Context, req *schemas.ECRMPrintRequest) (*schemas.ECRMResponse, error) {
	reply, err := c.post(ctx, "/api/print", req)
	if err != nil {
		return nil, fmt.Errorf("printReceipt: %w", err)
	}
	if reply.Code != 200 {
		return nil, fmt.Errorf("printReceipt: reply.Code: %d, reply.Message: %s", reply.Code, replyMessage(reply))
	}
	if reply.Result.Total != req.Total() {
		return nil, fmt.Errorf("printReceipt: fiscal total %d does not match tendered %d", reply.Result.Total, req.Total())
	}
	return reply, nil
}

// CheckConnection pings the fiscal device addressed by crn.
func (c *Client) CheckConnection(ctx context.Context, crn int) error {
	reply, err := c.post(ctx, "/api/checkConnection", schemas.ECRMCheckConnRequest{CRN: crn})
	if err != nil {
		return fmt.Errorf("checkConnection: %w", err)
	}
	if reply.Code != 200 {
		return fmt.Errorf("checkConnection: reply.Code: %d, reply.Message: %s", reply.Code, replyMessage(reply))
	}
	return nil
}

// replyMessage picks the failure text: the bridge puts it in message,
// or in a bare-string result when the device itself errored.
func replyMessage(reply *schemas.ECRMResponse) string {
	if reply.Message != "" {
		return reply.Message
	}
	return reply.Result.Error
}

package vpos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pass-platform/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srvURL string) *Client {
	return newClient(context.Background(), &ClientConfig{
		BaseURL:  srvURL,
		ClientID: "client-1",
		Username: "merchant",
		Password: "secret",
	})
}

func TestInitPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/VPOS/InitPayment", r.URL.Path)

		var req schemas.VposInitPaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "client-1", req.ClientID)
		assert.Equal(t, 42, req.OrderID)
		assert.InDelta(t, 5000.0, req.Amount, 0.001)

		json.NewEncoder(w).Encode(initPaymentReply{
			PaymentID:    "upstream-42",
			ResponseCode: 1,
		})
	}))
	defer srv.Close()

	reply, err := testClient(srv.URL).initPayment(context.Background(), 42, 5000, "order 42", "", "42")
	require.NoError(t, err)
	assert.Equal(t, "upstream-42", reply.PaymentID)
}

func TestInitPaymentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(initPaymentReply{
			ResponseCode:    0,
			ResponseMessage: "invalid credentials",
		})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).initPayment(context.Background(), 42, 5000, "order 42", "", "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestRefundPaymentRejectsNonApprovedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/VPOS/RefundPayment", r.URL.Path)
		json.NewEncoder(w).Encode(refundReply{
			ResponseCode:    "57",
			ResponseMessage: "refund not permitted",
		})
	}))
	defer srv.Close()

	err := testClient(srv.URL).refundPayment(context.Background(), "upstream-42", 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refund not permitted")
}

func TestPostRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).getPaymentDetails(context.Background(), "upstream-42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
}

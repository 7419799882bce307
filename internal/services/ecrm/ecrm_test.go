package ecrm

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

func printRequest() *schemas.ECRMPrintRequest {
	return &schemas.ECRMPrintRequest{
		CRN:        101,
		CardAmount: 1000,
		CashAmount: 0,
		CashierID:  1,
		Items: []schemas.ECRMItem{
			{Quantity: 1, Price: 1000},
		},
	}
}

func TestPrintReceipt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/print", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req schemas.ECRMPrintRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 101, req.CRN)

		json.NewEncoder(w).Encode(schemas.ECRMResponse{
			Code:    200,
			Message: "OK",
			Result: schemas.ECRMResult{
				ReceiptID: "rcpt-1",
				Total:     1000,
				Fiscal:    "F123456",
			},
		})
	}))
	defer srv.Close()

	client := NewClient(context.Background(), &Config{BaseURL: srv.URL, Token: "secret"})

	reply, err := client.PrintReceipt(context.Background(), printRequest())
	require.NoError(t, err)
	assert.Equal(t, "rcpt-1", reply.Result.ReceiptID)
	assert.Equal(t, 1000, reply.Result.Total)
}

func TestPrintReceiptTotalMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(schemas.ECRMResponse{
			Code:   200,
			Result: schemas.ECRMResult{Total: 999},
		})
	}))
	defer srv.Close()

	client := NewClient(context.Background(), &Config{BaseURL: srv.URL, Token: "secret"})

	_, err := client.PrintReceipt(context.Background(), printRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestPrintReceiptDeviceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(schemas.ECRMResponse{
			Code:    500,
			Message: "printer offline",
		})
	}))
	defer srv.Close()

	client := NewClient(context.Background(), &Config{BaseURL: srv.URL, Token: "secret"})

	_, err := client.PrintReceipt(context.Background(), printRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer offline")
}

func TestPrintReceiptStringResult(t *testing.T) {
	// On device errors the bridge sends result as a bare string instead
	// of the receipt object.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":500,"message":"","result":"printer jam"}`))
	}))
	defer srv.Close()

	client := NewClient(context.Background(), &Config{BaseURL: srv.URL, Token: "secret"})

	_, err := client.PrintReceipt(context.Background(), printRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer jam")
}

func TestECRMResultDecodesBothShapes(t *testing.T) {
	var object schemas.ECRMResponse
	require.NoError(t, json.Unmarshal([]byte(`{"code":200,"result":{"receiptId":"rcpt-1","total":1000}}`), &object))
	assert.Equal(t, "rcpt-1", object.Result.ReceiptID)
	assert.Equal(t, 1000, object.Result.Total)
	assert.Empty(t, object.Result.Error)

	var str schemas.ECRMResponse
	require.NoError(t, json.Unmarshal([]byte(`{"code":500,"result":"fiscal module not responding"}`), &str))
	assert.Equal(t, "fiscal module not responding", str.Result.Error)
}

func TestCheckConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/checkConnection", r.URL.Path)

		var req schemas.ECRMCheckConnRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 101, req.CRN)

		json.NewEncoder(w).Encode(schemas.ECRMResponse{Code: 200, Message: "OK"})
	}))
	defer srv.Close()

	client := NewClient(context.Background(), &Config{BaseURL: srv.URL, Token: "secret"})

	assert.NoError(t, client.CheckConnection(context.Background(), 101))
}

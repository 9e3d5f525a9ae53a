package paydpi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/domain/aggregate"
	apperrors "skillsprint/pkg/errors"
)

func TestClientInitiatePayout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "Bearer demo-merchant", r.Header.Get("Authorization"))

		var req InitiatePayoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "g1", req.GigID)
		assert.Equal(t, float64(3000), req.AmountLKR)
		assert.Equal(t, "demo-merchant", req.MerchantID)

		json.NewEncoder(w).Encode(InitiatePayoutResponse{
			PayoutID: "pay_gw_1",
			Status:   aggregate.PayoutStatusInitiated,
		})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, MerchantID: "demo-merchant", Secret: "supersecret"})

	resp, err := client.InitiatePayout(context.Background(), "g1", 3000)
	require.NoError(t, err)
	assert.Equal(t, "pay_gw_1", resp.PayoutID)
	assert.Equal(t, aggregate.PayoutStatusInitiated, resp.Status)
}

func TestClientInitiatePayoutGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, MerchantID: "demo-merchant"})

	_, err := client.InitiatePayout(context.Background(), "g1", 3000)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, "GATEWAY_ERROR", appErr.Code)
}

func TestClientInitiatePayoutMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"initiated"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, MerchantID: "demo-merchant"})

	_, err := client.InitiatePayout(context.Background(), "g1", 3000)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, "GATEWAY_ERROR", appErr.Code)
}

func TestClientInitiatePayoutUnreachable(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1", MerchantID: "demo-merchant"})

	_, err := client.InitiatePayout(context.Background(), "g1", 3000)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.ApplicationError)
	require.True(t, ok)
	assert.Equal(t, "GATEWAY_ERROR", appErr.Code)
}

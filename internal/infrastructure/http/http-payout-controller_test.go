package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsprint/internal/application/services"
	"skillsprint/internal/infrastructure/memory"
	"skillsprint/internal/infrastructure/ndx"
	"skillsprint/internal/infrastructure/paydpi"
	jwtutil "skillsprint/pkg/jwt"
)

func TestInitiatePayoutEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/api/paydpi", `{"gigId":"g1","amountLKR":3000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["payoutId"])
	assert.Equal(t, "initiated", body["status"])
}

func TestInitiatePayoutEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, payload := range []string{
		`{"amountLKR":3000}`,
		`{"gigId":"g1"}`,
		`{"gigId":"g1","amountLKR":-10}`,
		`{"gigId":"g1","amountLKR":"three thousand"}`,
		`not json`,
	} {
		rec := env.postJSON(t, "/api/paydpi", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "payload: %s", payload)
		assert.NotEmpty(t, decodeBody(t, rec)["error"])
	}
}

func TestPayoutStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)
	payoutID := initiate(t, env)

	rec := env.do(t, http.MethodGet, "/api/paydpi/status?payoutId="+payoutID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, payoutID, body["payoutId"])
	assert.Equal(t, "initiated", body["status"])
	assert.NotEmpty(t, body["timestamp"])

	// Pollers must never see a cached response.
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	assert.Equal(t, "0", rec.Header().Get("Expires"))
}

func TestPayoutStatusEndpointNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/paydpi/status?payoutId=pay_missing", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Payout not found", decodeBody(t, rec)["error"])
}

func TestPayoutStatusEndpointMissingParam(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/paydpi/status", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestPayoutLifecycleWithSimulatedSettlement runs the whole mock-mode loop
// over a real HTTP server: initiation schedules a signed settlement webhook
// back into the same server, and polling observes initiated → settled.
func TestPayoutLifecycleWithSimulatedSettlement(t *testing.T) {
	store := memory.NewPayoutStore()

	var handler http.Handler
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	defer server.Close()

	scheduler := paydpi.NewSettlementScheduler(server.URL+"/v1/payouts/webhook", testSecret, 20*time.Millisecond)
	defer scheduler.Stop()

	payoutService := services.NewPayoutService(store, memory.NewIdempotencyLedger(), true, scheduler, nil)
	sessions := memory.NewSessionStore(5 * time.Minute)
	authService := services.NewAuthService(sessions, jwtutil.NewJWTManager("test-secret", time.Hour), true)

	handler = NewRouter(Controllers{
		Payout:  NewHTTPPayoutController(payoutService),
		Webhook: NewHTTPWebhookController(payoutService, testSecret),
		Auth:    NewHTTPAuthController(authService),
		NDE:     NewHTTPNDEController(ndx.NewClient(&ndx.Config{UseMock: true})),
		Gig:     NewHTTPGigController(),
	}, CORSConfig{WebOrigin: "http://localhost:3000", PublicBaseURL: server.URL})

	env := &testEnv{handler: handler, store: store}

	payoutID := initiate(t, env)
	payout := env.mustGet(t, payoutID)
	require.Equal(t, "initiated", string(payout.Status()))

	assert.Eventually(t, func() bool {
		rec := env.do(t, http.MethodGet, "/api/paydpi/status?payoutId="+payoutID, nil, nil)
		if rec.Code != http.StatusOK {
			return false
		}
		return decodeBody(t, rec)["status"] == "settled"
	}, 2*time.Second, 10*time.Millisecond)
}

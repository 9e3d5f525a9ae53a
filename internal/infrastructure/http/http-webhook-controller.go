package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"skillsprint/internal/application/services"
	"skillsprint/internal/domain/event"
	"skillsprint/internal/infrastructure/paydpi"
	"skillsprint/pkg/errors"
	"skillsprint/pkg/middleware"
	"skillsprint/pkg/response"
	"skillsprint/pkg/signature"
)

// HTTPWebhookController receives settlement notifications from the
// payments gateway (or from the mock settlement scheduler).
type HTTPWebhookController struct {
	payoutService *services.PayoutService
	secret        string
}

// NewHTTPWebhookController creates a new HTTP webhook controller
func NewHTTPWebhookController(payoutService *services.PayoutService, secret string) *HTTPWebhookController {
	return &HTTPWebhookController{
		payoutService: payoutService,
		secret:        secret,
	}
}

// HandleSettlementWebhook handles POST /v1/payouts/webhook.
//
// The step order is load-bearing: the signature is checked over the raw
// request bytes before any JSON parsing, so no work is done on
// unauthenticated input beyond reading the body.
func (c *HTTPWebhookController) HandleSettlementWebhook(w http.ResponseWriter, r *http.Request) {
	sig := r.Header.Get(paydpi.SignatureHeader)
	if sig == "" {
		middleware.HandleError(w, r, errors.NewAuthenticationError("Missing signature header"))
		return
	}

	rawBody, err := io.ReadAll(r.Body)
	if err != nil || len(rawBody) == 0 {
		middleware.HandleError(w, r, errors.NewValidationError("Missing request body"))
		return
	}

	if !signature.Verify(rawBody, sig, c.secret) {
		slog.Warn("invalid webhook signature received",
			"request_id", middleware.GetRequestID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
		middleware.HandleError(w, r, errors.NewAuthenticationError("Invalid signature"))
		return
	}

	var evt event.SettlementEvent
	if err := json.Unmarshal(rawBody, &evt); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("Invalid JSON payload"))
		return
	}
	if err := evt.Validate(); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	if err := c.payoutService.ApplySettlement(r.Context(), &evt); err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	// Duplicates and unknown payout IDs also land here: both are
	// acknowledged so the sender never retries on our internal state.
	response.SendNoContent(w)
}

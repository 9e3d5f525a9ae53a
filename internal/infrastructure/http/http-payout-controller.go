package http

import (
	"encoding/json"
	"net/http"

	"skillsprint/internal/application/services"
	"skillsprint/pkg/errors"
	"skillsprint/pkg/middleware"
	"skillsprint/pkg/response"
)

// HTTPPayoutController handles HTTP requests for payout operations
type HTTPPayoutController struct {
	payoutService *services.PayoutService
}

// NewHTTPPayoutController creates a new HTTP payout controller
func NewHTTPPayoutController(payoutService *services.PayoutService) *HTTPPayoutController {
	return &HTTPPayoutController{
		payoutService: payoutService,
	}
}

// InitiatePayout handles POST /api/paydpi
func (c *HTTPPayoutController) InitiatePayout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GigID     string  `json:"gigId"`
		AmountLKR float64 `json:"amountLKR"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, errors.NewValidationError("gigId and amountLKR are required"))
		return
	}

	result, err := c.payoutService.InitiatePayout(r.Context(), req.GigID, req.AmountLKR)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendOK(w, result)
}

// GetPayoutStatus handles GET /api/paydpi/status?payoutId=...
// Responses carry no-cache headers: the frontend polls this endpoint and
// must never be served a stale status.
func (c *HTTPPayoutController) GetPayoutStatus(w http.ResponseWriter, r *http.Request) {
	payoutID := r.URL.Query().Get("payoutId")

	result, err := c.payoutService.GetPayoutStatus(r.Context(), payoutID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SetNoCache(w)
	response.SendOK(w, result)
}

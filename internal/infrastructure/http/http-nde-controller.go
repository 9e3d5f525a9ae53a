package http

import (
	"encoding/json"
	"net/http"

	"skillsprint/internal/infrastructure/ndx"
	"skillsprint/pkg/errors"
	"skillsprint/pkg/middleware"
	"skillsprint/pkg/response"
)

// HTTPNDEController handles education-record lookups against the
// National Data Exchange
type HTTPNDEController struct {
	ndxClient *ndx.Client
}

// NewHTTPNDEController creates a new HTTP NDE controller
func NewHTTPNDEController(ndxClient *ndx.Client) *HTTPNDEController {
	return &HTTPNDEController{
		ndxClient: ndxClient,
	}
}

// GetEducationRecord handles POST /api/nde/education
func (c *HTTPNDEController) GetEducationRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, invalidBody())
		return
	}
	if req.Subject == "" {
		middleware.HandleError(w, r, errors.NewValidationError("Subject DID is required"))
		return
	}

	record, err := c.ndxClient.GetEducationRecord(r.Context(), req.Subject)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	// Pass-through: the record is returned exactly as the exchange
	// produced it.
	response.SendOK(w, record)
}

func invalidBody() *errors.ApplicationError {
	return errors.NewValidationError("Invalid request body")
}

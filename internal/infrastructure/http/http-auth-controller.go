package http

import (
	"encoding/json"
	"net/http"
	"time"

	"skillsprint/internal/application/services"
	"skillsprint/pkg/middleware"
	"skillsprint/pkg/response"
)

// SessionHeader carries the session ID for claims lookups
const SessionHeader = "x-session-id"

// HTTPAuthController handles HTTP requests for the government sign-in flow.
// Response shapes follow the MOSIP 1.2.0 authentication service:
// https://mosip.github.io/documentation/1.2.0/authentication-service.html
type HTTPAuthController struct {
	authService *services.AuthService
}

// NewHTTPAuthController creates a new HTTP auth controller
func NewHTTPAuthController(authService *services.AuthService) *HTTPAuthController {
	return &HTTPAuthController{
		authService: authService,
	}
}

type mosipEnvelope struct {
	TxnID        string      `json:"txnId,omitempty"`
	RequestID    string      `json:"requestId,omitempty"`
	ResponseTime string      `json:"responseTime"`
	Response     interface{} `json:"response"`
	Errors       interface{} `json:"errors"`
}

type mosipAuthStatus struct {
	AuthStatus string  `json:"authStatus"`
	AuthToken  *string `json:"authToken"`
	Message    string  `json:"message"`
}

type mosipError struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func responseTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Login handles POST /api/auth/login. It initiates an OTP transaction.
func (c *HTTPAuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone     string `json:"phone"`
		RequestID string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, invalidBody())
		return
	}

	txnID, err := c.authService.Login(req.Phone, req.RequestID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendOK(w, mosipEnvelope{
		TxnID:        txnID,
		RequestID:    req.RequestID,
		ResponseTime: responseTime(),
		Response: mosipAuthStatus{
			AuthStatus: "INITIATED",
			AuthToken:  nil,
			Message:    "OTP sent successfully",
		},
	})
}

// Verify handles POST /api/auth/verify. It completes an OTP transaction.
func (c *HTTPAuthController) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TxnID     string `json:"txnId"`
		OTP       string `json:"otp"`
		RequestID string `json:"requestId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.HandleError(w, r, invalidBody())
		return
	}

	result, err := c.authService.Verify(req.TxnID, req.OTP, req.RequestID)
	if err != nil {
		middleware.HandleError(w, r, err)
		return
	}

	response.SendOK(w, mosipEnvelope{
		TxnID:        req.TxnID,
		RequestID:    req.RequestID,
		ResponseTime: responseTime(),
		Response: mosipAuthStatus{
			AuthStatus: "SUCCESS",
			AuthToken:  &result.AuthToken,
			Message:    "Authentication successful",
		},
	})
}

// GetClaims handles GET /api/auth/claims. It returns the claims for the
// session named in the x-session-id header. Absent or invalid sessions are
// 200 responses with a MOSIP error list, not HTTP errors.
func (c *HTTPAuthController) GetClaims(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		response.SendOK(w, mosipEnvelope{
			ResponseTime: responseTime(),
			Errors:       []mosipError{{ErrorCode: "AUT-001", Message: "No session found"}},
		})
		return
	}

	claims, ok := c.authService.GetClaims(sessionID)
	if !ok {
		response.SendOK(w, mosipEnvelope{
			ResponseTime: responseTime(),
			Errors:       []mosipError{{ErrorCode: "AUT-002", Message: "Invalid session"}},
		})
		return
	}

	response.SendOK(w, mosipEnvelope{
		ResponseTime: responseTime(),
		Response: map[string]interface{}{
			"claims":    claims,
			"sessionId": sessionID,
		},
	})
}

// Health handles GET /api/auth/health
func (c *HTTPAuthController) Health(w http.ResponseWriter, r *http.Request) {
	response.SendOK(w, mosipEnvelope{
		ResponseTime: responseTime(),
		Response: map[string]string{
			"status":  "UP",
			"version": "1.2.0",
			"service": "MOSIP Authentication Service",
		},
	})
}

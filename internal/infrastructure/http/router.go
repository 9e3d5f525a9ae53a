package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"skillsprint/pkg/middleware"
	"skillsprint/pkg/response"
)

// Controllers aggregates every controller the router mounts
type Controllers struct {
	Payout  *HTTPPayoutController
	Webhook *HTTPWebhookController
	Auth    *HTTPAuthController
	NDE     *HTTPNDEController
	Gig     *HTTPGigController
}

// CORSConfig is the origin allow-list for the web frontend
type CORSConfig struct {
	WebOrigin     string
	PublicBaseURL string
}

// NewRouter wires middleware and routes. The webhook route takes the raw
// request body; everything else is decoded per-controller, so no global
// body-parsing middleware exists to get in its way.
func NewRouter(controllers Controllers, corsConfig CORSConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsConfig.WebOrigin, corsConfig.PublicBaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "x-paydpi-signature", "x-session-id", "Cache-Control", "Pragma"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthCheck)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", controllers.Auth.Login)
		r.Post("/verify", controllers.Auth.Verify)
		r.Get("/claims", controllers.Auth.GetClaims)
		r.Get("/health", controllers.Auth.Health)
	})

	r.Post("/api/nde/education", controllers.NDE.GetEducationRecord)

	r.Get("/v1/gigs", controllers.Gig.ListGigs)

	r.Post("/api/paydpi", controllers.Payout.InitiatePayout)
	r.Get("/api/paydpi/status", controllers.Payout.GetPayoutStatus)

	r.Post("/v1/payouts/webhook", controllers.Webhook.HandleSettlementWebhook)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.SendError(w, http.StatusNotFound, "Route not found")
	})

	return r
}

// healthCheck handles GET /health
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response.SendOK(w, map[string]interface{}{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}

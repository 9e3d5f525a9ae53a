package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"skillsprint/internal/application/services"
	"skillsprint/internal/config"
	httpHandler "skillsprint/internal/infrastructure/http"
	"skillsprint/internal/infrastructure/memory"
	"skillsprint/internal/infrastructure/ndx"
	"skillsprint/internal/infrastructure/paydpi"
	jwtutil "skillsprint/pkg/jwt"
)

const otpSessionTTL = 5 * time.Minute

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found or could not be loaded")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("starting SkillSprint API",
		"mode", mode(cfg),
		"base_url", cfg.PublicBaseURL,
		"web_origin", cfg.WebOrigin,
	)

	// Shared in-memory state, dependency-injected from here down.
	payoutStore := memory.NewPayoutStore()
	ledger := memory.NewIdempotencyLedger()
	sessions := memory.NewSessionStore(otpSessionTTL)

	scheduler := paydpi.NewSettlementScheduler(
		cfg.PublicBaseURL+"/v1/payouts/webhook",
		cfg.PayDPISecret,
		cfg.SettlementDelay,
	)
	gateway := paydpi.NewClient(&paydpi.Config{
		BaseURL:    cfg.PayDPIBaseURL,
		MerchantID: cfg.PayDPIMerchantID,
		Secret:     cfg.PayDPISecret,
	})
	ndxClient := ndx.NewClient(&ndx.Config{
		BaseURL: cfg.NDXBaseURL,
		APIKey:  cfg.NDXAPIKey,
		UseMock: cfg.UseMock,
	})
	jwtManager := jwtutil.NewJWTManager(cfg.JWTSecret, 24*time.Hour)

	payoutService := services.NewPayoutService(payoutStore, ledger, cfg.UseMock, scheduler, gateway)
	authService := services.NewAuthService(sessions, jwtManager, cfg.UseMock)

	handler := httpHandler.NewRouter(httpHandler.Controllers{
		Payout:  httpHandler.NewHTTPPayoutController(payoutService),
		Webhook: httpHandler.NewHTTPWebhookController(payoutService, cfg.PayDPISecret),
		Auth:    httpHandler.NewHTTPAuthController(authService),
		NDE:     httpHandler.NewHTTPNDEController(ndxClient),
		Gig:     httpHandler.NewHTTPGigController(),
	}, httpHandler.CORSConfig{
		WebOrigin:     cfg.WebOrigin,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	// Pending simulated settlements are cancelled, not delivered.
	scheduler.Stop()

	slog.Info("server stopped")
}

func mode(cfg *config.Config) string {
	if cfg.UseMock {
		return "mock"
	}
	return "sandbox"
}

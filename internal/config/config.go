package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all environment-backed configuration for the API
type Config struct {
	// Mode flag: mock (simulated settlement) vs sandbox (real gateway)
	UseMock bool

	// Government Sign-In
	SLUDIIssuer       string
	SLUDIClientID     string
	SLUDIClientSecret string
	SLUDIRedirectURI  string

	// National Data Exchange
	NDXBaseURL string
	NDXAPIKey  string

	// National Payments Gateway
	PayDPIBaseURL    string
	PayDPIMerchantID string
	PayDPISecret     string

	// Web / API
	Port          int
	PublicBaseURL string
	WebOrigin     string

	// Session tokens
	JWTSecret string

	// Simulated settlement delay (mock mode)
	SettlementDelay time.Duration
}

// Load builds a Config from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		UseMock: getEnv("USE_MOCK", "true") == "true",

		SLUDIIssuer:       getEnv("SLUDI_ISSUER", "https://mosip.example/auth"),
		SLUDIClientID:     getEnv("SLUDI_CLIENT_ID", ""),
		SLUDIClientSecret: getEnv("SLUDI_CLIENT_SECRET", ""),
		SLUDIRedirectURI:  getEnv("SLUDI_REDIRECT_URI", "http://localhost:3000/api/auth/callback"),

		NDXBaseURL: getEnv("NDX_BASE_URL", "https://choreo-domain/education"),
		NDXAPIKey:  getEnv("NDX_API_KEY", "your-choreo-token"),

		PayDPIBaseURL:    getEnv("PAYDPI_BASE_URL", "https://payments.sandbox.example"),
		PayDPIMerchantID: getEnv("PAYDPI_MERCHANT_ID", "demo-merchant"),
		PayDPISecret:     getEnv("PAYDPI_SECRET", "supersecret"),

		Port:          getEnvInt("PORT", 3003),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3003"),
		WebOrigin:     getEnv("WEB_ORIGIN", "http://localhost:3000"),

		JWTSecret: getEnv("JWT_SECRET", "skillsprint-dev-secret"),

		SettlementDelay: time.Duration(getEnvInt("SETTLEMENT_DELAY_MS", 3000)) * time.Millisecond,
	}
}

// Validate checks that credentials are present when running against the
// real integrations. Mock mode has no external dependencies.
func (c *Config) Validate() error {
	if c.UseMock {
		return nil
	}

	required := map[string]string{
		"SLUDI_CLIENT_ID":     c.SLUDIClientID,
		"SLUDI_CLIENT_SECRET": c.SLUDIClientSecret,
		"NDX_BASE_URL":        c.NDXBaseURL,
		"NDX_API_KEY":         c.NDXAPIKey,
		"PAYDPI_BASE_URL":     c.PayDPIBaseURL,
		"PAYDPI_MERCHANT_ID":  c.PayDPIMerchantID,
		"PAYDPI_SECRET":       c.PayDPISecret,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables when USE_MOCK=false: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

package services

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skillsprint/internal/domain/aggregate"
	"skillsprint/internal/infrastructure/memory"
	"skillsprint/pkg/errors"
	jwtutil "skillsprint/pkg/jwt"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// AuthService implements the government sign-in OTP flow. Mock mode accepts
// any well-formed six digit code; otherwise the code issued at login (and
// delivered out of band) must match.
type AuthService struct {
	sessions   *memory.SessionStore
	jwtManager *jwtutil.JWTManager
	useMock    bool
}

// NewAuthService creates a new auth service
func NewAuthService(sessions *memory.SessionStore, jwtManager *jwtutil.JWTManager, useMock bool) *AuthService {
	return &AuthService{
		sessions:   sessions,
		jwtManager: jwtManager,
		useMock:    useMock,
	}
}

// VerifyResult carries the outcome of a successful OTP verification
type VerifyResult struct {
	AuthToken string
	Claims    aggregate.AuthClaims
}

// Login starts an OTP transaction for a phone number and returns the
// transaction ID the client must echo back on verification.
func (s *AuthService) Login(phone, requestID string) (string, error) {
	if phone == "" {
		return "", errors.NewValidationError("Phone number is required")
	}
	if requestID == "" {
		return "", errors.NewValidationError("Request ID is required")
	}

	txnID := newTxnID()

	code := generateOTP()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.NewInternalError("Failed to issue OTP")
	}

	s.sessions.PutOTPSession(txnID, memory.OTPSession{
		Phone:     phone,
		RequestID: requestID,
		OTPHash:   hash,
		CreatedAt: time.Now(),
	})

	// The code is never returned to the client; delivery is the identity
	// provider's concern. Debug level keeps the demo usable without SMS.
	slog.Debug("OTP issued", "txn_id", txnID, "code", code)
	slog.Info("OTP login initiated", "phone", phone, "request_id", requestID)

	return txnID, nil
}

// Verify completes an OTP transaction, issues a session token and records
// the authenticated claims under the transaction ID.
func (s *AuthService) Verify(txnID, otp, requestID string) (*VerifyResult, error) {
	if txnID == "" || otp == "" || requestID == "" {
		return nil, errors.NewValidationError("Transaction ID, OTP, and Request ID are required")
	}

	session, ok := s.sessions.GetOTPSession(txnID)
	if !ok {
		return nil, errors.NewValidationError("Invalid transaction ID")
	}
	if session.RequestID != requestID {
		return nil, errors.NewValidationError("Request ID mismatch")
	}
	if !otpPattern.MatchString(otp) {
		return nil, errors.NewValidationError("Invalid OTP format")
	}
	if !s.useMock {
		if err := bcrypt.CompareHashAndPassword(session.OTPHash, []byte(otp)); err != nil {
			return nil, errors.NewAuthenticationError("Incorrect OTP")
		}
	}

	claims := aggregate.AuthClaims{
		Sub:        "did:national:abc123",
		Name:       "Demo User",
		Email:      "demo@user.lk",
		Phone:      session.Phone,
		NationalID: "LK123456789",
	}

	token, err := s.jwtManager.GenerateToken(claims.Sub, claims.Name, claims.Email, claims.Phone, claims.NationalID)
	if err != nil {
		return nil, errors.NewInternalError("Failed to issue session token")
	}

	s.sessions.PutUserSession(txnID, claims)
	s.sessions.DeleteOTPSession(txnID)

	slog.Info("user authenticated", "sub", claims.Sub)

	return &VerifyResult{AuthToken: token, Claims: claims}, nil
}

// GetClaims returns the authenticated claims stored for a session ID
func (s *AuthService) GetClaims(sessionID string) (aggregate.AuthClaims, bool) {
	return s.sessions.GetUserSession(sessionID)
}

func newTxnID() string {
	return fmt.Sprintf("tx_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:9])
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

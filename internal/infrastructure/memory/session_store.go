package memory

import (
	"sync"
	"time"

	"skillsprint/internal/domain/aggregate"
)

// OTPSession tracks an in-flight OTP transaction. The code itself is kept
// only as a bcrypt hash; it never leaves the process in clear text.
type OTPSession struct {
	Phone     string
	RequestID string
	OTPHash   []byte
	CreatedAt time.Time
}

// SessionStore holds OTP transactions and authenticated user sessions.
// Both maps live for the process lifetime; OTP sessions additionally expire
// after a TTL.
type SessionStore struct {
	otpSessions  map[string]OTPSession
	userSessions map[string]aggregate.AuthClaims
	ttl          time.Duration
	mutex        sync.RWMutex
}

// NewSessionStore returns a new in-memory session store
func NewSessionStore(otpTTL time.Duration) *SessionStore {
	return &SessionStore{
		otpSessions:  make(map[string]OTPSession),
		userSessions: make(map[string]aggregate.AuthClaims),
		ttl:          otpTTL,
	}
}

// PutOTPSession records an OTP transaction under its transaction ID
func (s *SessionStore) PutOTPSession(txnID string, session OTPSession) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.otpSessions[txnID] = session
}

// GetOTPSession returns the OTP session for a transaction ID. Expired
// sessions are dropped and reported as absent.
func (s *SessionStore) GetOTPSession(txnID string) (OTPSession, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, ok := s.otpSessions[txnID]
	if !ok {
		return OTPSession{}, false
	}
	if s.ttl > 0 && time.Since(session.CreatedAt) > s.ttl {
		delete(s.otpSessions, txnID)
		return OTPSession{}, false
	}
	return session, true
}

// DeleteOTPSession removes a consumed OTP transaction
func (s *SessionStore) DeleteOTPSession(txnID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.otpSessions, txnID)
}

// PutUserSession records authenticated claims under a session ID
func (s *SessionStore) PutUserSession(sessionID string, claims aggregate.AuthClaims) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.userSessions[sessionID] = claims
}

// GetUserSession returns the claims for an authenticated session
func (s *SessionStore) GetUserSession(sessionID string) (aggregate.AuthClaims, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	claims, ok := s.userSessions[sessionID]
	return claims, ok
}

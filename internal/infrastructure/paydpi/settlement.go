package paydpi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"skillsprint/internal/domain/event"
	"skillsprint/pkg/signature"
)

// SignatureHeader carries the hex-encoded HMAC of the settlement payload
const SignatureHeader = "x-paydpi-signature"

// SettlementScheduler simulates the gateway's asynchronous settlement
// notifications in mock mode. Each scheduled delivery is an independent
// timer task: it never blocks the request that scheduled it, and pending
// deliveries are cancellable at shutdown.
type SettlementScheduler struct {
	webhookURL string
	secret     string
	delay      time.Duration
	httpClient *http.Client

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// NewSettlementScheduler creates a scheduler delivering to the given
// webhook URL after the configured delay
func NewSettlementScheduler(webhookURL, secret string, delay time.Duration) *SettlementScheduler {
	return &SettlementScheduler{
		webhookURL: webhookURL,
		secret:     secret,
		delay:      delay,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		timers:     make(map[string]*time.Timer),
	}
}

// Schedule arranges delivery of a settlement event after the delay.
// The payload is serialized and signed up front so the delivered bytes are
// exactly the signed bytes.
func (s *SettlementScheduler) Schedule(evt event.SettlementEvent) {
	payload, err := json.Marshal(&evt)
	if err != nil {
		slog.Error("failed to marshal settlement event", "payout_id", evt.PayoutID, "error", err)
		return
	}
	sig := signature.Sign(payload, s.secret)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		slog.Warn("scheduler stopped, dropping settlement event", "payout_id", evt.PayoutID)
		return
	}

	key := evt.IdempotencyKey()
	s.wg.Add(1)
	s.timers[key] = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		s.forget(key)
		s.deliver(evt.PayoutID, payload, sig)
	})
}

// Stop cancels all pending deliveries and waits for in-flight ones
func (s *SettlementScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for key, timer := range s.timers {
		if timer.Stop() {
			// Timer had not fired; its task will never run.
			s.wg.Done()
		}
		delete(s.timers, key)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Pending returns the number of deliveries not yet fired
func (s *SettlementScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *SettlementScheduler) forget(key string) {
	s.mu.Lock()
	delete(s.timers, key)
	s.mu.Unlock()
}

func (s *SettlementScheduler) deliver(payoutID string, payload []byte, sig string) {
	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		slog.Error("failed to build webhook request", "payout_id", payoutID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, sig)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Error("error sending mock webhook", "payout_id", payoutID, "error", err)
		return
	}
	defer resp.Body.Close()

	slog.Info("mock webhook sent", "payout_id", payoutID, "status", resp.StatusCode)
}

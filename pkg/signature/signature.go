package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign generates a hex-encoded HMAC SHA256 signature over the payload.
// The same encoding is used for outbound gateway requests and for the
// simulated settlement webhooks, so verification is symmetric.
func Sign(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks a hex-encoded HMAC SHA256 signature against the raw payload
// bytes. Comparison is constant-time. Malformed hex, decoding failures and
// length mismatches all return false; Verify never panics.
func Verify(payload []byte, signatureHex string, secret string) bool {
	received, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	expected := h.Sum(nil)

	return hmac.Equal(received, expected)
}

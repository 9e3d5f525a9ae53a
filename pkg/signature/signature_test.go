package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	payload := []byte(`{"payoutId":"pay_1","status":"settled","amountLKR":3000,"gigId":"g1"}`)

	sig := Sign(payload, "supersecret")
	assert.Len(t, sig, 64)
	assert.True(t, Verify(payload, sig, "supersecret"))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"payoutId":"pay_1","status":"settled","amountLKR":3000,"gigId":"g1"}`)
	sig := Sign(payload, "supersecret")

	tampered := make([]byte, len(payload))
	copy(tampered, payload)
	tampered[len(tampered)-2] ^= 0x01

	assert.False(t, Verify(tampered, sig, "supersecret"))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"payoutId":"pay_1","status":"settled"}`)
	sig := Sign(payload, "wrong-secret")

	assert.False(t, Verify(payload, sig, "supersecret"))
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	payload := []byte(`{}`)

	assert.False(t, Verify(payload, "not-hex-at-all", "supersecret"))
	assert.False(t, Verify(payload, "deadbeef", "supersecret")) // wrong length
	assert.False(t, Verify(payload, "", "supersecret"))
}

package stripeapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedHeader(secret string, body []byte, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestParseSignatureHeader(t *testing.T) {
	t.Run("parses t and v1", func(t *testing.T) {
		ts, v1, err := ParseSignatureHeader("t=1492774577,v1=abcdef,v0=legacy")
		require.NoError(t, err)
		assert.Equal(t, int64(1492774577), ts)
		assert.Equal(t, "abcdef", v1)
	})

	t.Run("missing elements are rejected", func(t *testing.T) {
		_, _, err := ParseSignatureHeader("v1=abcdef")
		assert.ErrorIs(t, err, ErrInvalidHeader)

		_, _, err = ParseSignatureHeader("t=1492774577")
		assert.ErrorIs(t, err, ErrInvalidHeader)

		_, _, err = ParseSignatureHeader("")
		assert.ErrorIs(t, err, ErrInvalidHeader)
	})

	t.Run("non-numeric timestamp is rejected", func(t *testing.T) {
		_, _, err := ParseSignatureHeader("t=soon,v1=abcdef")
		assert.ErrorIs(t, err, ErrInvalidHeader)
	})
}

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Unix(1700000000, 0)

	t.Run("valid signature passes", func(t *testing.T) {
		header := signedHeader(secret, body, now)
		require.NoError(t, VerifySignature(body, header, secret, now))
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		header := signedHeader("whsec_other", body, now)
		require.ErrorIs(t, VerifySignature(body, header, secret, now), ErrSignatureMismatch)
	})

	t.Run("old timestamp is rejected", func(t *testing.T) {
		header := signedHeader(secret, body, now.Add(-6*time.Minute))
		require.ErrorIs(t, VerifySignature(body, header, secret, now), ErrTimestampOutsideTolerance)
	})

	t.Run("future timestamp is rejected", func(t *testing.T) {
		header := signedHeader(secret, body, now.Add(6*time.Minute))
		require.ErrorIs(t, VerifySignature(body, header, secret, now), ErrTimestampOutsideTolerance)
	})

	t.Run("drift within tolerance passes", func(t *testing.T) {
		header := signedHeader(secret, body, now.Add(-4*time.Minute))
		require.NoError(t, VerifySignature(body, header, secret, now))
	})
}

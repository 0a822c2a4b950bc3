package lineapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"events":[{"type":"follow","source":{"userId":"U1"}}]}`)
	secret := "channel-secret"

	t.Run("valid signature passes", func(t *testing.T) {
		err := VerifySignature(body, sign(secret, body), secret)
		require.NoError(t, err)
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		err := VerifySignature(body, sign("other-secret", body), secret)
		require.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("tampered body is rejected", func(t *testing.T) {
		header := sign(secret, body)
		tampered := append([]byte{}, body...)
		tampered[0] = '['

		err := VerifySignature(tampered, header, secret)
		require.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("garbage header is rejected", func(t *testing.T) {
		err := VerifySignature(body, "not-a-signature", secret)
		require.ErrorIs(t, err, ErrSignatureMismatch)
	})

	t.Run("missing header with secret configured is rejected", func(t *testing.T) {
		err := VerifySignature(body, "", secret)
		require.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("empty secret skips verification", func(t *testing.T) {
		require.NoError(t, VerifySignature(body, "", ""))
		require.NoError(t, VerifySignature(body, "anything", ""))
	})
}

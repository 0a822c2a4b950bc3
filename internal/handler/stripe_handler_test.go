package handler_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linewatch/internal/configs"
)

const testStripeSecret = "whsec_test"

func stripeSign(body []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testStripeSecret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newStripeHarness(t *testing.T, secret string) *harness {
	t.Helper()
	cfg := &configs.AppConfig{
		Environment:         "development",
		LineChannelSecret:   testChannelSecret,
		StripeWebhookSecret: secret,
		AdminUsername:       "admin",
		AdminPassword:       "pw",
	}
	return newHarness(t, cfg, nil)
}

func (h *harness) postStripe(body []byte, signature string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stripe/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestStripeWebhook(t *testing.T) {
	checkoutBody := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	t.Run("unset secret fails closed with 500", func(t *testing.T) {
		h := newStripeHarness(t, "")

		rec := h.postStripe(checkoutBody, stripeSign(checkoutBody))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("missing signature header is rejected", func(t *testing.T) {
		h := newStripeHarness(t, testStripeSecret)

		rec := h.postStripe(checkoutBody, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid signature is rejected", func(t *testing.T) {
		h := newStripeHarness(t, testStripeSecret)

		rec := h.postStripe(checkoutBody, "t=12345,v1=deadbeef")

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("valid checkout event is acknowledged", func(t *testing.T) {
		h := newStripeHarness(t, testStripeSecret)

		rec := h.postStripe(checkoutBody, stripeSign(checkoutBody))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	})

	t.Run("replayed event is acknowledged as duplicate", func(t *testing.T) {
		h := newStripeHarness(t, testStripeSecret)

		rec := h.postStripe(checkoutBody, stripeSign(checkoutBody))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = h.postStripe(checkoutBody, stripeSign(checkoutBody))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"duplicate":true}`, rec.Body.String())
	})

	t.Run("other event types are acknowledged and ignored", func(t *testing.T) {
		h := newStripeHarness(t, testStripeSecret)
		body := []byte(`{"id":"evt_2","type":"invoice.paid"}`)

		rec := h.postStripe(body, stripeSign(body))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"ignored":"invoice.paid"}`, rec.Body.String())
	})

	t.Run("invalid JSON with valid signature is rejected", func(t *testing.T) {
		h := newStripeHarness(t, testStripeSecret)
		body := []byte(`{broken`)

		rec := h.postStripe(body, stripeSign(body))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

/*
Package stripeapi implements verification of Stripe webhook signatures.

Stripe signs the payload "{timestamp}.{body}" with HMAC-SHA256 and delivers the
result in the Stripe-Signature header as "t=<unix>,v1=<hex>[,v0=...]". Verification
rejects stale timestamps to limit replay, then compares the v1 digest in constant
time.
*/
package stripeapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader is the request header carrying the Stripe signature.
const SignatureHeader = "Stripe-Signature"

// DefaultTolerance is how far the signed timestamp may drift from the server clock.
const DefaultTolerance = 5 * time.Minute

var (
	// ErrInvalidHeader is returned when the header is missing the t or v1 element.
	ErrInvalidHeader = errors.New("stripeapi: invalid signature header")

	// ErrTimestampOutsideTolerance is returned when the signed timestamp is too old
	// or too far in the future.
	ErrTimestampOutsideTolerance = errors.New("stripeapi: timestamp outside tolerance")

	// ErrSignatureMismatch is returned when the v1 digest does not match the body.
	ErrSignatureMismatch = errors.New("stripeapi: signature mismatch")
)

// ParseSignatureHeader extracts the timestamp and v1 digest from a
// Stripe-Signature header value.
func ParseSignatureHeader(header string) (timestamp int64, v1 string, err error) {
	parts := map[string]string{}
	for _, item := range strings.Split(header, ",") {
		key, value, found := strings.Cut(item, "=")
		if !found {
			continue
		}
		parts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	rawTimestamp, okT := parts["t"]
	v1, okV1 := parts["v1"]
	if !okT || !okV1 {
		return 0, "", ErrInvalidHeader
	}

	timestamp, err = strconv.ParseInt(rawTimestamp, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: bad timestamp", ErrInvalidHeader)
	}

	return timestamp, v1, nil
}

// VerifySignature checks header against the raw request body using secret.
// now is injected so tests can pin the clock.
func VerifySignature(body []byte, header, secret string, now time.Time) error {
	timestamp, v1, err := ParseSignatureHeader(header)
	if err != nil {
		return err
	}

	drift := now.Unix() - timestamp
	if drift < 0 {
		drift = -drift
	}
	if drift > int64(DefaultTolerance.Seconds()) {
		return ErrTimestampOutsideTolerance
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return ErrSignatureMismatch
	}

	return nil
}

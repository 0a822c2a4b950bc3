/*
Package lineapi implements the pieces of the LINE Messaging API this service needs:
webhook signature verification, the profile endpoint, and the reply endpoint.
*/
package lineapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

// SignatureHeader is the request header carrying the webhook signature.
const SignatureHeader = "x-line-signature"

var (
	// ErrMissingSignature is returned when a secret is configured but the request
	// carried no signature header.
	ErrMissingSignature = errors.New("lineapi: missing signature header")

	// ErrSignatureMismatch is returned when the signature does not match the body.
	ErrSignatureMismatch = errors.New("lineapi: signature mismatch")
)

// VerifySignature checks header against base64(HMAC-SHA256(secret, body)) using a
// constant-time comparison.
//
// An empty secret skips verification entirely. This is the insecure local mode for
// development against curl; production deployments must set LINE_CHANNEL_SECRET.
func VerifySignature(body []byte, header, secret string) error {
	if secret == "" {
		return nil
	}

	if header == "" {
		return ErrMissingSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(header)) != 1 {
		return ErrSignatureMismatch
	}

	return nil
}

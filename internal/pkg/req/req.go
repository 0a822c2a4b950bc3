/*
Package req provides helpers for HTTP request body handling.

Both webhook endpoints must compute an HMAC over the raw request bytes before any
JSON decoding happens, so binding is split in two: ReadBody captures the (size
capped) raw body, and DecodeJSON decodes the captured bytes afterwards.
*/
package req

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"linewatch/internal/pkg/errs"
)

// MaxWebhookBodySize caps the request body at 1 MB. Webhook batches from the chat
// platform are far below this; anything larger is rejected before verification.
const MaxWebhookBodySize int64 = 1 << 20

// ReadBody reads and returns the full request body, enforcing MaxWebhookBodySize
// via http.MaxBytesReader.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, *errs.CustomError) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxWebhookBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return nil, errs.NewError(errs.ErrInvalidJSONFormat)
	}

	return body, nil
}

// DecodeJSON decodes previously captured body bytes into dst.
// Trailing content after the JSON document is rejected.
func DecodeJSON(body []byte, dst any) *errs.CustomError {
	decoder := json.NewDecoder(bytes.NewReader(body))

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	return nil
}

/*
Package resp provides helpers for sending HTTP JSON responses.

Admin and internal API errors use a standardized code/message envelope. The webhook
endpoints instead answer with the exact wire shapes the sending platforms expect
(e.g. {"ok":true,"received":n}), so RespondRaw sends an arbitrary payload verbatim.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"linewatch/internal/pkg/errs"
	"linewatch/internal/pkg/logx"
)

// ErrorResponse is the JSON error envelope returned to clients.
type ErrorResponse struct {
	// Code is the business status code (see the errs package).
	Code int `json:"code"`

	// Message is the client-safe error description.
	Message string `json:"message"`
}

// RespondRaw marshals payload as-is and sends it with the given HTTP status.
func RespondRaw(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	body, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(body)
}

// RespondError sends the code/message envelope for the given application error.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondRaw(w, r, customErr.Status, ErrorResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}

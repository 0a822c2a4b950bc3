package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Messages are deliberately generic: callers never learn whether a signature was
// absent, malformed, or mismatched beyond what the status code already says.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Invalid request body.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 3xxx: Authentication and Signature Errors
	ErrMissingSignature: {Code: ErrMissingSignature, Message: "Missing signature header.", Status: http.StatusBadRequest},
	ErrInvalidSignature: {Code: ErrInvalidSignature, Message: "Invalid signature.", Status: http.StatusBadRequest},
	ErrAdminUnauthorized: {Code: ErrAdminUnauthorized, Message: "Unauthorized.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageUnavailable: {Code: ErrStorageUnavailable, Message: "Storage is temporarily unavailable.", Status: http.StatusInternalServerError},
	ErrAdminNotConfigured: {Code: ErrAdminNotConfigured, Message: "ADMIN_USERNAME / ADMIN_PASSWORD are not set.", Status: http.StatusInternalServerError},
	ErrStripeNotConfigured: {Code: ErrStripeNotConfigured, Message: "STRIPE_WEBHOOK_SECRET is not set.", Status: http.StatusInternalServerError},
}

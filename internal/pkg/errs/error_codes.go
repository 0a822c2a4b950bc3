/*
Package errs provides custom error types and application-level error code constants.

These codes identify specific request or system failures both internally and in
responses to clients that speak the JSON error envelope (the webhook endpoints use
the wire shapes the platforms expect instead; see the handler package).
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidJSONFormat indicates that the request body is not valid JSON.
	ErrInvalidJSONFormat = 1001

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1002

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1003
)

// 3xxx: Authentication and Signature Errors
const (
	// ErrMissingSignature indicates a webhook request without its signature header
	// while a verification secret is configured.
	ErrMissingSignature = 3101

	// ErrInvalidSignature indicates that the webhook signature did not match the request body.
	ErrInvalidSignature = 3102

	// ErrAdminUnauthorized indicates missing or incorrect admin credentials.
	ErrAdminUnauthorized = 3201
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000

	// ErrStorageUnavailable indicates that the user store failed mid-request.
	ErrStorageUnavailable = 5001

	// ErrAdminNotConfigured indicates that ADMIN_USERNAME / ADMIN_PASSWORD are not set.
	// Admin routes fail closed rather than degrade to open access.
	ErrAdminNotConfigured = 5101

	// ErrStripeNotConfigured indicates that STRIPE_WEBHOOK_SECRET is not set.
	ErrStripeNotConfigured = 5102
)

/*
Package basicauth provides the HTTP Basic authentication gate for the admin routes.

The gate fails closed: if the server-side credentials are not configured, every
request is rejected with a 500 rather than letting the routes degrade to open
access. Credential comparison is constant-time on both the username and password.
*/
package basicauth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"linewatch/internal/pkg/errs"
	"linewatch/internal/pkg/resp"
)

// equal compares two strings in constant time. Hashing first means the comparison
// does not leak the length of the configured credential either.
func equal(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}

// Middleware returns HTTP middleware enforcing Basic auth against the configured
// username and password. Unset credentials reject with 500 (misconfiguration);
// missing or wrong credentials reject with 401 and a Basic challenge.
func Middleware(username, password string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if username == "" || password == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrAdminNotConfigured))
				return
			}

			gotUser, gotPass, ok := r.BasicAuth()

			userOK := equal(gotUser, username)
			passOK := equal(gotPass, password)

			if !ok || !userOK || !passOK {
				w.Header().Set("WWW-Authenticate", `Basic realm="linewatch admin"`)
				resp.RespondError(w, r, errs.NewError(errs.ErrAdminUnauthorized))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package basicauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linewatch/internal/pkg/basicauth"
)

func protected(username, password string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("secret page"))
	})
	return basicauth.Middleware(username, password)(next)
}

func TestMiddleware(t *testing.T) {
	t.Run("unset credentials fail closed with 500", func(t *testing.T) {
		for _, creds := range [][2]string{{"", ""}, {"admin", ""}, {"", "pw"}} {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			req.SetBasicAuth("admin", "pw")

			protected(creds[0], creds[1]).ServeHTTP(rec, req)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
		}
	})

	t.Run("missing credentials get a challenge", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)

		protected("admin", "pw").ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.SetBasicAuth("admin", "wrong")

		protected("admin", "pw").ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("wrong username is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.SetBasicAuth("root", "pw")

		protected("admin", "pw").ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct credentials pass through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		req.SetBasicAuth("admin", "pw")

		protected("admin", "pw").ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "secret page", rec.Body.String())
	})
}

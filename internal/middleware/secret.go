package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/shoplight/publisher/internal/response"
)

// SecretHeader is the request header carrying the shared upload secret.
const SecretHeader = "X-Upload-Secret"

// RequireSecret returns middleware that enforces the shared upload secret.
// An empty secret disables the check entirely — the endpoint is then open,
// which is the intended setup for local development.
func RequireSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" {
				got := r.Header.Get(SecretHeader)
				if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
					response.Unauthorized(w, "unauthorized")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

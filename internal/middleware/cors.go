package middleware

import "net/http"

const (
	allowedMethods = "POST, OPTIONS"
	allowedHeaders = "Content-Type, X-Upload-Secret"
)

// CORS allows any origin on every response and answers preflight requests
// directly with 204 and no body, so OPTIONS never reaches the router.
// The frontend is served from a different origin than this API, so a
// permissive allow-origin header must be present on every response,
// including error responses produced by the router itself.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

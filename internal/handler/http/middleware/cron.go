package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/contracthq/contracts-backend-go/internal/handler/http/response"
)

// CronAuth guards the external scheduler endpoint with a shared bearer
// token, outside the session auth stack. An empty configured token
// disables the endpoint.
func CronAuth(secretToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secretToken == "" {
				response.NotFound(w, "Cron endpoint is not configured")
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secretToken)) != 1 {
				response.Unauthorized(w, "Invalid cron token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

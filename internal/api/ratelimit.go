package api

import (
	"net/http"

	"golang.org/x/time/rate"
)

// limitRequests applies a token-bucket rate limit to the wrapped routes.
// A nil limiter disables limiting.
func limitRequests(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter != nil && !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, errCodeRateLimited, ErrTooManyRequests.Error())

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

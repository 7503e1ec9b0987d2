package api

import (
	"net/http"

	"github.com/die-Manufaktur/seo-copilot-api/internal/origin"
)

// requireAllowedOrigin enforces the origin allowlist on analysis routes.
// Requests without an Origin header are rejected along with disallowed
// origins; the allow headers echo the specific origin, never a wildcard.
func requireAllowedOrigin(matcher *origin.Matcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestOrigin := r.Header.Get("Origin")

			if !matcher.IsAllowed(requestOrigin) {
				writeError(w, http.StatusForbidden, errCodeForbiddenOrigin, ErrOriginNotAllowed.Error())
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", requestOrigin)
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
				w.Header().Set("Access-Control-Max-Age", "300")
				w.WriteHeader(http.StatusNoContent)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

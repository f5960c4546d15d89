package middleware

import (
	"net/http"

	adminapp "github.com/waza/waitlist-api/internal/application/admin"
)

// AdminAuth returns middleware that authorizes requests via the admin token
// passed as a `token` query parameter, the way the admin dashboard calls in.
func AdminAuth(svc adminapp.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := svc.Verify(r.Context(), r.URL.Query().Get("token")); err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid admin token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
)

// RequireCompanyScope restricts a route to roles that may read requests
// across the whole organisation.
func RequireCompanyScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r)
		if !ok || !actor.Role.CompanyWideScope() {
			response.Forbidden(w, "Company-wide access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"github.com/allinone-hr/wfh-backend-go/internal/domain/auth"
	"github.com/allinone-hr/wfh-backend-go/internal/domain/employee"
	"github.com/allinone-hr/wfh-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFromContext rebuilds the engine's actor from the verified token
// claims. Numeric claims come back as float64 from the JWT library.
func ActorFromContext(r *http.Request) (employee.Actor, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return employee.Actor{}, false
	}

	staffID, ok := claims["staff_id"].(float64)
	if !ok {
		return employee.Actor{}, false
	}
	roleCode, ok := claims["role"].(float64)
	if !ok {
		return employee.Actor{}, false
	}
	position, _ := claims["position"].(string)

	return employee.Actor{
		StaffID: int64(staffID),
		Role:    employee.RoleOf(int(roleCode), position),
	}, true
}

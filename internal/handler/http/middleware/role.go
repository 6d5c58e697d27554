package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/worklens/worklens-backend-go/internal/domain/analytics"
	"github.com/worklens/worklens-backend-go/internal/domain/user"
	"github.com/worklens/worklens-backend-go/internal/handler/http/response"
)

// ActorScope reads the viewing actor's identity, role and department from
// the verified JWT claims.
func ActorScope(r *http.Request) (analytics.Scope, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return analytics.Scope{}, user.ErrInvalidToken
	}

	actorID, ok := claims["user_id"].(string)
	if !ok || actorID == "" {
		return analytics.Scope{}, user.ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return analytics.Scope{}, user.ErrInvalidToken
	}
	role := user.Role(roleStr)
	if !role.Valid() {
		return analytics.Scope{}, user.ErrInvalidToken
	}

	departmentID, _ := claims["department_id"].(string)

	return analytics.Scope{
		ActorID:      actorID,
		Role:         role,
		DepartmentID: departmentID,
	}, nil
}

// RequirePermission checks if the actor's role has a specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrAnalyticsAccessRequired)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrAnalyticsAccessRequired)
				return
			}

			role := user.Role(roleStr)
			if !user.HasPermission(role, permission) {
				response.HandleError(w, user.ErrAnalyticsAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

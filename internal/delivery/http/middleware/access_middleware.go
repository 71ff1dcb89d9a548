package middleware

import (
	"net/http"

	"medibook-api/internal/domain/access"
	"medibook-api/internal/domain/entity"
	"medibook-api/pkg/response"
)

// RequireRole gates a route on the access guard decision. The policy itself
// lives in the access package; this middleware only maps the decision onto
// an HTTP response.
func RequireRole(requiredRoles ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r.Context())

			decision := access.Admit(session, requiredRoles...)
			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			if session == nil {
				response.UnauthorizedRedirect(w, "Authentication required", decision.RedirectTo)
				return
			}
			response.ForbiddenRedirect(w, "You don't have permission to access this resource", decision.RedirectTo)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}

// RequireDoctorOrAdmin is a convenience middleware for doctor or admin endpoints
func RequireDoctorOrAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor, entity.RoleIDAdmin)(next)
}

// RequireAnyRole admits any authenticated caller with a known role
func RequireAnyRole(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor, entity.RoleIDPatient)(next)
}

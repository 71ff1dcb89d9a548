// Package access holds the role-gating decision for every protected route.
// The decision is a pure function of the session and the route's required
// roles; the HTTP middleware only translates the decision to a response.
package access

import "medibook-api/internal/domain/entity"

// Frontend routes the guard redirects to. The SPA owns the actual
// navigation; the API reports the target in the rejection body.
const (
	RouteLogin       = "/login"
	RoutePatientHome = "/patient/dashboard"
	RouteDoctorHome  = "/doctor/dashboard"
	RouteAdminHome   = "/admin/dashboard"
)

// Decision is the outcome of an admission check
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Admit decides whether the session may reach a view requiring one of the
// given roles. Rules, in order: no session redirects to login; a session
// whose role is outside the required set redirects to that role's own home
// (an unknown role falls back to login); otherwise the caller is admitted.
func Admit(session *entity.Session, requiredRoles ...int) Decision {
	if session == nil {
		return Decision{RedirectTo: RouteLogin}
	}

	for _, role := range requiredRoles {
		if session.RoleID == role {
			return Decision{Allowed: true}
		}
	}

	return Decision{RedirectTo: HomeRoute(session.RoleID)}
}

// HomeRoute maps a role to its dashboard route; unknown roles go to login
func HomeRoute(roleID int) string {
	switch roleID {
	case entity.RoleIDPatient:
		return RoutePatientHome
	case entity.RoleIDDoctor:
		return RouteDoctorHome
	case entity.RoleIDAdmin:
		return RouteAdminHome
	default:
		return RouteLogin
	}
}

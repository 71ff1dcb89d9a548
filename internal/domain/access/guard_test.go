package access

import (
	"testing"

	"medibook-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func sessionWithRole(roleID int) *entity.Session {
	return &entity.Session{RoleID: roleID}
}

func TestAdmitNoSessionRedirectsToLogin(t *testing.T) {
	for _, required := range [][]int{
		{entity.RoleIDPatient},
		{entity.RoleIDDoctor},
		{entity.RoleIDAdmin},
		{entity.RoleIDDoctor, entity.RoleIDAdmin},
	} {
		decision := Admit(nil, required...)
		assert.False(t, decision.Allowed)
		assert.Equal(t, RouteLogin, decision.RedirectTo)
	}
}

func TestAdmitMatchingRole(t *testing.T) {
	tests := []struct {
		name     string
		roleID   int
		required []int
	}{
		{"patient on patient view", entity.RoleIDPatient, []int{entity.RoleIDPatient}},
		{"doctor on doctor view", entity.RoleIDDoctor, []int{entity.RoleIDDoctor}},
		{"admin on admin view", entity.RoleIDAdmin, []int{entity.RoleIDAdmin}},
		{"doctor on shared view", entity.RoleIDDoctor, []int{entity.RoleIDDoctor, entity.RoleIDAdmin}},
		{"admin on shared view", entity.RoleIDAdmin, []int{entity.RoleIDDoctor, entity.RoleIDAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Admit(sessionWithRole(tt.roleID), tt.required...)
			assert.True(t, decision.Allowed)
			assert.Empty(t, decision.RedirectTo)
		})
	}
}

func TestAdmitWrongRoleRedirectsHome(t *testing.T) {
	tests := []struct {
		name     string
		roleID   int
		required []int
		redirect string
	}{
		{"patient on doctor view", entity.RoleIDPatient, []int{entity.RoleIDDoctor}, RoutePatientHome},
		{"patient on admin view", entity.RoleIDPatient, []int{entity.RoleIDAdmin}, RoutePatientHome},
		{"doctor on patient view", entity.RoleIDDoctor, []int{entity.RoleIDPatient}, RouteDoctorHome},
		{"doctor on admin view", entity.RoleIDDoctor, []int{entity.RoleIDAdmin}, RouteDoctorHome},
		{"admin on patient view", entity.RoleIDAdmin, []int{entity.RoleIDPatient}, RouteAdminHome},
		{"admin on doctor view", entity.RoleIDAdmin, []int{entity.RoleIDDoctor}, RouteAdminHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Admit(sessionWithRole(tt.roleID), tt.required...)
			assert.False(t, decision.Allowed)
			assert.Equal(t, tt.redirect, decision.RedirectTo)
		})
	}
}

func TestAdmitUnknownRoleFallsBackToLogin(t *testing.T) {
	decision := Admit(sessionWithRole(99), entity.RoleIDPatient)
	assert.False(t, decision.Allowed)
	assert.Equal(t, RouteLogin, decision.RedirectTo)
}

func TestHomeRoute(t *testing.T) {
	assert.Equal(t, RoutePatientHome, HomeRoute(entity.RoleIDPatient))
	assert.Equal(t, RouteDoctorHome, HomeRoute(entity.RoleIDDoctor))
	assert.Equal(t, RouteAdminHome, HomeRoute(entity.RoleIDAdmin))
	assert.Equal(t, RouteLogin, HomeRoute(0))
}

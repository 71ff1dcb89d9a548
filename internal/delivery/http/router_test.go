package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

// routes checks registration only, so the handlers are never invoked
func testRouter() *mux.Router {
	r := NewRouter(nil, nil, nil, nil, nil, nil, nil, nil)
	return r.Setup()
}

func routeRegistered(router *mux.Router, method, path string) bool {
	req := httptest.NewRequest(method, path, nil)
	match := &mux.RouteMatch{}
	return router.Match(req, match) && match.MatchErr == nil
}

func TestAppointmentTransitionsUsePut(t *testing.T) {
	router := testRouter()

	for _, path := range []string{
		"/api/v1/appointments/123/confirm",
		"/api/v1/appointments/123/cancel",
		"/api/v1/appointments/123/complete",
		"/api/v1/appointments/123/prescription",
	} {
		assert.True(t, routeRegistered(router, http.MethodPut, path), path)
		assert.False(t, routeRegistered(router, http.MethodPost, path), path)
	}
}

func TestBookingRoutes(t *testing.T) {
	router := testRouter()

	assert.True(t, routeRegistered(router, http.MethodPost, "/api/v1/appointments"))
	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/appointments"))
	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/appointments/123"))
}

func TestPublicDirectoryRoutes(t *testing.T) {
	router := testRouter()

	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/doctors"))
	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/doctors/123"))
	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/health"))
}

func TestAdminRoutes(t *testing.T) {
	router := testRouter()

	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/admin/doctors/pending"))
	assert.True(t, routeRegistered(router, http.MethodPost, "/api/v1/admin/doctors/123/verify"))
	assert.True(t, routeRegistered(router, http.MethodGet, "/api/v1/admin/audit-logs"))
}

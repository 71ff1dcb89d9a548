package http

import (
	"net/http"

	"medibook-api/internal/delivery/http/handler"
	"medibook-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	patientHandler     *handler.PatientHandler
	dashboardHandler   *handler.DashboardHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		patientHandler:     patientHandler,
		dashboardHandler:   dashboardHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Doctor directory (public, verified doctors only)
	api.HandleFunc("/doctors", r.doctorHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)

	// Appointment routes (any authenticated role; per-row ownership is
	// enforced inside the usecase)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireAnyRole)
	appointments.HandleFunc("", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPut)

	// Patient-only appointment actions
	patientAppointments := api.PathPrefix("/appointments").Subrouter()
	patientAppointments.Use(r.authMiddleware.Authenticate)
	patientAppointments.Use(middleware.RequirePatient)
	patientAppointments.HandleFunc("", r.appointmentHandler.Book).Methods(http.MethodPost)

	// Confirm is open to the owning doctor and to admins; the usecase checks
	// ownership for the doctor case
	confirmAppointments := api.PathPrefix("/appointments").Subrouter()
	confirmAppointments.Use(r.authMiddleware.Authenticate)
	confirmAppointments.Use(middleware.RequireDoctorOrAdmin)
	confirmAppointments.HandleFunc("/{id}/confirm", r.appointmentHandler.Confirm).Methods(http.MethodPut)

	// Doctor-only appointment actions
	doctorAppointments := api.PathPrefix("/appointments").Subrouter()
	doctorAppointments.Use(r.authMiddleware.Authenticate)
	doctorAppointments.Use(middleware.RequireDoctor)
	doctorAppointments.HandleFunc("/{id}/complete", r.appointmentHandler.Complete).Methods(http.MethodPut)
	doctorAppointments.HandleFunc("/{id}/prescription", r.appointmentHandler.UpdatePrescription).Methods(http.MethodPut)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", r.patientHandler.GetOwnProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", r.patientHandler.UpdateOwnProfile).Methods(http.MethodPut)
	patient.HandleFunc("/dashboard", r.dashboardHandler.PatientSummary).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", r.doctorHandler.GetOwnProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", r.doctorHandler.UpdateOwnProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/dashboard", r.dashboardHandler.DoctorSummary).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.doctorHandler.SearchAll).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/pending", r.doctorHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/verify", r.doctorHandler.Verify).Methods(http.MethodPost)
	admin.HandleFunc("/appointments", r.appointmentHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListRecent).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard", r.dashboardHandler.AdminStats).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

package http

import (
	"net/http"

	"go-clinic-queue/internal/delivery/http/handler"
	"go-clinic-queue/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	staffHandler        *handler.StaffHandler
	patientHandler      *handler.PatientHandler
	timingHandler       *handler.TimingHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	queueHandler        *handler.QueueHandler
	statusHandler       *handler.StatusHandler
	notificationHandler *handler.NotificationHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	staffHandler *handler.StaffHandler,
	patientHandler *handler.PatientHandler,
	timingHandler *handler.TimingHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	queueHandler *handler.QueueHandler,
	statusHandler *handler.StatusHandler,
	notificationHandler *handler.NotificationHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		staffHandler:        staffHandler,
		patientHandler:      patientHandler,
		timingHandler:       timingHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		queueHandler:        queueHandler,
		statusHandler:       statusHandler,
		notificationHandler: notificationHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
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

	// Public discovery routes
	api.HandleFunc("/doctors", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availability", r.availabilityHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/timings", r.timingHandler.GetTimings).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/status", r.statusHandler.GetStatus).Methods(http.MethodGet)
	api.HandleFunc("/search/availability", r.availabilityHandler.SearchAvailability).Methods(http.MethodGet)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.Book))).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPut)

	// Queue routes (protected)
	queue := api.PathPrefix("").Subrouter()
	queue.Use(r.authMiddleware.Authenticate)
	queue.HandleFunc("/doctors/{id}/queue", r.queueHandler.GetQueue).Methods(http.MethodGet)
	queue.Handle("/doctors/{id}/queue/next",
		middleware.RequireDoctorOrStaff(http.HandlerFunc(r.queueHandler.AdvanceQueue))).Methods(http.MethodPost)
	queue.Handle("/queue/notify-next",
		middleware.RequireAdminOrStaff(http.HandlerFunc(r.queueHandler.NotifyNext))).Methods(http.MethodPost)
	queue.Handle("/queue/stats",
		middleware.RequireDoctorOrStaff(http.HandlerFunc(r.queueHandler.GetQueueStats))).Methods(http.MethodGet)
	queue.HandleFunc("/patients/{id}/queue-status", r.queueHandler.GetPatientQueueStatus).Methods(http.MethodGet)

	// Doctor self-service routes (protected)
	doctorSelf := api.PathPrefix("").Subrouter()
	doctorSelf.Use(r.authMiddleware.Authenticate)
	doctorSelf.Handle("/doctors/me",
		middleware.RequireDoctor(http.HandlerFunc(r.doctorHandler.UpdateSelfProfile))).Methods(http.MethodPut)
	doctorSelf.Handle("/doctors/{id}/timings",
		middleware.RequireAdminOrDoctor(http.HandlerFunc(r.timingHandler.CreateTiming))).Methods(http.MethodPost)
	doctorSelf.Handle("/doctors/{id}/timings/{timingId}",
		middleware.RequireAdminOrDoctor(http.HandlerFunc(r.timingHandler.UpdateTiming))).Methods(http.MethodPut)
	doctorSelf.Handle("/doctors/{id}/timings/{timingId}",
		middleware.RequireAdminOrDoctor(http.HandlerFunc(r.timingHandler.DeactivateTiming))).Methods(http.MethodDelete)
	doctorSelf.Handle("/doctors/{id}/status",
		middleware.RequireDoctorOrStaff(http.HandlerFunc(r.statusHandler.ReportStatus))).Methods(http.MethodPost)

	// Patient self-service routes (protected)
	patientSelf := api.PathPrefix("/patients").Subrouter()
	patientSelf.Use(r.authMiddleware.Authenticate)
	patientSelf.Handle("/me",
		middleware.RequirePatient(http.HandlerFunc(r.patientHandler.GetSelfProfile))).Methods(http.MethodGet)
	patientSelf.Handle("/me",
		middleware.RequirePatient(http.HandlerFunc(r.patientHandler.UpdateSelfProfile))).Methods(http.MethodPut)

	// Notification routes (protected)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPut)
	notifications.HandleFunc("/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Staff management (admin)
	admin.HandleFunc("/staff", r.staffHandler.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/staff", r.staffHandler.GetAllStaff).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", r.staffHandler.GetStaff).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", r.staffHandler.UpdateStaff).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{id}", r.staffHandler.DeleteStaff).Methods(http.MethodDelete)

	// Audit logs (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/novadent/dental-console/internal/http/handlers"
	httpmiddleware "github.com/novadent/dental-console/internal/http/middleware"
	"github.com/novadent/dental-console/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger       *logging.Logger
	Appointments *handlers.AppointmentsHandler
	Patients     *handlers.PatientsHandler
	Doctors      *handlers.DoctorsHandler
	Stats        *handlers.StatsHandler
	Expenses     *handlers.ExpensesHandler
	Auth         *handlers.AuthHandler
	Events       *handlers.EventsHandler

	SessionJWTSecret   string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.Events != nil {
			public.Get("/events", cfg.Events.HandleWebSocket)
		}
	})

	// Console API, session-protected when a secret is configured
	r.Route("/api", func(api chi.Router) {
		if cfg.SessionJWTSecret != "" {
			api.Use(httpmiddleware.SessionJWT(cfg.SessionJWTSecret))
		}

		if cfg.Auth != nil {
			api.Get("/auth/me", cfg.Auth.Me)
		}

		if cfg.Appointments != nil {
			api.Route("/appointments", func(r chi.Router) {
				r.Get("/", cfg.Appointments.ListAppointments)
				r.Post("/", cfg.Appointments.CreateAppointment)
				r.Get("/available-slots", cfg.Appointments.AvailableSlots)
				r.Patch("/{appointmentID}", cfg.Appointments.UpdateAppointment)
				r.Get("/{appointmentID}/treatment", cfg.Appointments.GetTreatment)
			})
		}

		if cfg.Patients != nil {
			api.Route("/patients", func(r chi.Router) {
				r.Get("/", cfg.Patients.ListPatients)
				r.Post("/", cfg.Patients.CreatePatient)
				r.Patch("/{patientID}", cfg.Patients.UpdatePatient)
			})
		}

		if cfg.Doctors != nil {
			api.Route("/doctors", func(r chi.Router) {
				r.Get("/", cfg.Doctors.ListDoctors)
				r.Post("/", cfg.Doctors.CreateDoctor)
			})
		}

		if cfg.Stats != nil {
			api.Get("/stats", cfg.Stats.GetStats)
		}

		if cfg.Expenses != nil {
			api.Route("/expenses", func(r chi.Router) {
				r.Get("/", cfg.Expenses.ListExpenses)
				r.Post("/", cfg.Expenses.CreateExpense)
			})
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/expenses"
	"github.com/novadent/dental-console/internal/http/handlers"
	httpmiddleware "github.com/novadent/dental-console/internal/http/middleware"
	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/internal/slots"
	"github.com/novadent/dental-console/pkg/logging"
)

type stubUpstream struct{}

func (stubUpstream) ListAppointments(context.Context) ([]dental.Appointment, error) {
	return []dental.Appointment{{ID: "a1", Status: dental.StatusPending}}, nil
}

func (stubUpstream) CreateAppointment(_ context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error) {
	return &dental.Appointment{ID: "a9", Date: req.Date, Time: req.Time}, nil
}

func (stubUpstream) UpdateAppointment(_ context.Context, id string, _ dental.UpdateAppointmentRequest) (*dental.Appointment, error) {
	return &dental.Appointment{ID: id}, nil
}

func (stubUpstream) ListPatients(context.Context) ([]dental.Patient, error) {
	return []dental.Patient{{ID: "p1", Name: "Maya Flores"}}, nil
}

func (stubUpstream) CreatePatient(_ context.Context, req dental.CreatePatientRequest) (*dental.Patient, error) {
	return &dental.Patient{ID: "p9", Name: req.Name}, nil
}

func (stubUpstream) UpdatePatient(_ context.Context, id string, _ dental.UpdatePatientRequest) (*dental.Patient, error) {
	return &dental.Patient{ID: id}, nil
}

func (stubUpstream) ListDoctors(context.Context) ([]dental.Doctor, error) {
	return []dental.Doctor{{ID: "d1", Name: "Dr. Chen"}}, nil
}

func (stubUpstream) CreateDoctor(_ context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error) {
	return &dental.Doctor{ID: "d9", Name: req.Name}, nil
}

func (stubUpstream) TreatmentByAppointment(_ context.Context, appointmentID string) (*dental.Treatment, error) {
	return &dental.Treatment{ID: "t1", AppointmentID: appointmentID}, nil
}

func (stubUpstream) AvailableSlots(context.Context, string, string) ([]string, error) {
	return []string{"09:00"}, nil
}

func newTestRouter(t *testing.T, secret string) http.Handler {
	t.Helper()

	logger := logging.Default()
	upstream := stubUpstream{}
	m, err := mirror.New(mirror.Config{Upstream: upstream, Logger: logger})
	if err != nil {
		t.Fatalf("mirror: %v", err)
	}
	picker := slots.NewPicker(upstream, logger)
	repo := expenses.NewInMemoryRepository()

	return New(&Config{
		Logger:           logger,
		Appointments:     handlers.NewAppointmentsHandler(m, picker, time.UTC, logger),
		Patients:         handlers.NewPatientsHandler(m, logger),
		Doctors:          handlers.NewDoctorsHandler(m, logger),
		Stats:            handlers.NewStatsHandler(m, repo, logger),
		Expenses:         handlers.NewExpensesHandler(repo, logger),
		Auth:             handlers.NewAuthHandler(),
		Events:           handlers.NewEventsHandler(m, logger),
		SessionJWTSecret: secret,
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterAPIEndpointsRegistered(t *testing.T) {
	router := newTestRouter(t, "")

	for _, route := range []string{
		"/api/appointments",
		"/api/appointments/available-slots?date=2026-03-02&doctorId=d1",
		"/api/patients",
		"/api/doctors",
		"/api/stats",
		"/api/expenses",
	} {
		req := httptest.NewRequest(http.MethodGet, route, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code == http.StatusNotFound || rr.Code == http.StatusMethodNotAllowed {
			t.Errorf("%s: route not registered (got %d)", route, rr.Code)
		}
	}
}

func TestRouterRequiresSessionWhenSecretSet(t *testing.T) {
	router := newTestRouter(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestRouterAcceptsSessionToken(t *testing.T) {
	router := newTestRouter(t, "secret")

	claims := httpmiddleware.SessionClaims{
		Name: "Dana Rivers",
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var me map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&me); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if me["id"] != "u1" || me["role"] != "admin" {
		t.Errorf("unexpected identity: %v", me)
	}
}

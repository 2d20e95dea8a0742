package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/http/middleware"
	"github.com/novadent/dental-console/internal/mirror"
)

func sessionContext(ctx context.Context, id, role string) context.Context {
	return middleware.WithSessionUser(ctx, middleware.SessionUser{ID: id, Name: "Dana Rivers", Role: role})
}

type fakeUpstream struct {
	listAppointments func(ctx context.Context) ([]dental.Appointment, error)
	createAppt       func(ctx context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error)
	updateAppt       func(ctx context.Context, id string, req dental.UpdateAppointmentRequest) (*dental.Appointment, error)
	listPatients     func(ctx context.Context) ([]dental.Patient, error)
	createPatient    func(ctx context.Context, req dental.CreatePatientRequest) (*dental.Patient, error)
	updatePatient    func(ctx context.Context, id string, req dental.UpdatePatientRequest) (*dental.Patient, error)
	listDoctors      func(ctx context.Context) ([]dental.Doctor, error)
	createDoctor     func(ctx context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error)
	treatment        func(ctx context.Context, appointmentID string) (*dental.Treatment, error)
	slots            func(ctx context.Context, date, doctorID string) ([]string, error)
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		listAppointments: func(context.Context) ([]dental.Appointment, error) { return nil, nil },
		listPatients:     func(context.Context) ([]dental.Patient, error) { return nil, nil },
		listDoctors:      func(context.Context) ([]dental.Doctor, error) { return nil, nil },
	}
}

func (f *fakeUpstream) ListAppointments(ctx context.Context) ([]dental.Appointment, error) {
	return f.listAppointments(ctx)
}

func (f *fakeUpstream) CreateAppointment(ctx context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error) {
	return f.createAppt(ctx, req)
}

func (f *fakeUpstream) UpdateAppointment(ctx context.Context, id string, req dental.UpdateAppointmentRequest) (*dental.Appointment, error) {
	return f.updateAppt(ctx, id, req)
}

func (f *fakeUpstream) ListPatients(ctx context.Context) ([]dental.Patient, error) {
	return f.listPatients(ctx)
}

func (f *fakeUpstream) CreatePatient(ctx context.Context, req dental.CreatePatientRequest) (*dental.Patient, error) {
	return f.createPatient(ctx, req)
}

func (f *fakeUpstream) UpdatePatient(ctx context.Context, id string, req dental.UpdatePatientRequest) (*dental.Patient, error) {
	return f.updatePatient(ctx, id, req)
}

func (f *fakeUpstream) ListDoctors(ctx context.Context) ([]dental.Doctor, error) {
	return f.listDoctors(ctx)
}

func (f *fakeUpstream) CreateDoctor(ctx context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error) {
	return f.createDoctor(ctx, req)
}

func (f *fakeUpstream) TreatmentByAppointment(ctx context.Context, appointmentID string) (*dental.Treatment, error) {
	return f.treatment(ctx, appointmentID)
}

func (f *fakeUpstream) AvailableSlots(ctx context.Context, date, doctorID string) ([]string, error) {
	return f.slots(ctx, date, doctorID)
}

func newTestMirror(t *testing.T, upstream mirror.Upstream) *mirror.Mirror {
	t.Helper()
	m, err := mirror.New(mirror.Config{Upstream: upstream})
	require.NoError(t, err)
	return m
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// Package mirror keeps the console's collection stores synchronized with
// the upstream clinic API. Each operation applies exactly one
// pending/fulfilled/rejected transition pair to its store; failures are
// written as user-facing messages, never raw transport errors.
package mirror

import (
	"context"
	"errors"
	"time"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/observability/metrics"
	"github.com/novadent/dental-console/internal/store"
	"github.com/novadent/dental-console/pkg/logging"
)

// Fixed fallback messages, used when the upstream reports no structured
// message of its own.
const (
	msgFetchAppointments = "Failed to fetch appointments"
	msgCreateAppointment = "Failed to create appointment"
	msgUpdateAppointment = "Failed to update appointment"
	msgFetchPatients     = "Failed to fetch patients"
	msgCreatePatient     = "Failed to create patient"
	msgUpdatePatient     = "Failed to update patient"
	msgFetchDoctors      = "Failed to fetch doctors"
	msgCreateDoctor      = "Failed to create doctor"
	msgFetchTreatment    = "Failed to fetch treatment"
)

// Upstream is the slice of the dental client the mirror depends on.
type Upstream interface {
	ListAppointments(ctx context.Context) ([]dental.Appointment, error)
	CreateAppointment(ctx context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req dental.UpdateAppointmentRequest) (*dental.Appointment, error)
	ListPatients(ctx context.Context) ([]dental.Patient, error)
	CreatePatient(ctx context.Context, req dental.CreatePatientRequest) (*dental.Patient, error)
	UpdatePatient(ctx context.Context, id string, req dental.UpdatePatientRequest) (*dental.Patient, error)
	ListDoctors(ctx context.Context) ([]dental.Doctor, error)
	CreateDoctor(ctx context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error)
	TreatmentByAppointment(ctx context.Context, appointmentID string) (*dental.Treatment, error)
}

// Config configures a Mirror.
type Config struct {
	Upstream Upstream
	Logger   *logging.Logger
	Metrics  *metrics.SyncMetrics
	Cache    *SnapshotCache
}

// Mirror owns one store per mirrored collection.
type Mirror struct {
	upstream Upstream
	logger   *logging.Logger
	metrics  *metrics.SyncMetrics
	cache    *SnapshotCache

	Appointments *store.Collection[dental.Appointment]
	Patients     *store.Collection[dental.Patient]
	Doctors      *store.Collection[dental.Doctor]
	Treatments   *store.Collection[dental.Treatment]
}

// New creates a mirror with empty stores. Metrics and Cache are optional.
func New(cfg Config) (*Mirror, error) {
	if cfg.Upstream == nil {
		return nil, errors.New("mirror: upstream client is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Mirror{
		upstream: cfg.Upstream,
		logger:   logger,
		metrics:  cfg.Metrics,
		cache:    cfg.Cache,
		Appointments: store.New("appointments", func(a dental.Appointment) string { return a.ID }),
		Patients:     store.New("patients", func(p dental.Patient) string { return p.ID }),
		Doctors:      store.New("doctors", func(d dental.Doctor) string { return d.ID }),
		Treatments:   store.New("treatments", func(t dental.Treatment) string { return t.ID }),
	}, nil
}

// Prime loads cached snapshots into the stores. Primed data is stale by
// definition; callers follow up with RefreshAll.
func (m *Mirror) Prime(ctx context.Context) {
	primeCollection(ctx, m, m.Appointments)
	primeCollection(ctx, m, m.Patients)
	primeCollection(ctx, m, m.Doctors)
}

func primeCollection[T any](ctx context.Context, m *Mirror, c *store.Collection[T]) {
	var items []T
	err := m.cache.Load(ctx, c.Name(), &items)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			m.logger.Warn("snapshot load failed", "collection", c.Name(), "error", err)
		}
		return
	}
	c.ResolveFetch(items)
	m.logger.Info("primed from snapshot", "collection", c.Name(), "items", len(items))
}

// FetchAppointments refreshes the appointments store.
func (m *Mirror) FetchAppointments(ctx context.Context) error {
	m.Appointments.BeginFetch()
	start := time.Now()
	items, err := m.upstream.ListAppointments(ctx)
	m.metrics.ObserveFetchLatency(m.Appointments.Name(), time.Since(start).Seconds())
	if err != nil {
		m.rejectFetch(m.Appointments.Name(), err, msgFetchAppointments, m.Appointments.RejectFetch)
		return err
	}
	for i := range items {
		items[i].Status = canonicalStatus(items[i].Status)
	}
	m.Appointments.ResolveFetch(items)
	m.saveSnapshot(ctx, m.Appointments.Name(), items)
	m.metrics.ObserveFetch(m.Appointments.Name(), "ok")
	return nil
}

// CreateAppointment books an appointment and appends the server's record.
func (m *Mirror) CreateAppointment(ctx context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error) {
	m.Appointments.BeginCreate()
	created, err := m.upstream.CreateAppointment(ctx, req)
	if err != nil {
		msg := failureMessage(err, msgCreateAppointment)
		m.Appointments.RejectCreate(msg)
		m.metrics.ObserveMutation(m.Appointments.Name(), "create", "error")
		m.logger.Warn("create failed", "collection", m.Appointments.Name(), "error", err)
		return nil, err
	}
	created.Status = canonicalStatus(created.Status)
	m.Appointments.ResolveCreate(*created)
	m.metrics.ObserveMutation(m.Appointments.Name(), "create", "ok")
	return created, nil
}

// UpdateAppointment patches an appointment and replaces it in the store.
func (m *Mirror) UpdateAppointment(ctx context.Context, id string, req dental.UpdateAppointmentRequest) (*dental.Appointment, error) {
	m.Appointments.BeginUpdate()
	updated, err := m.upstream.UpdateAppointment(ctx, id, req)
	if err != nil {
		msg := failureMessage(err, msgUpdateAppointment)
		m.Appointments.RejectUpdate(msg)
		m.metrics.ObserveMutation(m.Appointments.Name(), "update", "error")
		m.logger.Warn("update failed", "collection", m.Appointments.Name(), "id", id, "error", err)
		return nil, err
	}
	updated.Status = canonicalStatus(updated.Status)
	m.Appointments.ResolveUpdate(*updated)
	m.metrics.ObserveMutation(m.Appointments.Name(), "update", "ok")
	return updated, nil
}

// FetchPatients refreshes the patients store.
func (m *Mirror) FetchPatients(ctx context.Context) error {
	m.Patients.BeginFetch()
	start := time.Now()
	items, err := m.upstream.ListPatients(ctx)
	m.metrics.ObserveFetchLatency(m.Patients.Name(), time.Since(start).Seconds())
	if err != nil {
		m.rejectFetch(m.Patients.Name(), err, msgFetchPatients, m.Patients.RejectFetch)
		return err
	}
	m.Patients.ResolveFetch(items)
	m.saveSnapshot(ctx, m.Patients.Name(), items)
	m.metrics.ObserveFetch(m.Patients.Name(), "ok")
	return nil
}

// CreatePatient registers a patient and appends the server's record.
func (m *Mirror) CreatePatient(ctx context.Context, req dental.CreatePatientRequest) (*dental.Patient, error) {
	m.Patients.BeginCreate()
	created, err := m.upstream.CreatePatient(ctx, req)
	if err != nil {
		msg := failureMessage(err, msgCreatePatient)
		m.Patients.RejectCreate(msg)
		m.metrics.ObserveMutation(m.Patients.Name(), "create", "error")
		m.logger.Warn("create failed", "collection", m.Patients.Name(), "error", err)
		return nil, err
	}
	m.Patients.ResolveCreate(*created)
	m.metrics.ObserveMutation(m.Patients.Name(), "create", "ok")
	return created, nil
}

// UpdatePatient patches a patient and replaces it in the store.
func (m *Mirror) UpdatePatient(ctx context.Context, id string, req dental.UpdatePatientRequest) (*dental.Patient, error) {
	m.Patients.BeginUpdate()
	updated, err := m.upstream.UpdatePatient(ctx, id, req)
	if err != nil {
		msg := failureMessage(err, msgUpdatePatient)
		m.Patients.RejectUpdate(msg)
		m.metrics.ObserveMutation(m.Patients.Name(), "update", "error")
		m.logger.Warn("update failed", "collection", m.Patients.Name(), "id", id, "error", err)
		return nil, err
	}
	m.Patients.ResolveUpdate(*updated)
	m.metrics.ObserveMutation(m.Patients.Name(), "update", "ok")
	return updated, nil
}

// FetchDoctors refreshes the doctors store.
func (m *Mirror) FetchDoctors(ctx context.Context) error {
	m.Doctors.BeginFetch()
	start := time.Now()
	items, err := m.upstream.ListDoctors(ctx)
	m.metrics.ObserveFetchLatency(m.Doctors.Name(), time.Since(start).Seconds())
	if err != nil {
		m.rejectFetch(m.Doctors.Name(), err, msgFetchDoctors, m.Doctors.RejectFetch)
		return err
	}
	m.Doctors.ResolveFetch(items)
	m.saveSnapshot(ctx, m.Doctors.Name(), items)
	m.metrics.ObserveFetch(m.Doctors.Name(), "ok")
	return nil
}

// CreateDoctor registers a doctor account and appends the server's record.
func (m *Mirror) CreateDoctor(ctx context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error) {
	m.Doctors.BeginCreate()
	created, err := m.upstream.CreateDoctor(ctx, req)
	if err != nil {
		msg := failureMessage(err, msgCreateDoctor)
		m.Doctors.RejectCreate(msg)
		m.metrics.ObserveMutation(m.Doctors.Name(), "create", "error")
		m.logger.Warn("create failed", "collection", m.Doctors.Name(), "error", err)
		return nil, err
	}
	m.Doctors.ResolveCreate(*created)
	m.metrics.ObserveMutation(m.Doctors.Name(), "create", "ok")
	return created, nil
}

// FetchTreatment loads the treatment recorded for an appointment. The
// treatments store holds the currently viewed treatment, matching how the
// summary view consumes it.
func (m *Mirror) FetchTreatment(ctx context.Context, appointmentID string) error {
	m.Treatments.BeginFetch()
	start := time.Now()
	treatment, err := m.upstream.TreatmentByAppointment(ctx, appointmentID)
	m.metrics.ObserveFetchLatency(m.Treatments.Name(), time.Since(start).Seconds())
	if err != nil {
		m.rejectFetch(m.Treatments.Name(), err, msgFetchTreatment, m.Treatments.RejectFetch)
		return err
	}
	m.Treatments.ResolveFetch([]dental.Treatment{*treatment})
	m.metrics.ObserveFetch(m.Treatments.Name(), "ok")
	return nil
}

// RefreshAll re-fetches every mirrored list collection, skipping any with a
// fetch already in flight. The first error is returned after all
// collections have been attempted.
func (m *Mirror) RefreshAll(ctx context.Context) error {
	var firstErr error

	if !m.Appointments.Snapshot().IsLoading {
		if err := m.FetchAppointments(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if !m.Patients.Snapshot().IsLoading {
		if err := m.FetchPatients(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if !m.Doctors.Snapshot().IsLoading {
		if err := m.FetchDoctors(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *Mirror) rejectFetch(collection string, err error, fallback string, reject func(string)) {
	reject(failureMessage(err, fallback))
	m.metrics.ObserveFetch(collection, "error")
	m.logger.Warn("fetch failed", "collection", collection, "error", err)
}

func (m *Mirror) saveSnapshot(ctx context.Context, collection string, items any) {
	if err := m.cache.Save(ctx, collection, items); err != nil {
		m.logger.Warn("snapshot save failed", "collection", collection, "error", err)
	}
}

// failureMessage maps an operation error to the message stored for the
// user: the upstream's structured message when present, otherwise the fixed
// fallback. Transport errors never leak through.
func failureMessage(err error, fallback string) string {
	var apiErr *dental.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func canonicalStatus(s dental.AppointmentStatus) dental.AppointmentStatus {
	if parsed, ok := dental.ParseStatus(string(s)); ok {
		return parsed
	}
	return s
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/forms"
	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/internal/view"
	"github.com/novadent/dental-console/pkg/logging"
)

// PatientsHandler serves the patients collection.
type PatientsHandler struct {
	mirror *mirror.Mirror
	form   *forms.PatientForm
	logger *logging.Logger
	now    func() time.Time
}

// NewPatientsHandler creates the handler with a shared registration form.
func NewPatientsHandler(m *mirror.Mirror, logger *logging.Logger) *PatientsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientsHandler{
		mirror: m,
		form:   forms.NewPatientForm(m.CreatePatient),
		logger: logger,
		now:    time.Now,
	}
}

// patientItem decorates a patient with its display age. Patients without a
// recorded date of birth get the "N/A" label rather than a zero age.
type patientItem struct {
	dental.Patient
	AgeLabel string `json:"ageLabel"`
	Initials string `json:"initials"`
}

type patientListResponse struct {
	Items       []patientItem `json:"items"`
	IsLoading   bool          `json:"isLoading"`
	Error       string        `json:"error,omitempty"`
	IsCreating  bool          `json:"isCreating"`
	CreateError string        `json:"createError,omitempty"`
	IsUpdating  bool          `json:"isUpdating"`
}

// ListPatients returns the patient snapshot with derived display fields.
// GET /api/patients?search=&refresh=
func (h *PatientsHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if shouldFetch(q.Get("refresh"), h.mirror.Patients.Snapshot()) {
		if err := h.mirror.FetchPatients(r.Context()); err != nil {
			h.logger.Warn("patients fetch failed", "error", err)
		}
	}

	snap := h.mirror.Patients.Snapshot()
	now := h.now()
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))

	items := make([]patientItem, 0, len(snap.Items))
	for _, p := range snap.Items {
		if search != "" && !patientMatches(p, search) {
			continue
		}
		items = append(items, patientItem{
			Patient:  p,
			AgeLabel: view.AgeLabel(p.DOB, now),
			Initials: view.Initials(p.Name),
		})
	}

	writeJSON(w, http.StatusOK, patientListResponse{
		Items:       items,
		IsLoading:   snap.IsLoading,
		Error:       snap.Error,
		IsCreating:  snap.IsCreating,
		CreateError: snap.CreateError,
		IsUpdating:  snap.IsUpdating,
	})
}

func patientMatches(p dental.Patient, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Email), search) ||
		strings.Contains(p.Phone, search)
}

// CreatePatient registers a patient through the shared form.
// POST /api/patients
func (h *PatientsHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dental.CreatePatientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.form.Submit(r.Context(), req)
	if err != nil {
		status, message := submitStatus(err, "Failed to create patient")
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePatient applies a partial update to a patient record.
// PATCH /api/patients/{patientID}
func (h *PatientsHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "patientID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing patient id")
		return
	}

	var req dental.UpdatePatientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Gender != nil && !dental.ValidGender(*req.Gender) {
		writeError(w, http.StatusBadRequest, "gender must be male, female or other")
		return
	}

	updated, err := h.mirror.UpdatePatient(r.Context(), id, req)
	if err != nil {
		status, message := submitStatus(err, "Failed to update patient")
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

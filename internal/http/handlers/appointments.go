package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/forms"
	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/internal/slots"
	"github.com/novadent/dental-console/internal/store"
	"github.com/novadent/dental-console/internal/view"
	"github.com/novadent/dental-console/pkg/logging"
)

// AppointmentsHandler serves the appointments collection, slot lookup and
// the per-appointment treatment record.
type AppointmentsHandler struct {
	mirror *mirror.Mirror
	picker *slots.Picker
	form   *forms.AppointmentForm
	logger *logging.Logger
}

// NewAppointmentsHandler creates the handler. The form is shared across
// requests so concurrent submissions hit the single-flight guard.
func NewAppointmentsHandler(m *mirror.Mirror, picker *slots.Picker, loc *time.Location, logger *logging.Logger) *AppointmentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentsHandler{
		mirror: m,
		picker: picker,
		form:   forms.NewAppointmentForm(m.CreateAppointment, loc),
		logger: logger,
	}
}

// ListAppointments returns the appointment snapshot, optionally filtered.
// GET /api/appointments?search=&doctorId=&status=&refresh=
func (h *AppointmentsHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if shouldFetch(q.Get("refresh"), h.mirror.Appointments.Snapshot()) {
		if err := h.mirror.FetchAppointments(r.Context()); err != nil {
			h.logger.Warn("appointments fetch failed", "error", err)
		}
	}

	snap := h.mirror.Appointments.Snapshot()
	resp := toCollectionResponse(snap)

	filter := view.AppointmentFilter{
		Search:   q.Get("search"),
		DoctorID: q.Get("doctorId"),
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := dental.ParseStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status: "+raw)
			return
		}
		filter.Status = status
	}
	resp.Items = view.FilterAppointments(resp.Items, filter)

	writeJSON(w, http.StatusOK, resp)
}

// CreateAppointment books an appointment through the shared form.
// POST /api/appointments
func (h *AppointmentsHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dental.CreateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.form.Submit(r.Context(), req)
	if err != nil {
		status, message := submitStatus(err, "Failed to create appointment")
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateAppointment applies a partial update to an appointment.
// PATCH /api/appointments/{appointmentID}
func (h *AppointmentsHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing appointment id")
		return
	}

	var req dental.UpdateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != nil {
		status, ok := dental.ParseStatus(string(*req.Status))
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown status: "+string(*req.Status))
			return
		}
		req.Status = &status
	}

	updated, err := h.mirror.UpdateAppointment(r.Context(), id, req)
	if err != nil {
		status, message := submitStatus(err, "Failed to update appointment")
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// slotsResponse is the wire shape of the slot picker state.
type slotsResponse struct {
	DoctorID  string   `json:"doctorId"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
	IsLoading bool     `json:"isLoading"`
	Error     string   `json:"error,omitempty"`
}

// AvailableSlots looks up open slots for a (doctor, date) pair.
// GET /api/appointments/available-slots?date=&doctorId=
func (h *AppointmentsHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	doctorID := q.Get("doctorId")
	if date == "" || doctorID == "" {
		writeError(w, http.StatusBadRequest, "date and doctorId are required")
		return
	}

	h.picker.SetInputs(doctorID, date)
	if err := h.picker.Fetch(r.Context()); err != nil {
		h.logger.Warn("slot fetch failed", "doctor_id", doctorID, "date", date, "error", err)
	}

	snap := h.picker.Current()
	writeJSON(w, http.StatusOK, slotsResponse{
		DoctorID:  snap.DoctorID,
		Date:      snap.Date,
		Slots:     snap.Slots,
		IsLoading: snap.IsLoading,
		Error:     snap.Error,
	})
}

// treatmentResponse pairs the treatment record with its derived total.
type treatmentResponse struct {
	Treatment   *dental.Treatment `json:"treatment"`
	TotalAmount float64           `json:"totalAmount"`
	IsLoading   bool              `json:"isLoading"`
	Error       string            `json:"error,omitempty"`
}

// GetTreatment fetches and returns the treatment for an appointment.
// GET /api/appointments/{appointmentID}/treatment
func (h *AppointmentsHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing appointment id")
		return
	}

	if err := h.mirror.FetchTreatment(r.Context(), id); err != nil {
		h.logger.Warn("treatment fetch failed", "appointment_id", id, "error", err)
	}

	snap := h.mirror.Treatments.Snapshot()
	resp := treatmentResponse{
		IsLoading: snap.IsLoading,
		Error:     snap.Error,
	}
	for i := range snap.Items {
		if snap.Items[i].AppointmentID == id {
			resp.Treatment = &snap.Items[i]
			resp.TotalAmount = view.TreatmentTotal(snap.Items[i])
			break
		}
	}
	if resp.Treatment == nil && resp.Error == "" {
		writeError(w, http.StatusNotFound, "treatment not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// shouldFetch decides whether a list request triggers an upstream fetch:
// explicitly via ?refresh=, or implicitly when nothing is mirrored yet.
// A fetch already in flight is never doubled.
func shouldFetch[T any](refresh string, snap store.Snapshot[T]) bool {
	if snap.IsLoading {
		return false
	}
	switch refresh {
	case "1", "true", "yes":
		return true
	}
	return len(snap.Items) == 0
}

package handlers

import (
	"net/http"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/forms"
	"github.com/novadent/dental-console/internal/http/middleware"
	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/pkg/logging"
)

// DoctorsHandler serves the doctors collection.
type DoctorsHandler struct {
	mirror *mirror.Mirror
	logger *logging.Logger
}

// NewDoctorsHandler creates the handler.
func NewDoctorsHandler(m *mirror.Mirror, logger *logging.Logger) *DoctorsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DoctorsHandler{mirror: m, logger: logger}
}

// ListDoctors returns the doctor snapshot.
// GET /api/doctors?refresh=
func (h *DoctorsHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	if shouldFetch(r.URL.Query().Get("refresh"), h.mirror.Doctors.Snapshot()) {
		if err := h.mirror.FetchDoctors(r.Context()); err != nil {
			h.logger.Warn("doctors fetch failed", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, toCollectionResponse(h.mirror.Doctors.Snapshot()))
}

// CreateDoctor registers a doctor account. The form is built per request
// because the session role decides which professional fields it accepts.
// POST /api/doctors
func (h *DoctorsHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dental.CreateDoctorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := ""
	if user, ok := middleware.SessionUserFromContext(r.Context()); ok {
		role = user.Role
	}

	form := forms.NewDoctorForm(h.mirror.CreateDoctor, role)
	created, err := form.Submit(r.Context(), req)
	if err != nil {
		status, message := submitStatus(err, "Failed to create doctor")
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

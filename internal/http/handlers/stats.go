package handlers

import (
	"net/http"
	"time"

	"github.com/novadent/dental-console/internal/expenses"
	"github.com/novadent/dental-console/internal/mirror"
	"github.com/novadent/dental-console/internal/view"
	"github.com/novadent/dental-console/pkg/logging"
)

// StatsHandler serves the dashboard headline numbers.
type StatsHandler struct {
	mirror *mirror.Mirror
	repo   expenses.Repository
	logger *logging.Logger
	now    func() time.Time
}

// NewStatsHandler creates the handler. repo may be nil when the expense
// book is disabled.
func NewStatsHandler(m *mirror.Mirror, repo expenses.Repository, logger *logging.Logger) *StatsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsHandler{mirror: m, repo: repo, logger: logger, now: time.Now}
}

type statsResponse struct {
	view.Stats
	Expenses *expenses.Stats `json:"expenses,omitempty"`
}

// GetStats aggregates the mirrored collections into dashboard numbers.
// GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := statsResponse{
		Stats: view.BuildStats(
			h.mirror.Appointments.Snapshot().Items,
			h.mirror.Patients.Snapshot().Items,
			h.mirror.Doctors.Snapshot().Items,
			now,
		),
	}

	if h.repo != nil {
		items, err := h.repo.List(r.Context())
		if err != nil {
			h.logger.Warn("expense stats skipped", "error", err)
		} else {
			stats := expenses.BuildStats(items, now)
			resp.Expenses = &stats
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

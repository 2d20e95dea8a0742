// Package slots tracks the available-slot lookup for the appointment form.
// The slot list is computed server-side per (doctor, date); this package
// only requests it and guarantees that a response for superseded inputs is
// never applied.
package slots

import (
	"context"
	"errors"
	"sync"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/pkg/logging"
)

const fallbackMessage = "Failed to fetch available slots"

// Fetcher is the slice of the dental client the picker depends on.
type Fetcher interface {
	AvailableSlots(ctx context.Context, date, doctorID string) ([]string, error)
}

// Snapshot is the picker's current state for rendering.
type Snapshot struct {
	DoctorID  string
	Date      string
	Slots     []string
	IsLoading bool
	Error     string
}

// Picker holds the selected (doctor, date) pair and the slots fetched for
// it. Every input change bumps a generation counter; a resolving fetch
// compares its captured generation at apply time and discards itself if
// the inputs have moved on.
type Picker struct {
	fetcher Fetcher
	logger  *logging.Logger

	mu        sync.Mutex
	gen       uint64
	doctorID  string
	date      string
	slots     []string
	isLoading bool
	err       string
}

// NewPicker creates a picker. logger may be nil.
func NewPicker(fetcher Fetcher, logger *logging.Logger) *Picker {
	if logger == nil {
		logger = logging.Default()
	}
	return &Picker{
		fetcher: fetcher,
		logger:  logger,
	}
}

// SetInputs selects a (doctor, date) pair. Changing either input clears
// the current slots and invalidates any fetch still in flight. Setting
// the same pair again is a no-op.
func (p *Picker) SetInputs(doctorID, date string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doctorID == doctorID && p.date == date {
		return
	}
	p.gen++
	p.doctorID = doctorID
	p.date = date
	p.slots = nil
	p.err = ""
	p.isLoading = false
}

// Fetch requests the slots for the currently selected inputs and applies
// the response only if the inputs are unchanged when it resolves. A
// discarded response returns nil: staleness is not an error.
func (p *Picker) Fetch(ctx context.Context) error {
	p.mu.Lock()
	if p.doctorID == "" || p.date == "" {
		p.mu.Unlock()
		return errors.New("slots: doctor and date must be selected")
	}
	gen := p.gen
	doctorID := p.doctorID
	date := p.date
	p.isLoading = true
	p.err = ""
	p.mu.Unlock()

	fetched, err := p.fetcher.AvailableSlots(ctx, date, doctorID)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		p.logger.Debug("stale slot response discarded",
			"doctor_id", doctorID,
			"date", date,
		)
		return nil
	}

	p.isLoading = false
	if err != nil {
		p.err = failureMessage(err)
		return err
	}
	p.slots = append([]string(nil), fetched...)
	return nil
}

// Current returns a copy of the picker state.
func (p *Picker) Current() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Snapshot{
		DoctorID:  p.doctorID,
		Date:      p.date,
		Slots:     append([]string(nil), p.slots...),
		IsLoading: p.isLoading,
		Error:     p.err,
	}
}

func failureMessage(err error) string {
	var apiErr *dental.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallbackMessage
}

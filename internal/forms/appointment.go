package forms

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/novadent/dental-console/internal/dental"
)

// AppointmentSubmitter is the mirror operation an appointment form
// delegates to.
type AppointmentSubmitter func(ctx context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error)

// AppointmentForm is the draft for booking an appointment. The epoch
// timestamp is derived from date+time in the clinic's timezone at submit
// time so the two can never disagree.
type AppointmentForm struct {
	guard
	submit AppointmentSubmitter
	loc    *time.Location

	draftMu sync.Mutex
	draft   dental.CreateAppointmentRequest
}

// NewAppointmentForm creates an empty appointment form. loc is the
// clinic's timezone; nil means the process-local zone.
func NewAppointmentForm(submit AppointmentSubmitter, loc *time.Location) *AppointmentForm {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentForm{
		submit: submit,
		loc:    loc,
	}
}

// SetDraft replaces the whole draft.
func (f *AppointmentForm) SetDraft(draft dental.CreateAppointmentRequest) {
	f.draftMu.Lock()
	f.draft = draft
	f.draftMu.Unlock()
}

// Draft returns the current draft.
func (f *AppointmentForm) Draft() dental.CreateAppointmentRequest {
	f.draftMu.Lock()
	defer f.draftMu.Unlock()
	return f.draft
}

// Validate checks the required fields and that date+time parse in the
// clinic timezone.
func (f *AppointmentForm) Validate() error {
	return f.validate(f.Draft())
}

func (f *AppointmentForm) validate(draft dental.CreateAppointmentRequest) error {
	if isBlank(draft.PatientID) {
		return ErrPatientRequired
	}
	if isBlank(draft.DoctorID) {
		return ErrDoctorRequired
	}
	if isBlank(draft.Date) || isBlank(draft.Time) {
		return ErrDateTimeRequired
	}
	if isBlank(draft.Reason) {
		return ErrReasonRequired
	}
	if _, err := f.parseStart(draft); err != nil {
		return ErrDateTimeRequired
	}
	return nil
}

// Submit validates req, stamps the derived timestamp, and submits it
// exactly once while in flight. The shared draft is never read during
// submission; on failure req is kept as the draft for correction.
func (f *AppointmentForm) Submit(ctx context.Context, req dental.CreateAppointmentRequest) (*dental.Appointment, error) {
	if err := f.validate(req); err != nil {
		return nil, err
	}
	if err := f.begin(); err != nil {
		return nil, err
	}

	start, _ := f.parseStart(req)
	req.Timestamp = start.Unix()

	created, err := f.submit(ctx, req)
	if err != nil {
		f.SetDraft(req)
		f.finish(submitMessage(err, "Failed to create appointment"))
		return nil, err
	}

	f.SetDraft(dental.CreateAppointmentRequest{})
	f.finish("")
	return created, nil
}

func (f *AppointmentForm) parseStart(draft dental.CreateAppointmentRequest) (time.Time, error) {
	value := strings.TrimSpace(draft.Date) + " " + strings.TrimSpace(draft.Time)
	return time.ParseInLocation("2006-01-02 15:04", value, f.loc)
}

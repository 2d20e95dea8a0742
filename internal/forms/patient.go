package forms

import (
	"context"
	"sync"
	"time"

	"github.com/novadent/dental-console/internal/dental"
)

// PatientSubmitter is the mirror operation a patient form delegates to.
type PatientSubmitter func(ctx context.Context, req dental.CreatePatientRequest) (*dental.Patient, error)

// PatientForm is the draft for registering a patient.
type PatientForm struct {
	guard
	submit PatientSubmitter
	now    func() time.Time

	draftMu sync.Mutex
	draft   dental.CreatePatientRequest
}

// NewPatientForm creates an empty patient form wired to a submitter.
func NewPatientForm(submit PatientSubmitter) *PatientForm {
	return &PatientForm{
		submit: submit,
		now:    time.Now,
	}
}

// SetDraft replaces the whole draft, as the modal does on field change.
func (f *PatientForm) SetDraft(draft dental.CreatePatientRequest) {
	f.draftMu.Lock()
	f.draft = draft
	f.draftMu.Unlock()
}

// Draft returns the current draft.
func (f *PatientForm) Draft() dental.CreatePatientRequest {
	f.draftMu.Lock()
	defer f.draftMu.Unlock()
	return f.draft
}

// Validate checks the required fields before any network call is made.
func (f *PatientForm) Validate() error {
	return f.validate(f.Draft())
}

func (f *PatientForm) validate(draft dental.CreatePatientRequest) error {
	if isBlank(draft.Name) {
		return ErrNameRequired
	}
	if !validEmail(draft.Email) {
		return ErrInvalidEmail
	}
	if !dental.ValidGender(draft.Gender) {
		return ErrInvalidGender
	}
	if !validDOB(draft.DOB, f.now()) {
		return ErrInvalidDOB
	}
	return nil
}

// Submit validates and submits req. The form never reads the shared
// draft during submission, so concurrent callers each send their own
// payload. On success the draft is cleared; on failure req is kept as
// the draft for correction and the error message is retained for
// display. A submission already in flight rejects the call without
// invoking the operation again.
func (f *PatientForm) Submit(ctx context.Context, req dental.CreatePatientRequest) (*dental.Patient, error) {
	if err := f.validate(req); err != nil {
		return nil, err
	}
	if err := f.begin(); err != nil {
		return nil, err
	}

	created, err := f.submit(ctx, req)
	if err != nil {
		f.SetDraft(req)
		f.finish(submitMessage(err, "Failed to create patient"))
		return nil, err
	}

	f.SetDraft(dental.CreatePatientRequest{})
	f.finish("")
	return created, nil
}

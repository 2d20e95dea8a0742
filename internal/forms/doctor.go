package forms

import (
	"context"
	"sync"

	"github.com/novadent/dental-console/internal/dental"
)

// DoctorSubmitter is the mirror operation a doctor form delegates to.
type DoctorSubmitter func(ctx context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error)

// DoctorForm is the draft for registering a doctor account. Professional
// fields (specialization, experience, education, availability) are only
// writable when the editing user holds the doctor or admin role; the form
// does not enforce authorization beyond that field gating.
type DoctorForm struct {
	guard
	submit DoctorSubmitter

	draftMu  sync.Mutex
	draft    dental.CreateDoctorRequest
	showProf bool
}

// NewDoctorForm creates an empty doctor form. editorRole is the role of
// the signed-in user filling it in.
func NewDoctorForm(submit DoctorSubmitter, editorRole string) *DoctorForm {
	return &DoctorForm{
		submit:   submit,
		showProf: editorRole == "doctor" || editorRole == "admin",
	}
}

// ProfessionalFieldsVisible reports whether the professional section is
// shown to the editing user.
func (f *DoctorForm) ProfessionalFieldsVisible() bool {
	return f.showProf
}

// SetDraft replaces the draft. Professional fields are stripped when the
// editor's role does not expose them.
func (f *DoctorForm) SetDraft(draft dental.CreateDoctorRequest) {
	draft = f.sanitize(draft)
	f.draftMu.Lock()
	f.draft = draft
	f.draftMu.Unlock()
}

func (f *DoctorForm) sanitize(draft dental.CreateDoctorRequest) dental.CreateDoctorRequest {
	if !f.showProf {
		draft.Specialization = ""
		draft.ExperienceYrs = 0
		draft.Education = ""
		draft.Availability = nil
	}
	return draft
}

// Draft returns the current draft.
func (f *DoctorForm) Draft() dental.CreateDoctorRequest {
	f.draftMu.Lock()
	defer f.draftMu.Unlock()
	return f.draft
}

// Validate checks the required fields before any network call is made.
func (f *DoctorForm) Validate() error {
	return f.validate(f.Draft())
}

func (f *DoctorForm) validate(draft dental.CreateDoctorRequest) error {
	if isBlank(draft.Name) {
		return ErrNameRequired
	}
	if !validEmail(draft.Email) {
		return ErrInvalidEmail
	}
	if !dental.ValidGender(draft.Gender) {
		return ErrInvalidGender
	}
	return nil
}

// Submit strips role-gated fields from req, validates it, and submits it
// exactly once while in flight. The shared draft is never read during
// submission; on failure req is kept as the draft for correction.
func (f *DoctorForm) Submit(ctx context.Context, req dental.CreateDoctorRequest) (*dental.Doctor, error) {
	req = f.sanitize(req)
	if err := f.validate(req); err != nil {
		return nil, err
	}
	if err := f.begin(); err != nil {
		return nil, err
	}

	created, err := f.submit(ctx, req)
	if err != nil {
		f.SetDraft(req)
		f.finish(submitMessage(err, "Failed to create doctor"))
		return nil, err
	}

	f.SetDraft(dental.CreateDoctorRequest{})
	f.finish("")
	return created, nil
}

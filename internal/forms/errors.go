package forms

import "errors"

var (
	// ErrSubmitInFlight is returned when Submit is called while a prior
	// submission has not resolved yet.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrNameRequired is returned when the name field is empty.
	ErrNameRequired = errors.New("name is required")

	// ErrInvalidEmail is returned when the email does not look like an
	// email address.
	ErrInvalidEmail = errors.New("a valid email address is required")

	// ErrInvalidGender is returned when gender is not one of the
	// enumerated values.
	ErrInvalidGender = errors.New("gender must be male, female or other")

	// ErrInvalidDOB is returned when a provided date of birth does not
	// parse or lies in the future.
	ErrInvalidDOB = errors.New("date of birth must be a valid past date")

	// ErrPatientRequired is returned when no patient is selected.
	ErrPatientRequired = errors.New("a patient must be selected")

	// ErrDoctorRequired is returned when no doctor is selected.
	ErrDoctorRequired = errors.New("a doctor must be selected")

	// ErrDateTimeRequired is returned when date or time is missing.
	ErrDateTimeRequired = errors.New("date and time are required")

	// ErrReasonRequired is returned when the visit reason is empty.
	ErrReasonRequired = errors.New("a reason for the visit is required")
)

var validationErrors = []error{
	ErrNameRequired,
	ErrInvalidEmail,
	ErrInvalidGender,
	ErrInvalidDOB,
	ErrPatientRequired,
	ErrDoctorRequired,
	ErrDateTimeRequired,
	ErrReasonRequired,
}

// IsValidationError reports whether err is a draft validation failure, as
// opposed to a rejected submission or an in-flight guard.
func IsValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

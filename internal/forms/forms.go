// Package forms holds uncommitted drafts for the console's create/edit
// flows. A form validates its draft client-side, submits it through a
// mirror operation exactly once, keeps the draft on failure so the user
// can correct it, and clears it on success.
package forms

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/novadent/dental-console/internal/dental"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// State names the submission state machine position.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// guard serializes submissions: Submitting cannot be re-entered while a
// submission is in flight, and Failed→Submitting (resubmission) is allowed.
type guard struct {
	mu    sync.Mutex
	state State
	err   string
}

func (g *guard) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	g.state = StateSubmitting
	g.err = ""
	return nil
}

func (g *guard) finish(errMsg string) {
	g.mu.Lock()
	g.state = StateIdle
	g.err = errMsg
	g.mu.Unlock()
}

// State reports the current submission state.
func (g *guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == "" {
		return StateIdle
	}
	return g.state
}

// Error reports the message of the last failed submission, empty when the
// last submission succeeded or none happened yet.
func (g *guard) Error() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// validDOB accepts an empty date of birth and otherwise requires a
// parseable past date.
func validDOB(dob string, now time.Time) bool {
	dob = strings.TrimSpace(dob)
	if dob == "" {
		return true
	}
	parsed, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return false
	}
	return !parsed.After(now)
}

// submitMessage mirrors the operations layer: structured upstream message
// first, fixed fallback otherwise.
func submitMessage(err error, fallback string) string {
	var apiErr *dental.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

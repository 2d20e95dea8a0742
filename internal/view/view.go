// Package view builds presentation-ready projections of mirrored
// collections. Every function is pure: inputs are never mutated and the
// same inputs always produce the same output.
package view

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/novadent/dental-console/internal/dental"
)

// AgeSentinel is shown when a date of birth is missing or unparseable.
const AgeSentinel = "N/A"

const dateLayout = "2006-01-02"

// Age computes a whole-year age as of now. ok is false for an empty,
// malformed, or future date of birth.
func Age(dob string, now time.Time) (int, bool) {
	born, err := time.Parse(dateLayout, strings.TrimSpace(dob))
	if err != nil || born.After(now) {
		return 0, false
	}

	years := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years, true
}

// AgeLabel renders Age for display, substituting the sentinel when the
// date of birth cannot be used.
func AgeLabel(dob string, now time.Time) string {
	years, ok := Age(dob, now)
	if !ok {
		return AgeSentinel
	}
	return strconv.Itoa(years)
}

// FormatDate renders an upstream YYYY-MM-DD date for display. Anything
// that does not parse is returned unchanged.
func FormatDate(date string) string {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return parsed.Format("Jan 2, 2006")
}

// Initials returns the upper-cased first letters of the first and last
// name parts, for avatar placeholders.
func Initials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(firstRune(parts[0]))
	default:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	}
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return s[:size]
}

// AppointmentFilter holds the list-view filter inputs. Zero values mean
// "no constraint".
type AppointmentFilter struct {
	Search   string
	DoctorID string
	Status   dental.AppointmentStatus
}

// FilterAppointments retains the appointments matching every set
// constraint: doctor id, status, and a case-insensitive substring search
// over patient name, patient email, and the formatted date. Predicates
// combine as a logical AND; ordering never changes the result set.
func FilterAppointments(items []dental.Appointment, f AppointmentFilter) []dental.Appointment {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]dental.Appointment, 0, len(items))
	for _, a := range items {
		if f.DoctorID != "" && a.Doctor.ID != f.DoctorID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesSearch(a dental.Appointment, search string) bool {
	if strings.Contains(strings.ToLower(a.Patient.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Patient.Email), search) {
		return true
	}
	return strings.Contains(strings.ToLower(FormatDate(a.Date)), search)
}

// TreatmentTotal is the billable amount of a treatment: the sum of the
// prices of the services used. It is always derived, never stored.
func TreatmentTotal(t dental.Treatment) float64 {
	var total float64
	for _, s := range t.ServicesUsed {
		total += s.Price
	}
	return total
}

// Stats are the dashboard headline numbers, computed from store snapshots.
type Stats struct {
	Patients            int `json:"patients"`
	Doctors             int `json:"doctors"`
	Appointments        int `json:"appointments"`
	AppointmentsToday   int `json:"appointmentsToday"`
	PendingAppointments int `json:"pendingAppointments"`
}

// BuildStats aggregates the mirrored collections for the dashboard header.
func BuildStats(appointments []dental.Appointment, patients []dental.Patient, doctors []dental.Doctor, now time.Time) Stats {
	stats := Stats{
		Patients:     len(patients),
		Doctors:      len(doctors),
		Appointments: len(appointments),
	}
	today := now.Format(dateLayout)
	for _, a := range appointments {
		if a.Date == today {
			stats.AppointmentsToday++
		}
		if a.Status == dental.StatusPending {
			stats.PendingAppointments++
		}
	}
	return stats
}

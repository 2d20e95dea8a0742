package dental

import "strings"

// AppointmentStatus is the canonical appointment state. Values are
// lower-case on the wire and in memory.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseStatus normalizes a status string. Historical payloads used mixed
// casing ("Pending" vs "pending"); everything is folded to lower-case.
func ParseStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	default:
		return "", false
	}
}

// Gender values accepted for patients and doctors.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ValidGender reports whether g is one of the enumerated gender values.
func ValidGender(g string) bool {
	switch strings.ToLower(strings.TrimSpace(g)) {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// AppointmentPatient is the denormalized patient summary embedded in an
// appointment for display. The patients collection owns the full record.
type AppointmentPatient struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// AppointmentDoctor is the denormalized doctor summary on an appointment.
type AppointmentDoctor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FollowUpRef points at the appointment this one follows up on.
type FollowUpRef struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// Appointment is an upstream appointment record.
// Timestamp is the epoch seconds of Date+Time in the clinic's local zone.
type Appointment struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"` // YYYY-MM-DD
	Time        string             `json:"time"` // HH:MM
	Reason      string             `json:"reason"`
	Timestamp   int64              `json:"appointmentTimestamp"`
	Status      AppointmentStatus  `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	Patient     AppointmentPatient `json:"patient"`
	Doctor      AppointmentDoctor  `json:"doctor"`
	FollowUpFor *FollowUpRef       `json:"followUpFor,omitempty"`
}

// CreateAppointmentRequest is the payload for booking an appointment.
type CreateAppointmentRequest struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	Reason        string `json:"reason"`
	Timestamp     int64  `json:"appointmentTimestamp"`
	Notes         string `json:"notes,omitempty"`
	PatientID     string `json:"patientId"`
	DoctorID      string `json:"doctorId"`
	FollowUpForID string `json:"followUpForId,omitempty"`
}

// UpdateAppointmentRequest is a partial patch; nil fields are omitted.
type UpdateAppointmentRequest struct {
	Date      *string            `json:"date,omitempty"`
	Time      *string            `json:"time,omitempty"`
	Reason    *string            `json:"reason,omitempty"`
	Timestamp *int64             `json:"appointmentTimestamp,omitempty"`
	Status    *AppointmentStatus `json:"status,omitempty"`
	Notes     *string            `json:"notes,omitempty"`
	DoctorID  *string            `json:"doctorId,omitempty"`
}

// Patient is an upstream patient record.
type Patient struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Gender         string  `json:"gender"`
	DOB            string  `json:"dob"` // YYYY-MM-DD, may be empty
	Address        string  `json:"address"`
	MedicalHistory string  `json:"medicalHistory,omitempty"`
	Allergies      string  `json:"allergies,omitempty"`
	Balance        float64 `json:"balance"`
}

// CreatePatientRequest is the payload for registering a patient.
type CreatePatientRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	DOB            string `json:"dob"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
	Allergies      string `json:"allergies,omitempty"`
}

// UpdatePatientRequest is a partial patch for a patient.
type UpdatePatientRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	DOB            *string `json:"dob,omitempty"`
	Address        *string `json:"address,omitempty"`
	MedicalHistory *string `json:"medicalHistory,omitempty"`
	Allergies      *string `json:"allergies,omitempty"`
}

// AvailabilityWindow is one block of a doctor's weekly availability.
type AvailabilityWindow struct {
	Day   string `json:"day"`
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// Doctor is an upstream user with role=doctor.
type Doctor struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Gender         string               `json:"gender"`
	Specialization string               `json:"specialization"`
	ExperienceYrs  int                  `json:"yearsOfExperience"`
	Education      string               `json:"education,omitempty"`
	Availability   []AvailabilityWindow `json:"availability,omitempty"`
	ProfileImage   string               `json:"profileImage,omitempty"`
}

// CreateDoctorRequest registers a doctor account. Role is fixed server-side
// to "doctor" by the create-doctor endpoint.
type CreateDoctorRequest struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Gender         string               `json:"gender"`
	Specialization string               `json:"specialization"`
	ExperienceYrs  int                  `json:"yearsOfExperience"`
	Education      string               `json:"education,omitempty"`
	Availability   []AvailabilityWindow `json:"availability,omitempty"`
	Role           string               `json:"role"`
}

// ServiceUsed is one billable service line on a treatment.
type ServiceUsed struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Medication is one prescribed medication on a treatment.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// ReportAnalysis is an optional AI-analysis sub-record on a report.
type ReportAnalysis struct {
	Summary    string `json:"summary,omitempty"`
	Impression string `json:"impression,omitempty"`
}

// Report is one attached test report on a treatment.
type Report struct {
	TestName string          `json:"testName"`
	Result   string          `json:"result"`
	Image    string          `json:"image,omitempty"`
	Analysis *ReportAnalysis `json:"analysis,omitempty"`
}

// Treatment is the clinical record attached to a completed appointment.
// Its total amount is derived from ServicesUsed and never stored.
type Treatment struct {
	ID                    string        `json:"id"`
	AppointmentID         string        `json:"appointmentId"`
	DoctorID              string        `json:"doctorId"`
	PatientID             string        `json:"patientId"`
	OrganizationID        string        `json:"organizationId,omitempty"`
	LocationID            string        `json:"locationId,omitempty"`
	Diagnosis             string        `json:"diagnosis"`
	Notes                 string        `json:"notes,omitempty"`
	ServicesUsed          []ServiceUsed `json:"servicesUsed,omitempty"`
	PrescribedMedications []Medication  `json:"prescribedMedications,omitempty"`
	Reports               []Report      `json:"reports,omitempty"`
	FollowUpRecommended   bool          `json:"followUpRecommended"`
	FollowUpDate          string        `json:"followUpDate,omitempty"`
	FollowUpTime          string        `json:"followUpTime,omitempty"`
	InvoiceID             string        `json:"invoice,omitempty"`
	CreatedAt             string        `json:"createdAt,omitempty"`
	UpdatedAt             string        `json:"updatedAt,omitempty"`
}

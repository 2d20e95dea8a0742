// Package dental provides a typed client for the remote clinic REST API.
package dental

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/novadent/dental-console/pkg/logging"
)

const defaultTimeout = 20 * time.Second

// APIError is a structured error reported by the upstream API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// Client is an HTTP client for the clinic backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
	logger     *logging.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAuthToken sets a bearer token sent on every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// NewClient creates a client for the clinic backend at baseURL
// (e.g. "https://dental-backend.example.com").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAppointments fetches every appointment.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAppointment fetches a single appointment by id.
func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAppointment applies a partial patch to an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPut, "/api/appointments/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AvailableSlots returns the bookable time slots for a doctor on a date.
// The slot list is computed server-side; callers must re-request whenever
// doctor or date changes.
func (c *Client) AvailableSlots(ctx context.Context, date, doctorID string) ([]string, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("doctorId", doctorID)
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/appointments/available-slots?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPatients fetches every patient.
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPatient fetches a single patient by id.
func (c *Client) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePatient registers a new patient.
func (c *Client) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPost, "/api/patients", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePatient applies a partial patch to a patient.
func (c *Client) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPut, "/api/patients/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDoctors fetches every user with the doctor role.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := c.do(ctx, http.MethodGet, "/api/users/doctors", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDoctor registers a doctor account. The role field is forced to
// "doctor" regardless of what the caller set.
func (c *Client) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	req.Role = "doctor"
	var out Doctor
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TreatmentByAppointment fetches the treatment recorded for an appointment.
func (c *Client) TreatmentByAppointment(ctx context.Context, appointmentID string) (*Treatment, error) {
	var out Treatment
	if err := c.do(ctx, http.MethodGet, "/api/treatments/appointment/"+url.PathEscape(appointmentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("dental: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("dental: create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dental: %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("dental: read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractErrorMessage(raw)}
		c.logger.Warn("upstream error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := decodeEnvelope(raw, out); err != nil {
		return fmt.Errorf("dental: decode response %s %s: %w", method, path, err)
	}
	return nil
}

// decodeEnvelope tolerates both response shapes the backend produces:
// the entity under a "data" field, or the bare entity as the body.
func decodeEnvelope(raw []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(raw, out)
}

// extractErrorMessage pulls a human-readable message out of an error body.
// Priority: nested error.message, then top-level message. An empty string
// means the caller should fall back to its own fixed message.
func extractErrorMessage(raw []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Error.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Message)
}

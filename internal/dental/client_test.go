package dental

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListPatients_DataEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/patients" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "p1", "name": "Jane", "email": "jane@x.com", "dob": "1990-01-01"},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	patients, err := c.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients error: %v", err)
	}
	if len(patients) != 1 || patients[0].ID != "p1" || patients[0].Name != "Jane" {
		t.Fatalf("unexpected patients: %+v", patients)
	}
}

func TestListPatients_BareBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "p2", "name": "Bob"},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	patients, err := c.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients error: %v", err)
	}
	if len(patients) != 1 || patients[0].ID != "p2" {
		t.Fatalf("unexpected patients: %+v", patients)
	}
}

func TestCreateDoctor_ForcesDoctorRole(t *testing.T) {
	var gotRole string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode req: %v", err)
		}
		gotRole, _ = req["role"].(string)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "d1", "name": "Dr. Roy"}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	doc, err := c.CreateDoctor(context.Background(), CreateDoctorRequest{Name: "Dr. Roy", Email: "roy@x.com", Gender: "male", Role: "admin"})
	if err != nil {
		t.Fatalf("CreateDoctor error: %v", err)
	}
	if gotRole != "doctor" {
		t.Fatalf("role not forced to doctor: %q", gotRole)
	}
	if doc.ID != "d1" {
		t.Fatalf("unexpected doctor: %+v", doc)
	}
}

func TestAvailableSlots_QueryParams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2026-03-02" {
			t.Fatalf("unexpected date param: %q", got)
		}
		if got := r.URL.Query().Get("doctorId"); got != "d1" {
			t.Fatalf("unexpected doctorId param: %q", got)
		}
		_ = json.NewEncoder(w).Encode([]string{"09:00", "09:30", "14:00"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	slots, err := c.AvailableSlots(context.Background(), "2026-03-02", "d1")
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}
	if len(slots) != 3 || slots[0] != "09:00" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested error message", `{"error":{"message":"email already registered"}}`, "email already registered"},
		{"top-level message", `{"message":"validation failed"}`, "validation failed"},
		{"nested wins over top-level", `{"error":{"message":"nested"},"message":"outer"}`, "nested"},
		{"no message", `{"ok":false}`, ""},
		{"not json", `internal server error`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := NewClient(ts.URL)
			_, err := c.ListPatients(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T: %v", err, err)
			}
			if apiErr.Message != tt.want {
				t.Fatalf("message = %q, want %q", apiErr.Message, tt.want)
			}
			if apiErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d", apiErr.StatusCode)
			}
		})
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")
	_, err := c.ListAppointments(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure should not be an APIError: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "Pending", " CONFIRMED ", "completed", "cancelled"} {
		if _, ok := ParseStatus(s); !ok {
			t.Fatalf("ParseStatus(%q) not ok", s)
		}
	}
	if got, _ := ParseStatus("Pending"); got != StatusPending {
		t.Fatalf("ParseStatus casing: got %q", got)
	}
	if _, ok := ParseStatus("no-show"); ok {
		t.Fatal("ParseStatus accepted unknown status")
	}
}

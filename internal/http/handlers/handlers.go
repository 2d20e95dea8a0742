// Package handlers exposes the mirrored clinic data over HTTP. List
// endpoints serve the current store snapshot together with its sync flags;
// mutations go through the form controllers so their validation and
// single-flight guarantees apply to API callers too.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/novadent/dental-console/internal/dental"
	"github.com/novadent/dental-console/internal/forms"
	"github.com/novadent/dental-console/internal/store"
)

// collectionResponse is the wire shape of a store snapshot.
type collectionResponse[T any] struct {
	Items       []T    `json:"items"`
	IsLoading   bool   `json:"isLoading"`
	Error       string `json:"error,omitempty"`
	IsCreating  bool   `json:"isCreating"`
	CreateError string `json:"createError,omitempty"`
	IsUpdating  bool   `json:"isUpdating"`
}

func toCollectionResponse[T any](s store.Snapshot[T]) collectionResponse[T] {
	items := s.Items
	if items == nil {
		items = []T{}
	}
	return collectionResponse[T]{
		Items:       items,
		IsLoading:   s.IsLoading,
		Error:       s.Error,
		IsCreating:  s.IsCreating,
		CreateError: s.CreateError,
		IsUpdating:  s.IsUpdating,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// submitStatus maps a form submission error to an HTTP status and the
// message callers should see. Validation and guard failures never reach
// the upstream; anything else did and carries its message chain.
func submitStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, forms.ErrSubmitInFlight):
		return http.StatusConflict, err.Error()
	case forms.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	}
	var apiErr *dental.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return http.StatusBadGateway, apiErr.Message
	}
	return http.StatusBadGateway, fallback
}

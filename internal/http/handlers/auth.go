package handlers

import (
	"net/http"

	"github.com/novadent/dental-console/internal/http/middleware"
)

// AuthHandler exposes the authenticated session identity.
type AuthHandler struct{}

// NewAuthHandler creates the handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type meResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Me returns the signed-in user from the session token.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.SessionUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{ID: user.ID, Name: user.Name, Role: user.Role})
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMe(t *testing.T) {
	h := NewAuthHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(sessionContext(req.Context(), "u1", "admin"))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp meResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, "admin", resp.Role)
}

func TestMeWithoutSession(t *testing.T) {
	h := NewAuthHandler()
	rec := httptest.NewRecorder()

	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

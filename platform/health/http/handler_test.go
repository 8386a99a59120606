package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		readiness  func() bool
		wantCode   int
		wantStatus string
	}{
		{"no readiness", nil, http.StatusOK, "ok"},
		{"ready", func() bool { return true }, http.StatusOK, "ok"},
		{"not ready", func() bool { return false }, http.StatusServiceUnavailable, "not ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewRouter("notification", tt.readiness).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var body Status
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "notification", body.Service)
		})
	}
}

func TestHandler_RejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler("notification", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

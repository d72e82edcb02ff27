package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/farm-manager/backend/internal/integration/entrypoint/controller"
)

func newHealthOnlyRouter(origins []string) *gin.Engine {
	health := controller.NewHealthController(func() bool { return true }, nil)
	return NewRouter(health, nil, nil, nil, origins).Setup("test")
}

func TestRouter_HealthOnlyWithoutFinance(t *testing.T) {
	engine := newHealthOnlyRouter(nil)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/health", http.StatusOK},
		{"/api/v1/finance/series", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	engine := newHealthOnlyRouter([]string{"https://farm.example"})

	tests := []struct {
		name       string
		origin     string
		wantStatus int
		wantHeader string
	}{
		{"allowed origin", "https://farm.example", http.StatusOK, "https://farm.example"},
		{"unknown origin", "https://elsewhere.example", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("expected allow-origin %q, got %q", tt.wantHeader, got)
			}
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farm-manager/backend/internal/application/adapter"
	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

type stubTokenService struct {
	userID uuid.UUID
	err    error
}

func (s stubTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &adapter.TokenClaims{UserID: s.userID}, nil
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		svc        stubTokenService
		wantStatus int
	}{
		{"valid token", "Bearer abc", stubTokenService{userID: userID}, http.StatusOK},
		{"missing header", "", stubTokenService{userID: userID}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubTokenService{userID: userID}, http.StatusUnauthorized},
		{"empty token", "Bearer ", stubTokenService{userID: userID}, http.StatusUnauthorized},
		{"expired token", "Bearer abc", stubTokenService{err: domainerror.ErrExpiredToken}, http.StatusUnauthorized},
		{"invalid token", "Bearer abc", stubTokenService{err: domainerror.ErrInvalidToken}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen uuid.UUID
			engine := gin.New()
			engine.GET("/", NewAuthMiddleware(tt.svc).Authenticate(), func(c *gin.Context) {
				seen, _ = GetUserIDFromContext(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK && seen != userID {
				t.Errorf("expected user %s in context, got %s", userID, seen)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	engine := gin.New()
	engine.GET("/", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func() int {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}

	if call() != http.StatusOK || call() != http.StatusOK {
		t.Fatal("expected the first two requests to pass")
	}
	if code := call(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}

	now = now.Add(2 * time.Minute)
	if code := call(); code != http.StatusOK {
		t.Errorf("expected a new window to allow requests, got %d", code)
	}

	now = now.Add(2 * time.Minute)
	limiter.Cleanup()
	if len(limiter.entries) != 0 {
		t.Errorf("expected expired entries to be removed, got %d", len(limiter.entries))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/", NewRateLimiter(0, time.Minute).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

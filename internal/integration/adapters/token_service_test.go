package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainerror "github.com/farm-manager/backend/internal/domain/error"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims AccessClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func accessClaims(userID string, expiresIn time.Duration) AccessClaims {
	now := time.Now().UTC()
	return AccessClaims{
		UserID:    userID,
		Email:     "farmer@example.com",
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func TestTokenService_ValidateAccessToken(t *testing.T) {
	svc := NewTokenService(testSecret)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, accessClaims(userID.String(), time.Hour))

		claims, err := svc.ValidateAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID || claims.Email != "farmer@example.com" {
			t.Errorf("unexpected claims %+v", claims)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, accessClaims(userID.String(), -time.Hour))

		_, err := svc.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("expected expired token error, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "another-secret", jwt.SigningMethodHS256, accessClaims(userID.String(), time.Hour))

		_, err := svc.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token error, got %v", err)
		}
	})

	t.Run("refresh token", func(t *testing.T) {
		claims := accessClaims(userID.String(), time.Hour)
		claims.TokenType = "refresh"
		token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

		_, err := svc.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token error, got %v", err)
		}
	})

	t.Run("malformed user id", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.SigningMethodHS256, accessClaims("farmer-1", time.Hour))

		_, err := svc.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token error, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(context.Background(), "not-a-jwt"); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token error, got %v", err)
		}
	})
}

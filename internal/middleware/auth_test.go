package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, secret, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestVerifyToken(t *testing.T) {
	secret := "test-secret"

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		if _, err := VerifyToken(req, secret); err != ErrMissingAuthHeader {
			t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Token abc")
		if _, err := VerifyToken(req, secret); err != ErrMissingAuthHeader {
			t.Fatalf("expected ErrMissingAuthHeader, got %v", err)
		}
	})

	t.Run("invalid signature", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "user"))
		if _, err := VerifyToken(req, secret); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, "user-123"))
		claims, err := VerifyToken(req, secret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		userID, err := GetUserIDFromClaims(claims)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userID != "user-123" {
			t.Fatalf("expected user-123, got %s", userID)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	secret := "test-secret"

	t.Run("rejects without token", func(t *testing.T) {
		handler := RequireAuth(secret)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("stores user id in context", func(t *testing.T) {
		handler := RequireAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := AuthUserID(r); got != "user-7" {
				t.Fatalf("expected user-7 in context, got %q", got)
			}
		}))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, "user-7"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("empty secret disables the check", func(t *testing.T) {
		called := false
		handler := RequireAuth("")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if !called {
			t.Fatal("expected handler to run without auth")
		}
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-signing-key")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims(userID int64) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	var gotUserID int64
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("user_id").(int64)
	}))

	req := httptest.NewRequest("GET", "/api/v1/progress", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims(42)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotUserID != 42 {
		t.Errorf("user_id in context = %d, want 42", gotUserID)
	}
}

func TestAuthAcceptsQueryToken(t *testing.T) {
	called := false
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/v1/notifications/ws?token="+signToken(t, testSecret, validClaims(7)), nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !called {
		t.Errorf("status = %d, called = %v; want 200 and handler invoked", rec.Code, called)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{
			name:  "no token",
			setup: func(r *http.Request) {},
		},
		{
			name: "malformed token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-jwt")
			},
		},
		{
			name: "wrong signing key",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other-key"), validClaims(1)))
			},
		},
		{
			name: "expired token",
			setup: func(r *http.Request) {
				claims := jwt.MapClaims{
					"user_id": int64(1),
					"exp":     time.Now().Add(-time.Hour).Unix(),
				}
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
			},
		},
		{
			name: "missing user_id claim",
			setup: func(r *http.Request) {
				claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not run")
			}))

			req := httptest.NewRequest("GET", "/api/v1/progress", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"satchel/internal/domain"
	"satchel/internal/domain/models"
	"satchel/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// stubVerifier accepts exactly one token string.
type stubVerifier struct {
	token   string
	ownerID string
}

func (v *stubVerifier) VerifyToken(tokenString string) (*models.AccessClaims, error) {
	if tokenString != v.token {
		return nil, domain.ErrUnauthorized
	}
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: v.ownerID},
		Role:             "authenticated",
	}, nil
}

func (v *stubVerifier) Close() error { return nil }

func TestAuthMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := &stubVerifier{token: "good-token", ownerID: "owner-42"}

	var gotOwner string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner = httputil.GetOwnerID(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(verifier, logger)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantOwner  string
	}{
		{"valid token", "Bearer good-token", http.StatusOK, "owner-42"},
		{"wrong token", "Bearer bad-token", http.StatusUnauthorized, ""},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, ""},
		{"bearer with empty token", "Bearer ", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotOwner = ""
			req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotOwner != tt.wantOwner {
				t.Errorf("owner = %q, want %q", gotOwner, tt.wantOwner)
			}
		})
	}
}

func TestStaticOwner(t *testing.T) {
	var gotOwner string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner = httputil.GetOwnerID(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	rec := httptest.NewRecorder()
	StaticOwner("dev-owner")(next).ServeHTTP(rec, req)

	if gotOwner != "dev-owner" {
		t.Errorf("owner = %q, want dev-owner", gotOwner)
	}
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tree", nil)
	rec := httptest.NewRecorder()
	Recovery(logger)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

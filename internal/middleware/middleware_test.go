package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmynk/pocketbook/internal/auth"
)

func TestRequireAuthHTTP(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var gotUser, gotEmail string
	handler := RequireAuthHTTP(jwtManager, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
	}{
		{name: "bearer header", target: "/x", header: "Bearer " + token, wantStatus: http.StatusNoContent},
		{name: "query param", target: "/x?access_token=" + token, wantStatus: http.StatusNoContent},
		{name: "missing", target: "/x", wantStatus: http.StatusUnauthorized},
		{name: "bad token", target: "/x?access_token=nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser, gotEmail = "", ""
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusNoContent && (gotUser != "user-1" || gotEmail != "a@example.com") {
				t.Errorf("identity not in context: %q %q", gotUser, gotEmail)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	if called {
		t.Error("preflight should not reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing allow-origin header")
	}
}

func TestLogRequestsRecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 to pass through, got %d", rec.Code)
	}
}

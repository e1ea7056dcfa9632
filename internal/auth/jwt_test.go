package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := m.Generate(" ", ""); err == nil {
		t.Error("expected error for empty user ID")
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Generate("user-1", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	otherSecret, err := NewJWTManager("other-secret", time.Hour).Generate("user-1", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign none token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expiredToken},
		{name: "wrong secret", token: otherSecret},
		{name: "unsigned", token: noneToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestSubjectFallback(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "provider-uid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	got, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got.UserID != "provider-uid" {
		t.Errorf("expected subject as user ID, got %q", got.UserID)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "", wantErr: ErrMissingToken},
		{header: "Basic abc", wantErr: ErrInvalidToken},
		{header: "Bearer", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

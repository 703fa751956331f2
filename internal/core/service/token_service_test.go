package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/postwall/social-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func mustTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService([]byte(secret))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestTokenService_IssueThenVerify(t *testing.T) {
	svc := mustTokenService(t, "secret")

	token, err := svc.Issue("60f1a2b3c4d5e6f7a8b9c0d1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != "60f1a2b3c4d5e6f7a8b9c0d1" {
		t.Fatalf("expected id back, got %q", id)
	}
}

func TestTokenService_TokensAreDistinct(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := mustTokenService(t, "secret").WithClock(fixedClock(issuedAt))

	first, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens for the same identity and instant")
	}
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := mustTokenService(t, "secret").WithClock(fixedClock(issuedAt))

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"just issued", issuedAt, true},
		{"one second before expiry", issuedAt.Add(TokenTTL - time.Second), true},
		{"at expiry", issuedAt.Add(TokenTTL), false},
		{"after expiry", issuedAt.Add(TokenTTL + time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.WithClock(fixedClock(tt.at)).Verify(token)
			if tt.valid && err != nil {
				t.Fatalf("expected valid token, got %v", err)
			}
			if !tt.valid && !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestTokenService_RejectsOtherSecret(t *testing.T) {
	token, err := mustTokenService(t, "right-secret").Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := mustTokenService(t, "wrong-secret").Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := mustTokenService(t, "secret")
	for _, token := range []string{"", "not-a-token", "not.a.jwt", "a.b"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenService_RejectsTamperedPayload(t *testing.T) {
	svc := mustTokenService(t, "secret")
	token, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := svc.Issue("u2")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Graft u2's payload onto u1's signature.
	a := strings.Split(token, ".")
	b := strings.Split(other, ".")
	forged := a[0] + "." + b[1] + "." + a[2]

	if _, err := svc.Verify(forged); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged token, got %v", err)
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{
		"userId": "u1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := mustTokenService(t, "secret").Verify(unsigned); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsMissingExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "u1"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := mustTokenService(t, "secret").Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	if _, err := NewTokenService(nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

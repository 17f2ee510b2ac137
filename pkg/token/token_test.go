package token

import (
	"testing"
	"time"

	"clinic-appointment-api/config"
)

func newTestService(expiry time.Duration) *Service {
	return NewService(config.TokenConfig{
		Secret: "test-secret-key-for-signing",
		Expiry: expiry,
	})
}

func TestGenerateAndExtract(t *testing.T) {
	svc := newTestService(time.Hour)

	signed, err := svc.Generate("alice@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	got, err := svc.ExtractIdentifier(signed)
	if err != nil {
		t.Fatalf("ExtractIdentifier: %v", err)
	}
	if got != "alice@example.com" {
		t.Fatalf("subject = %q, want alice@example.com", got)
	}
}

func TestExtractExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	signed, err := svc.Generate("bob@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.ExtractIdentifier(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestExtractWrongSecret(t *testing.T) {
	signed, err := newTestService(time.Hour).Generate("carol@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewService(config.TokenConfig{Secret: "a-different-secret", Expiry: time.Hour})
	if _, err := other.ExtractIdentifier(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestExtractGarbage(t *testing.T) {
	svc := newTestService(time.Hour)
	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ExtractIdentifier(in); err != ErrInvalidToken {
			t.Errorf("ExtractIdentifier(%q): expected ErrInvalidToken, got %v", in, err)
		}
	}
}

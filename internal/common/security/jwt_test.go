package security

import (
	"errors"
	"testing"
	"time"

	"taskmanager/internal/platform/config"
)

func initJWTForTest(t *testing.T) {
	t.Helper()
	config.Load()
	InitJWT()
}

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	initJWTForTest(t)

	token, err := GenerateToken("test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	subject, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if subject != "test@example.com" {
		t.Fatalf("unexpected subject: %s", subject)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	initJWTForTest(t)
	config.AppConfig.JWTExp = -time.Hour

	token, err := GenerateToken("test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateMalformedToken(t *testing.T) {
	initJWTForTest(t)

	for _, tokenString := range []string{"not-a-token", "a.b", "a.b.c.d"} {
		if _, err := ValidateToken(tokenString); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", tokenString, err)
		}
	}
}

func TestValidateTamperedSignature(t *testing.T) {
	initJWTForTest(t)

	token, err := GenerateToken("test@example.com")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// Re-key the verifier; the existing token's MAC no longer matches.
	config.AppConfig.JWTKey = []byte("a-completely-different-secret")
	InitJWT()

	if _, err := ValidateToken(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

package security

import (
	"errors"
	"strings"
	"time"

	"taskmanager/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Token validation failure modes. They are kept distinguishable for logging;
// callers must collapse all of them into one generic unauthenticated response
// so the client cannot tell which check failed.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a stateless bearer token for the given subject (the
// account email). Claims are signed with the process-wide secret; nothing is
// written to storage.
func GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(config.AppConfig.JWTExp).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// ValidateToken recomputes the MAC over the claims (constant-time comparison
// inside the underlying jwx verifier), checks expiry, and returns the subject.
func ValidateToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(TokenAuth, tokenString)
	if err != nil {
		if errors.Is(jwtauth.ErrorReason(err), jwtauth.ErrExpired) {
			return "", ErrTokenExpired
		}
		// A structurally broken token never reached signature verification.
		if strings.Count(tokenString, ".") != 2 {
			return "", ErrTokenMalformed
		}
		return "", ErrTokenSignature
	}

	subject := token.Subject()
	if subject == "" {
		return "", ErrTokenMalformed
	}
	return subject, nil
}

package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("task lookup: %w", ErrNotFound), http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"conflict", ErrConflict, http.StatusConflict},
		{"validation sentinel", ErrValidation, http.StatusUnprocessableEntity},
		{"validation error type", NewValidationError(FieldError{Field: "title", Message: "title is required"}), http.StatusUnprocessableEntity},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromError(tt.err); got != tt.want {
				t.Fatalf("HTTPStatusFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestKindFromError(t *testing.T) {
	// An uncaught internal failure must be labeled internal, not conflict.
	if kind := KindFromError(errors.New("boom")); kind != "internal" {
		t.Fatalf("expected kind internal, got %s", kind)
	}
	if kind := KindFromError(ErrConflict); kind != "conflict" {
		t.Fatalf("expected kind conflict, got %s", kind)
	}
	if kind := KindFromError(ErrUnauthorized); kind != "unauthenticated" {
		t.Fatalf("expected kind unauthenticated, got %s", kind)
	}
}

func TestValidationErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError(FieldError{Field: "email", Message: "email is required"})
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected ValidationError to unwrap to ErrValidation")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) || len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Fatalf("unexpected fields: %+v", vErr)
	}
}

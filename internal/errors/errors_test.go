package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil error", nil, http.StatusOK},
		{"Validation", Validation("bad field"), http.StatusUnprocessableEntity},
		{"Unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"Forbidden", ErrForbidden, http.StatusForbidden},
		{"Not found", NotFound("gone"), http.StatusNotFound},
		{"Conflict", Conflict("duplicate"), http.StatusConflict},
		{"Internal", ErrInternal, http.StatusInternalServerError},
		{"Plain error", errors.New("boom"), http.StatusInternalServerError},
		{"Wrapped domain error", fmt.Errorf("context: %w", ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	wrapped := WrapError(ErrConflict, cause)

	if wrapped.Code != CodeConflict {
		t.Errorf("Expected code %s, got %s", CodeConflict, wrapped.Code)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected wrapped error to match its cause")
	}
	// The sentinel's own message stays intact for clients.
	if wrapped.Message != ErrConflict.Message {
		t.Errorf("Expected message %q, got %q", ErrConflict.Message, wrapped.Message)
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(ErrNotFound, CodeNotFound) {
		t.Error("Expected sentinel to match its own code")
	}
	if IsCode(ErrNotFound, CodeConflict) {
		t.Error("Expected mismatched code to report false")
	}
	if IsCode(errors.New("plain"), CodeInternal) {
		t.Error("Expected plain errors to report false")
	}
	if !IsCode(fmt.Errorf("outer: %w", WrapError(ErrForbidden, errors.New("x"))), CodeForbidden) {
		t.Error("Expected deeply wrapped domain error to match")
	}
}

func TestGetErrorMessage(t *testing.T) {
	if got := GetErrorMessage(Validation("date must be YYYY-MM-DD")); got != "date must be YYYY-MM-DD" {
		t.Errorf("Expected domain message, got %q", got)
	}
	if got := GetErrorMessage(WrapError(ErrInternal, errors.New("pq: internal detail"))); got != ErrInternal.Message {
		t.Errorf("Expected the domain message without the cause, got %q", got)
	}
	if got := GetErrorMessage(nil); got != "" {
		t.Errorf("Expected empty string for nil, got %q", got)
	}
}

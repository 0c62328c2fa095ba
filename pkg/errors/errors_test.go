package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		status int
		code   string
	}{
		{"not found", NotFoundWithID("Class", 42), http.StatusNotFound, CodeNotFound},
		{"validation", Validation("bad input", nil), http.StatusUnprocessableEntity, CodeValidation},
		{"no slots", NoSlots(1), http.StatusBadRequest, CodeNoSlots},
		{"duplicate", DuplicateBooking(1), http.StatusBadRequest, CodeDuplicate},
		{"invalid timezone", InvalidTimezone("Nope/Nope"), http.StatusBadRequest, CodeInvalidTimezone},
		{"internal", Internal("boom", errors.New("cause")), http.StatusInternalServerError, CodeInternal},
		{"unavailable", Unavailable("Database"), http.StatusServiceUnavailable, CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("store down")
	err := Internal("Failed to create booking", cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestAsAppError_PassesThrough(t *testing.T) {
	original := NoSlots(3)
	converted := AsAppError(original)

	if converted != original {
		t.Error("expected the same AppError instance back")
	}
}

func TestAsAppError_WrapsUnknown(t *testing.T) {
	converted := AsAppError(errors.New("connection reset"))

	if converted.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, converted.Code)
	}
	if converted.Message == "connection reset" {
		t.Error("internal cause must not leak into the client-facing message")
	}
}

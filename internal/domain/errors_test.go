package domain

import (
	"errors"
	"testing"
)

func TestValidationError_UnwrapsToInvalidInput(t *testing.T) {
	err := NewValidationError("costWeight", "must be within [0,1]")

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("expected errors.Is(err, ErrInvalidInput)")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("expected *ValidationError")
	}
	if ve.Field != "costWeight" {
		t.Errorf("expected field costWeight, got %q", ve.Field)
	}

	want := "invalid input: costWeight must be within [0,1]"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsKindAndMessage(t *testing.T) {
	err := Validation("loan amount must be between %d and %d", 1000, 5000)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected match with ErrNotFound")
	}
	if got, want := err.Error(), "loan amount must be between 1000 and 5000"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("approve: %w", InvalidTransition("only pending loans can be approved"))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("wrapped error lost its kind: %v", err)
	}
	var ae *Error
	if !errors.As(err, &ae) || ae.Msg != "only pending loans can be approved" {
		t.Fatalf("errors.As failed: %+v", ae)
	}
}

func TestError_EmptyMessageFallsBackToKind(t *testing.T) {
	err := &Error{Kind: ErrMissingProfile}
	if err.Error() != ErrMissingProfile.Error() {
		t.Fatalf("got %q", err.Error())
	}
}

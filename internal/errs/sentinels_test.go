package errs

import (
	"errors"
	"testing"
)

func TestResourceSentinels(t *testing.T) {
	t.Parallel()

	if !errors.Is(ErrEntryNotFound, ErrNotFound) || !errors.Is(ErrProjectNotFound, ErrNotFound) || !errors.Is(ErrTagNotFound, ErrNotFound) {
		t.Fatalf("resource not-found errors must match ErrNotFound")
	}
	if errors.Is(ErrProjectNotFound, ErrEntryNotFound) {
		t.Fatalf("project and entry not-found must stay distinct")
	}
	if !errors.Is(ErrTagExists, ErrAlreadyExists) {
		t.Fatalf("ErrTagExists must match ErrAlreadyExists")
	}
	if ErrProjectNotFound.Error() != "project not found" {
		t.Fatalf("unexpected message %q", ErrProjectNotFound.Error())
	}
}

func TestValidationf(t *testing.T) {
	t.Parallel()

	err := Validationf("mood must be between %d and %d", 1, 5)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if err.Error() != "validation failed: mood must be between 1 and 5" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

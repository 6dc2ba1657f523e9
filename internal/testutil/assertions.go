package testutil

import (
	"errors"
	"math"
	"testing"

	apperrors "riskreport/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Error())
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertFloatEqual fails the test if got differs from want by more than tol.
func AssertFloatEqual(t *testing.T, want, got, tol float64) {
	t.Helper()

	if math.IsNaN(got) || math.Abs(want-got) > tol {
		t.Errorf("expected %.12g (±%g), got %.12g", want, tol, got)
	}
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("threshold %d exceeds max %d", 10, 5)

	if err.Error() != "threshold 10 exceeds max 5" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Error("errors.As should match ConfigError")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("MaxThreshold", "must be at least the threshold")

	want := `validation error for "MaxThreshold": must be at least the threshold`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("errors.As should match ValidationError")
	}
	if vErr.Field != "MaxThreshold" {
		t.Errorf("Field = %q, want MaxThreshold", vErr.Field)
	}
}

func TestWrapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil) should return nil")
		}
	})

	t.Run("wrapped error unwraps", func(t *testing.T) {
		cause := errors.New("boom")
		err := WrapError(cause, "enabling monitor")
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match its cause with errors.Is")
		}
	})
}

func TestIsContextError(t *testing.T) {
	if !IsContextError(context.Canceled) {
		t.Error("context.Canceled should be a context error")
	}
	if !IsContextError(fmt.Errorf("run: %w", context.DeadlineExceeded)) {
		t.Error("wrapped DeadlineExceeded should be a context error")
	}
	if IsContextError(errors.New("other")) {
		t.Error("unrelated error should not be a context error")
	}
}

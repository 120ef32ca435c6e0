package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := (&DomainError{
		Category: ErrCatValidation,
		Code:     "CODE",
		Message:  "message",
	}).WithCause(cause)

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be unwrapped")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to match cause")
	}

	match := &DomainError{Category: ErrCatValidation, Code: "CODE"}
	if !errors.Is(err, match) {
		t.Fatalf("expected errors.Is to match category and code")
	}
}

func TestDomainError_WithDetail(t *testing.T) {
	err := &DomainError{Category: ErrCatInternal, Code: "X", Message: "msg"}
	err.WithDetail("k", "v")
	if err.Details == nil || err.Details["k"] != "v" {
		t.Fatalf("expected details to be set")
	}
}

func TestErrorFactories(t *testing.T) {
	if got := ErrValidation("C", "m"); got.Category != ErrCatValidation || got.Code != "C" {
		t.Fatalf("unexpected validation error: %+v", got)
	}
	if got := ErrTimeout(nil); got.Category != ErrCatTimeout || got.Code != CodeTimeout {
		t.Fatalf("unexpected timeout error: %+v", got)
	}
	if got := ErrCanceled(context.Canceled); got.Category != ErrCatCanceled || got.Cause != context.Canceled {
		t.Fatalf("unexpected canceled error: %+v", got)
	}
}

func TestErrTimeout_Message(t *testing.T) {
	err := ErrTimeout([]string{"/tmp/a", "/tmp/b"})
	if got, want := err.Message, "timed out waiting for: /tmp/a, /tmp/b"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}

	err = ErrTimeout(nil)
	if got, want := err.Message, "timed out waiting for resources to settle"; got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestWaitingFor(t *testing.T) {
	waiting := []string{"a"}
	err := fmt.Errorf("wrapped: %w", ErrTimeout(waiting))

	got := WaitingFor(err)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("WaitingFor() = %v, want [a]", got)
	}

	// The detail is a copy; mutating the input afterwards must not leak in.
	waiting[0] = "mutated"
	if WaitingFor(err)[0] != "a" {
		t.Fatalf("expected waiting set to be copied")
	}

	if WaitingFor(errors.New("plain")) != nil {
		t.Fatalf("expected nil for non-domain error")
	}
}

func TestCategoryHelpers(t *testing.T) {
	if !IsTimeout(ErrTimeout(nil)) {
		t.Fatalf("expected timeout")
	}
	if !IsValidation(ErrValidation(CodeMissingResources, "m")) {
		t.Fatalf("expected validation")
	}
	if IsTimeout(nil) || IsValidation(nil) {
		t.Fatalf("nil must not match any category")
	}
	if !errors.Is(ErrCanceled(context.Canceled), context.Canceled) {
		t.Fatalf("expected canceled error to unwrap to context.Canceled")
	}
}

func TestGetCategory(t *testing.T) {
	if GetCategory(ErrTimeout(nil)) != ErrCatTimeout {
		t.Fatalf("expected timeout category")
	}
	if GetCategory(errors.New("plain")) != ErrCatInternal {
		t.Fatalf("expected internal category for non-domain error")
	}
	if !IsCategory(ErrCanceled(nil), ErrCatCanceled) {
		t.Fatalf("expected category match")
	}
}

package common

import (
	"errors"
	"testing"
)

func TestErrorWrapsUnderlying(t *testing.T) {
	base := errors.New("upstream unavailable")
	err := NewError(base, "c0de")

	if !errors.Is(err, base) {
		t.Fatalf("expected errors.Is to see the wrapped error")
	}
	if err.Error() != "upstream unavailable" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err.String() != "c0de: upstream unavailable" {
		t.Fatalf("unexpected string %q", err.String())
	}
}

func TestEmptyError(t *testing.T) {
	err := &Error{Code: "c0de"}
	if err.Error() != "" || err.Unwrap() != nil {
		t.Fatalf("expected empty error")
	}
}

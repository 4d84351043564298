package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsInnerKind(t *testing.T) {
	inner := New(KindConflict, "slot taken")
	outer := Wrap(KindPersistence, "create appointment", inner)

	if outer.Kind != KindConflict {
		t.Fatalf("kind = %v, want conflict", outer.Kind)
	}
	if !errors.Is(outer, inner) {
		t.Fatal("outer should match inner by kind")
	}
}

func TestWrapForeignError(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindPersistence, "save", cause)

	if err.Kind != KindPersistence {
		t.Fatalf("kind = %v, want persistence", err.Kind)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause should survive unwrapping")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"foreign", errors.New("boom"), KindUnknown},
		{"direct", New(KindNotFound, "missing"), KindNotFound},
		{"wrapped in fmt", fmt.Errorf("op: %w", New(KindThrottled, "slow down")), KindThrottled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(KindPersistence, "save user", errors.New("timeout"))
	if err.Error() != "save user: timeout" {
		t.Fatalf("message = %q", err.Error())
	}
	if msg := New(KindValidation, "name is required").Error(); msg != "name is required" {
		t.Fatalf("message = %q", msg)
	}
}

package interp

import (
	"errors"
	"testing"
)

func TestScriptPreprocess_Transforms(t *testing.T) {
	tests := []struct {
		name string
		expr string
		in   string
		want string
	}{
		{name: "uppercase", expr: "text.toUpperCase()", in: "abc", want: "ABC"},
		{name: "regex replace", expr: `text.replace(/\t/g, "  ")`, in: "a\tb", want: "a  b"},
		{name: "identity", expr: "text", in: "same", want: "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pre, err := ScriptPreprocess(tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := pre(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestScriptPreprocess_CompileError(t *testing.T) {
	_, err := ScriptPreprocess("((")
	if !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("expected ErrInvalidDescriptor, got %v", err)
	}
}

func TestScriptPreprocess_ThrowLeavesTextUnchanged(t *testing.T) {
	pre, err := ScriptPreprocess("missingFunction()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pre("original"); got != "original" {
		t.Errorf("expected original text on filter error, got %q", got)
	}
}

func TestScriptPreprocess_FreshRuntimePerCall(t *testing.T) {
	pre, err := ScriptPreprocess("(globalThis.n = (globalThis.n || 0) + 1), text + n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pre("x"); got != "x1" {
		t.Errorf("expected x1, got %q", got)
	}
	// State must not leak between calls.
	if got := pre("x"); got != "x1" {
		t.Errorf("expected fresh runtime per call, got %q", got)
	}
}

package interp

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func TestResolve_CanonicalName(t *testing.T) {
	reg := Builtin()

	d, err := reg.Resolve("python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Bin != "python3" {
		t.Errorf("expected python3 binary, got %s", d.Bin)
	}
}

func TestResolve_Aliases(t *testing.T) {
	reg := Builtin()

	tests := []struct {
		alias string
		want  string
	}{
		{alias: "py", want: "python"},
		{alias: "js", want: "javascript"},
		{alias: "node", want: "javascript"},
		{alias: "hs", want: "haskell"},
		{alias: "PY", want: "python"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			d, err := reg.Resolve(tt.alias)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, d.Name)
			}
		})
	}
}

func TestResolve_UnknownIdentity(t *testing.T) {
	reg := Builtin()

	_, err := reg.Resolve("nonexistent-lang")
	if !errors.Is(err, ErrUnknownInterpreter) {
		t.Fatalf("expected ErrUnknownInterpreter, got %v", err)
	}
	if !strings.Contains(err.Error(), "nonexistent-lang") {
		t.Errorf("expected identity in message, got %q", err.Error())
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		ok   bool
	}{
		{
			name: "complete",
			d:    Descriptor{Name: "x", Bin: "x", Prompt: regexp.MustCompile(`^> `)},
			ok:   true,
		},
		{
			name: "missing bin",
			d:    Descriptor{Name: "x", Prompt: regexp.MustCompile(`^> `)},
		},
		{
			name: "missing prompt",
			d:    Descriptor{Name: "x", Bin: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("expected ErrInvalidDescriptor, got %v", err)
			}
		})
	}
}

func TestCheckBinary_Missing(t *testing.T) {
	d := Descriptor{Name: "ghost", Bin: "definitely-not-a-real-binary-xyz", Prompt: regexp.MustCompile(`^> `)}

	err := d.CheckBinary()
	if !errors.Is(err, ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-binary-xyz") {
		t.Errorf("expected missing command named in message, got %q", err.Error())
	}
}

func TestEnvList_Sorted(t *testing.T) {
	d := Descriptor{Env: map[string]string{"B": "2", "A": "1"}}

	got := d.EnvList()
	if len(got) != 2 || got[0] != "A=1" || got[1] != "B=2" {
		t.Errorf("expected sorted pairs, got %v", got)
	}
}

func TestRegistry_Immutable(t *testing.T) {
	base := Builtin()
	before := len(base.Names())

	extra := &Descriptor{Name: "mylang", Bin: "mylang", Prompt: regexp.MustCompile(`^> `)}
	merged := base.merge([]*Descriptor{extra}, map[string]string{"ml2": "mylang"})

	if len(base.Names()) != before {
		t.Error("merge mutated the base registry")
	}
	if _, err := merged.Resolve("ml2"); err != nil {
		t.Errorf("expected merged alias to resolve: %v", err)
	}
	if _, err := base.Resolve("mylang"); err == nil {
		t.Error("expected mylang to be absent from the base registry")
	}
}

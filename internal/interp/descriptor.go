// Package interp defines interpreter descriptors and the registry that maps
// language identities to them.
package interp

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
)

// Configuration errors. They surface to the user as messages; no pane is
// created or mutated when one occurs.
var (
	ErrUnknownInterpreter = errors.New("no interpreter registered")
	ErrBinaryNotFound     = errors.New("interpreter binary not found")
	ErrInvalidDescriptor  = errors.New("invalid interpreter descriptor")
)

// Descriptor identifies an interpreter executable and how to drive it: the
// binary to spawn, the pattern recognizing its prompt, extra environment for
// the spawned process, and an optional transcript preprocess filter.
type Descriptor struct {
	// Name is the canonical identity this descriptor is registered under.
	Name string

	// Bin is the executable name or path. Required.
	Bin string

	// Args are extra arguments passed to Bin.
	Args []string

	// Prompt matches the interpreter's prompt within a transcript line.
	// Required.
	Prompt *regexp.Regexp

	// Env holds extra environment variables for the spawned process only.
	Env map[string]string

	// Preprocess transforms the normalized transcript before value
	// extraction. Nil means identity.
	Preprocess func(string) string
}

// Validate checks that the required fields are present.
func (d *Descriptor) Validate() error {
	if d.Bin == "" {
		return fmt.Errorf("%w: %s: bin is required", ErrInvalidDescriptor, d.Name)
	}
	if d.Prompt == nil {
		return fmt.Errorf("%w: %s: prompt is required", ErrInvalidDescriptor, d.Name)
	}
	return nil
}

// CheckBinary reports whether Bin resolves to an executable on the host.
// Absence is a configuration error, not a crash.
func (d *Descriptor) CheckBinary() error {
	if _, err := exec.LookPath(d.Bin); err != nil {
		return fmt.Errorf("%w: %s", ErrBinaryNotFound, d.Bin)
	}
	return nil
}

// EnvList renders Env as KEY=VALUE pairs, sorted for determinism.
func (d *Descriptor) EnvList() []string {
	if len(d.Env) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(d.Env))
	for k, v := range d.Env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// Package transcript turns the raw output captured from an interpreter's
// pseudo-terminal into the per-statement values shown next to the source.
// Normalization resolves terminal control codes and echo differences between
// pty implementations; extraction keeps only the value printed right before
// each prompt.
package transcript

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// EchoStyle describes how the host's pty layer handles input echo.
type EchoStyle int

const (
	// EchoInline means the pty echoes written input back into the output
	// stream and prompts appear inline without trailing newlines. BSD-style
	// ptys behave this way.
	EchoInline EchoStyle = iota

	// EchoAbsent means the pty does not echo input; the transcript instead
	// starts with one line per line of input written.
	EchoAbsent
)

// HostEchoStyle reports the echo style of the running platform. Probed once
// at startup; per-update branching on GOOS is deliberately avoided.
func HostEchoStyle() EchoStyle {
	switch runtime.GOOS {
	case "darwin", "freebsd", "openbsd", "netbsd", "dragonfly":
		return EchoInline
	default:
		return EchoAbsent
	}
}

// Source describes the input that produced a transcript.
type Source struct {
	// Lines is the number of source lines written to the interpreter.
	Lines int

	// Prompt matches the interpreter's prompt within a line.
	Prompt *regexp.Regexp

	// Preprocess is an optional transform applied after normalization,
	// before extraction. Nil means identity.
	Preprocess func(string) string
}

// Normalizer converts a raw pty transcript into ordinary line-oriented text.
type Normalizer struct {
	style EchoStyle
}

// NewNormalizer returns a Normalizer for the running platform.
func NewNormalizer() *Normalizer {
	return &Normalizer{style: HostEchoStyle()}
}

// NewNormalizerFor returns a Normalizer with an explicit echo style.
func NewNormalizerFor(style EchoStyle) *Normalizer {
	return &Normalizer{style: style}
}

// Normalize strips terminal control noise from raw and reshapes it into
// well-formed lines. On EchoInline hosts a newline is inserted after every
// prompt match so the echoed statement becomes its own line; on EchoAbsent
// hosts the leading block of input-echo lines is removed instead. The number
// of lines removed is approximated by src.Lines, which can drift if the
// interpreter emits blank lines during echo.
func (n *Normalizer) Normalize(raw string, src Source) string {
	text := render(ansi.Strip(raw))

	switch n.style {
	case EchoInline:
		text = splitPrompts(text, src.Prompt)
	case EchoAbsent:
		text = dropLines(text, src.Lines)
	}

	if src.Preprocess != nil {
		text = src.Preprocess(text)
	}
	return text
}

// render resolves backspace and carriage-return codes the way a terminal
// display would: backspace moves the cursor left, carriage return moves it to
// the start of the line, and subsequent characters overwrite what was there.
func render(raw string) string {
	var lines []string
	line := make([]rune, 0, 80)
	col := 0

	for _, r := range raw {
		switch r {
		case '\n':
			lines = append(lines, string(line))
			line = line[:0]
			col = 0
		case '\r':
			col = 0
		case '\b':
			if col > 0 {
				col--
			}
		default:
			if col < len(line) {
				line[col] = r
			} else {
				line = append(line, r)
			}
			col++
		}
	}

	if len(line) > 0 {
		lines = append(lines, string(line))
		return strings.Join(lines, "\n")
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// splitPrompts inserts a line break after every prompt match so that a prompt
// followed by its echoed statement becomes two lines.
func splitPrompts(text string, prompt *regexp.Regexp) string {
	if prompt == nil {
		return text
	}

	trailingNL := strings.HasSuffix(text, "\n")
	var out []string
	for _, ln := range Lines(text) {
		rest := ln
		for {
			loc := prompt.FindStringIndex(rest)
			if loc == nil || loc[1] == 0 || loc[1] == len(rest) {
				break
			}
			out = append(out, rest[:loc[1]])
			rest = rest[loc[1]:]
		}
		out = append(out, rest)
	}

	joined := strings.Join(out, "\n")
	if trailingNL && joined != "" {
		joined += "\n"
	}
	return joined
}

// dropLines removes the first n lines of text. Used on EchoAbsent hosts,
// where the transcript opens with the injected input rather than an echo
// interleaved with prompts.
func dropLines(text string, n int) string {
	lines := Lines(text)
	if n >= len(lines) {
		return ""
	}
	trailingNL := strings.HasSuffix(text, "\n")
	joined := strings.Join(lines[n:], "\n")
	if trailingNL && joined != "" {
		joined += "\n"
	}
	return joined
}

// Lines splits text into lines the way line-oriented tools do: a trailing
// newline terminates the final line rather than opening an empty one.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

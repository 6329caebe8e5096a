package transcript

import (
	"reflect"
	"regexp"
	"testing"
)

func TestExtract_NoPromptYieldsNothing(t *testing.T) {
	prompt := regexp.MustCompile(`^>>> `)

	tests := []struct {
		name string
		in   string
	}{
		{name: "empty transcript", in: ""},
		{name: "plain output", in: "hello\nworld\n"},
		{name: "blank lines only", in: "one\n\ntwo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.in, prompt); len(got) != 0 {
				t.Errorf("expected no values, got %v", got)
			}
		})
	}
}

func TestExtract_SinglePrompt(t *testing.T) {
	prompt := regexp.MustCompile(`^>>> `)

	// One prompt means one emission, which is the discarded banner slot.
	got := Extract("banner\n>>> \n", prompt)
	if len(got) != 0 {
		t.Errorf("expected empty output for a single prompt, got %v", got)
	}
}

func TestExtract_LastNonEmptyLineWins(t *testing.T) {
	prompt := regexp.MustCompile(`^>>> `)

	in := ">>> \nfirst\nsecond\n>>> \n"
	got := Extract(in, prompt)
	want := []string{"second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_BarePromptEmitsEmptyLine(t *testing.T) {
	prompt := regexp.MustCompile(`^>>> `)

	// A prompt with no preceding value keeps line correspondence with a
	// blank input line.
	in := ">>> \n>>> \n2\n>>> \n"
	got := Extract(in, prompt)
	want := []string{"", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_EmptyLinesDoNotClobberHeldValue(t *testing.T) {
	prompt := regexp.MustCompile(`^>>> `)

	in := ">>> \n42\n\n>>> \n"
	got := Extract(in, prompt)
	want := []string{"42"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_CalculatorWithEmptyPrompt(t *testing.T) {
	// bc prints no prompt; the empty line after each value is the marker.
	prompt := regexp.MustCompile(`^$`)

	in := "\n1+1\n2\n\n2+2\n4\n\n"
	got := Extract(in, prompt)
	want := []string{"2", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	prompt := regexp.MustCompile(`^>>> `)
	in := "banner\n>>> \none\n>>> \ntwo\n>>> \n"

	first := Extract(in, prompt)
	second := Extract(in, prompt)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not idempotent: %v vs %v", first, second)
	}
}

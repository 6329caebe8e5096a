package transcript

import "regexp"

// Extract scans normalized transcript lines and keeps, for each prompt, the
// last non-empty line that preceded it. This yields one output line per input
// statement: the value the interpreter printed right before it asked for more
// input. Echoed statements and earlier lines of multi-line output are
// overwritten by later ones; only the most recent survives.
//
// The first emission corresponds to whatever the interpreter printed before
// the first statement echo (its startup banner) and is discarded. A prompt
// with no preceding non-empty line emits an empty line, which preserves
// line-for-line correspondence with blank input lines.
func Extract(normalized string, prompt *regexp.Regexp) []string {
	var values []string
	held := ""

	for _, line := range Lines(normalized) {
		switch {
		case prompt.MatchString(line):
			values = append(values, held)
			held = ""
		case line != "":
			held = line
		}
	}

	if len(values) < 2 {
		return nil
	}
	return values[1:]
}

package oxlint

import (
	"encoding/json"
	"fmt"
)

// Report is the decoded result of one oxlint invocation. oxlint emits
// the same JSON document whether or not it found issues, so a Report is
// the single outcome type for both cases.
type Report struct {
	Diagnostics   []Diagnostic `json:"diagnostics"`
	NumberOfFiles int          `json:"number_of_files"`
	NumberOfRules int          `json:"number_of_rules"`
	ThreadsCount  int          `json:"threads_count"`
}

// Diagnostic is one reported rule violation. Instances are produced
// entirely by oxlint; nothing in this repo constructs them outside of
// tests.
type Diagnostic struct {
	Code     string  `json:"code"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Filename string  `json:"filename"`
	Help     string  `json:"help,omitempty"`
	URL      string  `json:"url,omitempty"`
	Labels   []Label `json:"labels"`
}

// Label carries one source location for a diagnostic. A diagnostic with
// no labels has no usable location and is skipped during planning.
type Label struct {
	Text string `json:"label,omitempty"`
	Span Span   `json:"span"`
}

// Span locates a byte range in the source. Line and Column are 1-based.
// Offset and Length are informational; edits are recomputed from line
// text and never trust the byte span.
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Line returns the 1-based line of the diagnostic's first label, or 0
// when the diagnostic carries no label.
func (d Diagnostic) Line() int {
	if len(d.Labels) == 0 {
		return 0
	}
	return d.Labels[0].Span.Line
}

// decodeReport parses the JSON document oxlint writes to stdout.
func decodeReport(out []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("parsing oxlint output: %w", err)
	}
	return &report, nil
}

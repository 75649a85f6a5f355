// Package output renders suppression run reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// FileReport summarizes the modifications for one file.
type FileReport struct {
	File    string `json:"file"`
	Applied int    `json:"applied"`
	Denied  int    `json:"denied,omitempty"`
}

// RunReport is the final summary of a suppression run. NoDiagnostics
// distinguishes "oxlint reported nothing for this rule" from "ran but
// every candidate line was already suppressed".
type RunReport struct {
	Rule          string       `json:"rule"`
	DryRun        bool         `json:"dry_run"`
	Files         []FileReport `json:"files"`
	Skipped       []string     `json:"skipped,omitempty"`
	Total         int          `json:"total"`
	NoDiagnostics bool         `json:"no_diagnostics"`
}

// Formatter defines the interface for run report formatters
type Formatter interface {
	Format(report *RunReport, w io.Writer) error
}

// TextFormatter outputs the report in human-readable text format
type TextFormatter struct{}

// Format implements the Formatter interface for text output
func (f *TextFormatter) Format(report *RunReport, w io.Writer) error {
	for _, skipped := range report.Skipped {
		fmt.Fprintf(w, "⚠ %s: skipped (banned path)\n", skipped)
	}

	if report.NoDiagnostics {
		fmt.Fprintf(w, "✓ No diagnostics for rule %s\n", report.Rule)
		return nil
	}

	for _, file := range report.Files {
		fmt.Fprintf(w, "%s: %d directive(s)", file.File, file.Applied)
		if file.Denied > 0 {
			fmt.Fprintf(w, ", %d denied by policy", file.Denied)
		}
		fmt.Fprintln(w)
	}

	if report.Total == 0 {
		fmt.Fprintf(w, "✓ Nothing to patch for rule %s\n", report.Rule)
		return nil
	}

	if report.DryRun {
		fmt.Fprintf(w, "Summary: %d directive(s) planned (dry-run, no files written)\n", report.Total)
	} else {
		fmt.Fprintf(w, "Summary: added %d directive(s)\n", report.Total)
	}

	return nil
}

// JSONFormatter outputs the report in JSON format
type JSONFormatter struct {
	Pretty bool
}

// Format implements the Formatter interface for JSON output
func (f *JSONFormatter) Format(report *RunReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}

// GetFormatter returns the appropriate formatter based on the format string
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{Pretty: true}, nil
	case "json-compact":
		return &JSONFormatter{Pretty: false}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

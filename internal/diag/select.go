// Package diag narrows a raw oxlint diagnostic batch down to the
// diagnostics for one target rule, grouped by source file.
package diag

import (
	"path/filepath"
	"strings"

	"oxsup/internal/oxlint"
)

// Selection is the result of filtering a diagnostic batch. Files maps
// each filename to its diagnostics in original relative order; Order
// lists filenames by first appearance so reports are deterministic.
type Selection struct {
	Files   map[string][]oxlint.Diagnostic
	Order   []string
	Skipped []string
	Matched int
}

// Select filters diags to those whose code matches the target rule
// exactly and groups them by filename. Files matching the banned
// predicate are excluded entirely and recorded in Skipped; they are
// never written, even in dry-run mode. Zero matches is a normal
// "nothing to do" outcome, not an error.
func Select(diags []oxlint.Diagnostic, target oxlint.Rule, banned func(string) bool) Selection {
	sel := Selection{Files: make(map[string][]oxlint.Diagnostic)}
	code := target.Code()
	skipped := make(map[string]bool)

	for _, d := range diags {
		if d.Code != code {
			continue
		}
		sel.Matched++

		if banned != nil && banned(d.Filename) {
			if !skipped[d.Filename] {
				skipped[d.Filename] = true
				sel.Skipped = append(sel.Skipped, d.Filename)
			}
			continue
		}

		if _, ok := sel.Files[d.Filename]; !ok {
			sel.Order = append(sel.Order, d.Filename)
		}
		sel.Files[d.Filename] = append(sel.Files[d.Filename], d)
	}

	return sel
}

// BannedPathMatcher builds a predicate that reports whether any path
// element matches one of the banned directory names (dependency
// directories, VCS metadata directories, build output).
func BannedPathMatcher(names []string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return func(path string) bool {
		normalized := filepath.ToSlash(path)
		for _, part := range strings.Split(normalized, "/") {
			if set[part] {
				return true
			}
		}
		return false
	}
}

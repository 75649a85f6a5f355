// Package patch plans and applies suppression edits against source
// buffers. Planning computes every edit in the coordinate system of the
// original, unmodified buffer from an immutable line-offset table;
// application is a single composition pass over those coordinates. No
// edit ever invalidates another's offsets, so processing order cannot
// affect the final file.
package patch

import (
	"sort"
	"strings"

	"oxsup/internal/directive"
	"oxsup/internal/oxlint"
)

// Plan is the ordered edit set for one file, planned against the
// original buffer. Discard it once the file has been written.
type Plan struct {
	Edits []Edit
}

// Count returns the number of logical modifications, used for the
// per-file "N directive(s)" report.
func (p Plan) Count() int {
	return len(p.Edits)
}

// line is one physical line of the original buffer. start and end are
// byte offsets into that buffer; end excludes the trailing separator.
type line struct {
	text  string
	start int
	end   int
}

// indexLines splits src into lines with their starting byte offsets.
// The table is computed once and never updated; a trailing newline does
// not produce a phantom final line.
func indexLines(src string) []line {
	var lines []line
	offset := 0
	for offset <= len(src) {
		nl := strings.IndexByte(src[offset:], '\n')
		if nl < 0 {
			if offset < len(src) {
				lines = append(lines, line{text: src[offset:], start: offset, end: len(src)})
			}
			break
		}
		lines = append(lines, line{text: src[offset : offset+nl], start: offset, end: offset + nl})
		offset += nl + 1
	}
	return lines
}

// Build plans the suppression edits for one file. For each diagnostic
// line it either extends an existing directive on the preceding line or
// inserts a new directive line, copying the indentation of the line
// being annotated. Diagnostics without a location label or pointing
// past the end of the line table are skipped; repeated diagnostics on
// one line collapse to a single edit; a directive already listing the
// target rule yields no edit, so re-running on a patched file is a
// no-op.
func Build(src string, diags []oxlint.Diagnostic, target oxlint.Rule) Plan {
	lines := indexLines(src)

	// Descending line order is the simplest arrangement that keeps every
	// lookup against the precomputed table; any order would do, since
	// offsets are never recomputed after an edit is planned.
	sorted := make([]oxlint.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Line() > sorted[j].Line()
	})

	seen := make(map[int]bool)
	var edits []Edit

	for _, d := range sorted {
		if len(d.Labels) == 0 {
			continue
		}
		ln := d.Labels[0].Span.Line
		if ln < 1 || ln > len(lines) {
			continue
		}
		if seen[ln] {
			continue
		}
		seen[ln] = true

		cur := lines[ln-1]
		indent := directive.Indentation(cur.text)

		if ln > 1 {
			prev := lines[ln-2]
			if rules := directive.Parse(prev.text); len(rules) > 0 {
				if directive.Contains(rules, target.String()) {
					continue
				}
				merged := append(rules, target.String())
				edits = append(edits, Edit{
					Start: prev.start,
					End:   prev.end,
					Text:  directive.Format(indent, merged),
				})
				continue
			}
		}

		edits = append(edits, Edit{
			Start: cur.start,
			End:   cur.start,
			Text:  directive.Format(indent, []string{target.String()}) + "\n",
		})
	}

	return Plan{Edits: edits}
}

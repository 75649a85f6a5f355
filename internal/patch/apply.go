package patch

import (
	"fmt"
	"sort"
	"strings"
)

// Edit is a planned mutation expressed in the coordinate system of the
// original, unmodified buffer. Start == End inserts Text at Start; a
// wider range replaces the covered bytes.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Apply splices the edits into src in one pass: unedited spans are
// copied verbatim and edited spans substituted, walking original
// offsets in increasing order. The buffer is never mutated between
// edits, so every edit's recorded offsets stay valid no matter how many
// edits exist. Overlapping or out-of-range edits are a planner defect
// and rejected. Apply knows nothing of diagnostics or directives.
func Apply(src string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return src, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var out strings.Builder
	pos := 0
	for _, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return "", fmt.Errorf("edit [%d,%d) out of range for %d-byte buffer", e.Start, e.End, len(src))
		}
		if e.Start < pos {
			return "", fmt.Errorf("edit [%d,%d) overlaps a previous edit ending at %d", e.Start, e.End, pos)
		}
		out.WriteString(src[pos:e.Start])
		out.WriteString(e.Text)
		pos = e.End
	}
	out.WriteString(src[pos:])

	return out.String(), nil
}

package ui

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/outline-engine/internal/diff"
)

// DiffOverlayLines renders a diff for the overlay. An empty diff gets a
// single explanatory line.
func DiffOverlayLines(result *diff.Result) []string {
	if result == nil || result.Empty() {
		return []string{"No changes"}
	}
	lines := diff.BuildLines(result, true)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Type == diff.TypeBlank {
			out = append(out, "")
			continue
		}
		out = append(out, strings.Repeat("  ", l.Indent)+l.Content)
	}
	return out
}

// diffSummary is a compact "+added -deleted ~modified" count
func diffSummary(result *diff.Result) string {
	if result.Empty() {
		return "identical"
	}
	return fmt.Sprintf("+%d -%d ~%d", len(result.New), len(result.Deleted), len(result.Modified))
}

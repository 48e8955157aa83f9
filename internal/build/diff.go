package build

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// UnifiedDiff returns the unified diff from the current content of target to
// output, or "" when they are equal.
func UnifiedDiff(target, current, output string) string {
	edits := myers.ComputeEdits(span.URIFromPath(target), current, output)
	if len(edits) == 0 {
		return ""
	}
	return fmt.Sprint(gotextdiff.ToUnified(target+" (current)", target+" (new)", current, edits))
}

// RenderDiff wraps a unified diff in a markdown fence and renders it for the
// terminal. The fenced text is returned as is when plain is set or glamour
// cannot render it.
func RenderDiff(unified string, plain bool) string {
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)
	if plain {
		return diffMarkdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}
	return rendered
}

package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mattn/prettier-langserver/types"
)

// ComputeEdits computes a minimal set of line-granular text edits that turn
// before into after.
func ComputeEdits(_ types.DocumentURI, before, after string) []types.TextEdit {
	edits := []types.TextEdit{}
	if before == after {
		return edits
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	line := 0
	for _, d := range diffs {
		n := lineCount(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffDelete:
			edits = append(edits, types.TextEdit{
				Range: types.Range{
					Start: types.Position{Line: line},
					End:   types.Position{Line: line + n},
				},
				NewText: "",
			})
			line += n
		case diffmatchpatch.DiffInsert:
			edits = append(edits, types.TextEdit{
				Range: types.Range{
					Start: types.Position{Line: line},
					End:   types.Position{Line: line},
				},
				NewText: d.Text,
			})
		}
	}
	return edits
}

// lineCount counts the lines a chunk spans, treating a trailing fragment
// without a newline as its own line.
func lineCount(text string) int {
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") && text != "" {
		n++
	}
	return n
}

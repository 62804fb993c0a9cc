package buffer

import (
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/types"
)

// Index maps byte offsets of a text snapshot to line/column positions.
// Search and replace compute their spans through it so that offsets never leak
// across line boundaries.
type Index struct {
	text   string
	starts []int // byte offset of the first byte of each line
}

// NewIndex builds an index over text.
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, starts: starts}
}

// LineCount returns the number of lines in the snapshot.
func (ix *Index) LineCount() int {
	return len(ix.starts)
}

// Position converts a byte offset into a position. Offsets are clamped to the text.
func (ix *Index) Position(offset int) types.Position {
	offset = max(0, min(offset, len(ix.text)))
	line := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
	return types.Position{
		Line: line + 1,
		Col:  utf8.RuneCountInString(ix.text[ix.starts[line]:offset]),
	}
}

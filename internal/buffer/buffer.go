// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/quill/internal/types"
)

// ErrInvalidPosition is returned when a position lies outside the document.
var ErrInvalidPosition = errors.New("invalid position")

// Buffer defines the interface for text buffer operations.
// Lines are addressed 1-based and columns by rune index, matching types.Position.
type Buffer interface {
	SetText(text string)
	Text() string
	Line(line int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	Replace(start, end types.Position, text []byte) (types.EditInfo, error)
	Slice(start, end types.Position) (string, error)
	Clamp(pos types.Position) types.Position
	End() types.Position
	IsModified() bool
	SetModified(modified bool)
}

// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/types"
	"github.com/bethropolis/quill/internal/utils"
)

// SliceBuffer stores the document as a slice of lines without their newlines.
type SliceBuffer struct {
	lines    [][]byte
	modified bool // Track if buffer has unsaved changes
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// A document always has at least one line
		lines: [][]byte{{}},
	}
}

// SetText replaces the whole document. Windows line endings are normalized.
func (sb *SliceBuffer) SetText(text string) {
	text = normalizeNewlines(text)
	parts := strings.Split(text, "\n")
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lines[i] = []byte(p)
	}
	sb.lines = lines
	sb.modified = true
}

// Text returns the whole document joined with "\n".
func (sb *SliceBuffer) Text() string {
	return string(bytes.Join(sb.lines, []byte("\n")))
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the content of the 1-based line.
func (sb *SliceBuffer) Line(line int) ([]byte, error) {
	if line < 1 || line > len(sb.lines) {
		return nil, fmt.Errorf("line %d out of bounds (1-%d): %w", line, len(sb.lines), ErrInvalidPosition)
	}
	return sb.lines[line-1], nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) SetModified(modified bool) {
	sb.modified = modified
}

// End returns the position just after the last character.
func (sb *SliceBuffer) End() types.Position {
	last := len(sb.lines)
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last-1])}
}

// Clamp moves pos to the nearest position inside the document.
func (sb *SliceBuffer) Clamp(pos types.Position) types.Position {
	pos.Line = max(1, min(pos.Line, len(sb.lines)))
	pos.Col = max(0, min(pos.Col, utf8.RuneCount(sb.lines[pos.Line-1])))
	return pos
}

// locate validates pos and returns its byte offset within its line.
func (sb *SliceBuffer) locate(pos types.Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(sb.lines) || pos.Col < 0 {
		return 0, fmt.Errorf("%s: %w", pos, ErrInvalidPosition)
	}
	off := utils.RuneIndexToByteOffset(sb.lines[pos.Line-1], pos.Col)
	if off < 0 {
		return 0, fmt.Errorf("%s past end of line: %w", pos, ErrInvalidPosition)
	}
	return off, nil
}

// Insert places text at pos. Text may span several lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	off, err := sb.locate(pos)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("insert: %w", err)
	}
	text = []byte(normalizeNewlines(string(text)))
	edit := types.EditInfo{Start: pos, OldEnd: pos, NewEnd: pos.Advance(string(text))}
	if len(text) == 0 {
		return edit, nil
	}

	current := sb.lines[pos.Line-1]
	head := append([]byte(nil), current[:off]...)
	tail := append([]byte(nil), current[off:]...)

	parts := bytes.Split(text, []byte("\n"))
	inserted := make([][]byte, len(parts))
	for i, p := range parts {
		inserted[i] = append([]byte(nil), p...)
	}
	inserted[0] = append(head, inserted[0]...)
	inserted[len(inserted)-1] = append(inserted[len(inserted)-1], tail...)

	sb.lines = slices.Concat(sb.lines[:pos.Line-1], inserted, sb.lines[pos.Line:])
	sb.modified = true
	return edit, nil
}

// Delete removes the text in [start, end). The bounds may be given in either order.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	if end.Before(start) {
		start, end = end, start
	}
	startOff, err := sb.locate(start)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("delete: %w", err)
	}
	endOff, err := sb.locate(end)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("delete: %w", err)
	}
	edit := types.EditInfo{Start: start, OldEnd: end, NewEnd: start}
	if start == end {
		return edit, nil
	}

	merged := append([]byte(nil), sb.lines[start.Line-1][:startOff]...)
	merged = append(merged, sb.lines[end.Line-1][endOff:]...)
	sb.lines = slices.Concat(sb.lines[:start.Line-1], [][]byte{merged}, sb.lines[end.Line:])
	sb.modified = true
	return edit, nil
}

// Replace swaps the text in [start, end) for text.
func (sb *SliceBuffer) Replace(start, end types.Position, text []byte) (types.EditInfo, error) {
	if end.Before(start) {
		start, end = end, start
	}
	deleted, err := sb.Delete(start, end)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("replace: %w", err)
	}
	inserted, err := sb.Insert(start, text)
	if err != nil {
		return types.EditInfo{}, fmt.Errorf("replace: %w", err)
	}
	return types.EditInfo{Start: start, OldEnd: deleted.OldEnd, NewEnd: inserted.NewEnd}, nil
}

// Slice returns the text in [start, end).
func (sb *SliceBuffer) Slice(start, end types.Position) (string, error) {
	if end.Before(start) {
		start, end = end, start
	}
	startOff, err := sb.locate(start)
	if err != nil {
		return "", fmt.Errorf("slice: %w", err)
	}
	endOff, err := sb.locate(end)
	if err != nil {
		return "", fmt.Errorf("slice: %w", err)
	}
	if start.Line == end.Line {
		return string(sb.lines[start.Line-1][startOff:endOff]), nil
	}

	var content strings.Builder
	content.Write(sb.lines[start.Line-1][startOff:])
	for line := start.Line + 1; line < end.Line; line++ {
		content.WriteByte('\n')
		content.Write(sb.lines[line-1])
	}
	content.WriteByte('\n')
	content.Write(sb.lines[end.Line-1][:endOff])
	return content.String(), nil
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)

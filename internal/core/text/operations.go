package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/core/history"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// Operations handles typing: rune insertion and deletion at the cursor.
type Operations struct {
	editor EditorInterface
}

// EditorInterface defines editor methods needed
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetEventManager() *event.Manager
	ClearSelection()
	GetSelection() (start types.Position, end types.Position, ok bool)
	GetHistoryManager() *history.Manager
	TabWidth() int
	SoftIndent() bool // true when soft indentation applies to the current mode
}

// NewOperations creates a text operations manager
func NewOperations(editor EditorInterface) *Operations {
	return &Operations{editor: editor}
}

// isWordBoundary reports whether typing r closes a word for undo purposes.
func isWordBoundary(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

// InsertRune types r at the cursor, replacing any selection. Space, newline
// and tab checkpoint the text before they are inserted.
func (o *Operations) InsertRune(r rune) error {
	if isWordBoundary(r) {
		o.checkpoint()
	}
	text := string(r)
	if r == ' ' && o.editor.SoftIndent() && o.softIndentAtCursor() {
		text = "  "
	}
	return o.insert(text)
}

// InsertNewLine types a newline.
func (o *Operations) InsertNewLine() error {
	return o.InsertRune('\n')
}

// InsertTab inserts tab-width spaces.
func (o *Operations) InsertTab() error {
	o.checkpoint()
	return o.insert(strings.Repeat(" ", max(1, o.editor.TabWidth())))
}

// softIndentAtCursor reports whether a typed space should become two: the
// cursor is at column 0 or right after a space.
func (o *Operations) softIndentAtCursor() bool {
	cur := o.editor.GetCursor()
	if cur.Col == 0 {
		return true
	}
	prev, err := o.editor.GetBuffer().Slice(types.Position{Line: cur.Line, Col: cur.Col - 1}, cur)
	return err == nil && prev == " "
}

func (o *Operations) checkpoint() {
	if hm := o.editor.GetHistoryManager(); hm != nil {
		hm.Checkpoint(o.editor.GetBuffer().Text())
	}
}

func (o *Operations) insert(text string) error {
	if _, err := o.deleteSelection(); err != nil {
		return err
	}
	cursorBefore := o.editor.GetCursor()
	editInfo, err := o.editor.GetBuffer().Insert(cursorBefore, []byte(text))
	if err != nil {
		return fmt.Errorf("buffer insert failed: %w", err)
	}
	o.editor.SetCursor(editInfo.NewEnd)
	o.dispatch(editInfo)
	return nil
}

// deleteSelection removes the selected text and leaves the cursor at its start.
func (o *Operations) deleteSelection() (bool, error) {
	start, end, ok := o.editor.GetSelection()
	if !ok {
		return false, nil
	}
	o.editor.ClearSelection()
	editInfo, err := o.editor.GetBuffer().Delete(start, end)
	if err != nil {
		return false, fmt.Errorf("buffer delete failed: %w", err)
	}
	o.editor.SetCursor(start)
	o.dispatch(editInfo)
	return true, nil
}

// DeleteBackward deletes the selection, or the rune before the cursor.
// With soft indentation a pair of spaces before the cursor goes at once.
func (o *Operations) DeleteBackward() error {
	if deleted, err := o.deleteSelection(); deleted || err != nil {
		return err
	}

	buf := o.editor.GetBuffer()
	end := o.editor.GetCursor()
	start := end
	switch {
	case end.Col > 0:
		start.Col--
		if o.editor.SoftIndent() && end.Col >= 2 {
			pair := types.Position{Line: end.Line, Col: end.Col - 2}
			if prev, err := buf.Slice(pair, end); err == nil && prev == "  " {
				start = pair
			}
		}
	case end.Line > 1:
		prevLine, err := buf.Line(end.Line - 1)
		if err != nil {
			return fmt.Errorf("cannot get previous line %d: %w", end.Line-1, err)
		}
		start = types.Position{Line: end.Line - 1, Col: utf8.RuneCount(prevLine)}
	default:
		return nil // At beginning of buffer, nothing to delete
	}

	editInfo, err := buf.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}
	o.editor.SetCursor(start)
	o.dispatch(editInfo)
	return nil
}

// DeleteForward deletes the selection, or the rune after the cursor.
func (o *Operations) DeleteForward() error {
	if deleted, err := o.deleteSelection(); deleted || err != nil {
		return err
	}

	buf := o.editor.GetBuffer()
	start := o.editor.GetCursor()
	end := start
	lineBytes, err := buf.Line(start.Line)
	if err != nil {
		return fmt.Errorf("cannot get current line %d: %w", start.Line, err)
	}

	switch {
	case start.Col < utf8.RuneCount(lineBytes):
		end.Col++
	case start.Line < buf.LineCount():
		end = types.Position{Line: start.Line + 1, Col: 0}
	default:
		return nil // At end of buffer, nothing to delete
	}

	editInfo, err := buf.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}
	o.editor.SetCursor(start)
	o.dispatch(editInfo)
	return nil
}

func (o *Operations) dispatch(editInfo types.EditInfo) {
	logger.DebugTagf("editor", "TextOps: edit %v -> %v", editInfo.Start, editInfo.NewEnd)
	if em := o.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	}
}

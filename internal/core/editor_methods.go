package core

import (
	"github.com/bethropolis/quill/internal/core/cursor"
	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// --- Cursor and viewport ---

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.cursorManager.GetPosition()
}

// SetCursor moves the cursor, clamped into the document.
func (e *Editor) SetCursor(pos types.Position) {
	before := e.GetCursor()
	e.cursorManager.SetPosition(pos)
	e.cursorMoved(before)
}

func (e *Editor) cursorMoved(before types.Position) {
	after := e.GetCursor()
	if after != before {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: after})
	}
}

// afterMove extends an active selection to the cursor and reports the move.
func (e *Editor) afterMove(before types.Position, what string) {
	if e.selectionManager.IsSelecting() {
		e.selectionManager.UpdateSelectionEnd()
	}
	logger.DebugTagf("editor", "%s: %v -> %v", what, before, e.GetCursor())
	e.cursorMoved(before)
}

// MoveCursor moves by whole lines and runes, wrapping across line ends.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	before := e.GetCursor()
	e.cursorManager.Move(deltaLine, deltaCol)
	e.afterMove(before, "MoveCursor")
}

// PageMove moves a page down (+1) or up (-1).
func (e *Editor) PageMove(deltaPages int) {
	before := e.GetCursor()
	e.cursorManager.PageMove(deltaPages)
	e.afterMove(before, "PageMove")
}

// Home moves to the first non-blank rune, then to column 0.
func (e *Editor) Home() {
	before := e.GetCursor()
	e.cursorManager.MoveToLineStart()
	e.afterMove(before, "Home")
}

// End moves past the last rune of the line.
func (e *Editor) End() {
	before := e.GetCursor()
	e.cursorManager.MoveToLineEnd()
	e.afterMove(before, "End")
}

// SetViewSize updates the text area dimensions.
func (e *Editor) SetViewSize(width, height int) {
	e.cursorManager.SetViewSize(width, height)
}

// GetViewport returns the first visible line and the first visible screen column.
func (e *Editor) GetViewport() (top, left int) {
	return e.cursorManager.GetViewport()
}

// ScrollToCursor keeps the cursor inside the viewport.
func (e *Editor) ScrollToCursor() {
	e.cursorManager.ScrollToCursor()
}

// SetWrap turns soft wrapping on or off.
func (e *Editor) SetWrap(wrap bool) {
	e.cursorManager.SetWrap(wrap)
}

// Wrap reports whether long lines are soft wrapped.
func (e *Editor) Wrap() bool {
	return e.cursorManager.Wrap()
}

// ToggleWrap flips soft wrapping and returns the new setting.
func (e *Editor) ToggleWrap() bool {
	e.SetWrap(!e.Wrap())
	logger.DebugTagf("editor", "Editor: wrap %v", e.Wrap())
	return e.Wrap()
}

// DisplayRows returns the screen rows a 1-based line takes in the view.
func (e *Editor) DisplayRows(line int) int {
	return e.cursorManager.Rows(line)
}

// VisualCol returns the screen column of col on a 1-based line.
func (e *Editor) VisualCol(line, col int) int {
	lineBytes, err := e.buffer.Line(line)
	if err != nil {
		return 0
	}
	return cursor.VisualCol(lineBytes, col, e.tabWidth)
}

// --- Selection ---

func (e *Editor) HasSelection() bool {
	return e.selectionManager.HasSelection()
}

// GetSelection returns the normalized selection, ok false when empty.
func (e *Editor) GetSelection() (start types.Position, end types.Position, ok bool) {
	return e.selectionManager.GetSelection()
}

func (e *Editor) ClearSelection() {
	e.selectionManager.ClearSelection()
}

// StartOrUpdateSelection anchors a selection before a Shift+movement.
func (e *Editor) StartOrUpdateSelection() {
	e.selectionManager.StartOrUpdateSelection()
}

// SetSelection selects [start, end).
func (e *Editor) SetSelection(start, end types.Position) {
	e.selectionManager.Set(e.buffer.Clamp(start), e.buffer.Clamp(end))
}

// SelectAll selects the whole document and puts the cursor at its end.
func (e *Editor) SelectAll() {
	end := e.buffer.End()
	e.selectionManager.Set(types.Position{Line: 1, Col: 0}, end)
	e.SetCursor(end)
}

// --- Typing ---

func (e *Editor) InsertRune(r rune) error { return e.textOps.InsertRune(r) }
func (e *Editor) InsertNewLine() error    { return e.textOps.InsertNewLine() }
func (e *Editor) InsertTab() error        { return e.textOps.InsertTab() }
func (e *Editor) DeleteBackward() error   { return e.textOps.DeleteBackward() }
func (e *Editor) DeleteForward() error    { return e.textOps.DeleteForward() }

// --- Clipboard ---

// Cut checkpoints, copies the selection and deletes it.
func (e *Editor) Cut() (bool, error) {
	return e.clipboardManager.Cut()
}

// Copy writes the selection to the clipboard.
func (e *Editor) Copy() (bool, error) {
	return e.clipboardManager.Copy()
}

// Paste checkpoints, clears redo and inserts the clipboard text.
func (e *Editor) Paste() (bool, error) {
	return e.clipboardManager.Paste()
}

// --- History ---

// Checkpoint records the current text for undo. It reports false when the
// text matches the latest checkpoint.
func (e *Editor) Checkpoint() bool {
	return e.historyManager.Checkpoint(e.buffer.Text())
}

// Undo restores the latest checkpoint. It reports false when there was
// nothing to restore.
func (e *Editor) Undo() bool {
	restored, ok := e.historyManager.Undo(e.buffer.Text())
	if !ok {
		logger.DebugTagf("history", "Undo: nothing to restore")
		return false
	}
	e.replaceAll(restored)
	return true
}

// Redo reapplies the latest undone text. It reports false when the redo
// stack is empty.
func (e *Editor) Redo() bool {
	restored, ok := e.historyManager.Redo(e.buffer.Text())
	if !ok {
		logger.DebugTagf("history", "Redo: nothing to restore")
		return false
	}
	e.replaceAll(restored)
	return true
}

// --- Search and replace ---

func (e *Editor) SearchOptions() find.Options {
	return e.findManager.Options()
}

func (e *Editor) SetSearchOptions(opts find.Options) {
	e.findManager.SetOptions(opts)
}

// Search compiles query and finds every match without moving the cursor.
func (e *Editor) Search(query string, opts find.Options) (find.MatchSet, error) {
	return e.findManager.Search(query, opts)
}

// Navigate steps to the next match in dir and returns the span to reveal.
func (e *Editor) Navigate(dir find.Direction) (types.Span, bool) {
	return e.findManager.Navigate(dir)
}

// Find searches and then navigates, or highlights every match in match-all mode.
func (e *Editor) Find(query string, opts find.Options) (find.Result, error) {
	if !opts.MatchAll {
		e.selectionManager.ClearSelection()
	}
	return e.findManager.Find(query, opts)
}

// SearchHighlights returns the spans drawn as search selections.
func (e *Editor) SearchHighlights() []types.Span {
	return e.findManager.Highlights()
}

// ClearSearchHighlights removes the search selections.
func (e *Editor) ClearSearchHighlights() {
	e.findManager.ClearHighlights()
}

// prepareReplace checkpoints before a replace that will edit the buffer.
func (e *Editor) prepareReplace(replacement string, all bool) {
	if find.ValidateReplacement(replacement) != nil {
		return
	}
	fm := e.findManager
	if len(fm.Matches()) == 0 || (!all && fm.Cursor() < 0) {
		return
	}
	e.Checkpoint()
	e.selectionManager.ClearSelection()
}

// ReplaceOne replaces the current match. It can be undone.
func (e *Editor) ReplaceOne(replacement string) (find.ReplaceResult, error) {
	e.prepareReplace(replacement, false)
	return e.findManager.ReplaceOne(replacement)
}

// ReplaceAll replaces every match. It can be undone.
func (e *Editor) ReplaceAll(replacement string) (find.ReplaceResult, error) {
	e.prepareReplace(replacement, true)
	return e.findManager.ReplaceAll(replacement)
}

// Replace replaces every match in match-all mode and the current one otherwise.
func (e *Editor) Replace(replacement string) (find.ReplaceResult, error) {
	if e.findManager.Options().MatchAll {
		return e.ReplaceAll(replacement)
	}
	return e.ReplaceOne(replacement)
}

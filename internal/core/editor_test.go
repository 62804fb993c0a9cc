package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/event"
	hl "github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/types"
)

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func newTestEditor(t *testing.T, text string) *Editor {
	t.Helper()
	h, err := hl.NewHighlighter("chroma")
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Highlighter = h
	e := NewEditor(nil, nil, opts)
	e.Load(text, "")
	return e
}

func typeString(t *testing.T, e *Editor, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, e.InsertRune(r))
	}
}

func TestLoadResetsHistoryAndModified(t *testing.T) {
	e := newTestEditor(t, "one")
	typeString(t, e, " two")
	require.True(t, e.IsModified())
	require.Equal(t, 1, e.GetHistoryManager().UndoLen())

	e.Load("fresh", "notes.txt")
	assert.Equal(t, "fresh", e.Text())
	assert.False(t, e.IsModified())
	assert.False(t, e.GetHistoryManager().CanUndo())
	assert.False(t, e.GetHistoryManager().CanRedo())
	assert.Equal(t, pos(1, 0), e.GetCursor())
}

func TestTypingCheckpointsAtWordBoundaries(t *testing.T) {
	e := newTestEditor(t, "")
	typeString(t, e, "foo bar")
	assert.Equal(t, "foo bar", e.Text())
	assert.Equal(t, 1, e.GetHistoryManager().UndoLen())

	require.True(t, e.Undo())
	assert.Equal(t, "foo", e.Text())

	require.True(t, e.Redo())
	assert.Equal(t, "foo bar", e.Text())
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	e := newTestEditor(t, "keep")
	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
	assert.Equal(t, "keep", e.Text())
}

func TestUndoThenRedoRestoresText(t *testing.T) {
	e := newTestEditor(t, "")
	typeString(t, e, "a b c")
	before := e.Text()

	require.True(t, e.Undo())
	require.True(t, e.Redo())
	assert.Equal(t, before, e.Text())
}

func TestInsertNewLineAndTab(t *testing.T) {
	e := newTestEditor(t, "ab")
	e.SetCursor(pos(1, 1))

	require.NoError(t, e.InsertNewLine())
	assert.Equal(t, "a\nb", e.Text())
	assert.Equal(t, pos(2, 0), e.GetCursor())

	require.NoError(t, e.InsertTab())
	assert.Equal(t, "a\n    b", e.Text())
	assert.Equal(t, pos(2, 4), e.GetCursor())
}

func TestDeleteJoinsLines(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")

	e.SetCursor(pos(2, 0))
	require.NoError(t, e.DeleteBackward())
	assert.Equal(t, "abcd", e.Text())
	assert.Equal(t, pos(1, 2), e.GetCursor())

	require.NoError(t, e.InsertNewLine())
	e.SetCursor(pos(1, 2))
	require.NoError(t, e.DeleteForward())
	assert.Equal(t, "abcd", e.Text())

	e.SetCursor(pos(1, 0))
	require.NoError(t, e.DeleteBackward())
	e.SetCursor(pos(1, 4))
	require.NoError(t, e.DeleteForward())
	assert.Equal(t, "abcd", e.Text())
}

func TestTypingReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.SetSelection(pos(1, 0), pos(1, 3))

	require.NoError(t, e.InsertRune('J'))
	assert.Equal(t, "Jlo", e.Text())
	assert.Equal(t, pos(1, 1), e.GetCursor())
	assert.False(t, e.HasSelection())
}

func TestSoftIndentOnlyInLexedMode(t *testing.T) {
	e := newTestEditor(t, "")
	require.NoError(t, e.InsertRune(' '))
	assert.Equal(t, " ", e.Text())

	e.Load("", "script.py")
	e.DetectMode("script.py")
	require.Equal(t, hl.Lexed, e.Mode())

	require.NoError(t, e.InsertRune(' '))
	assert.Equal(t, "  ", e.Text())
	require.NoError(t, e.InsertRune(' '))
	assert.Equal(t, "    ", e.Text())

	require.NoError(t, e.DeleteBackward())
	assert.Equal(t, "  ", e.Text())

	typeString(t, e, "x")
	require.NoError(t, e.InsertRune(' '))
	assert.Equal(t, "  x ", e.Text())
}

func TestDetectAndToggleMode(t *testing.T) {
	e := newTestEditor(t, "x = 1")
	var modes []string
	e.GetEventManager().Subscribe(event.TypeModeChanged, func(ev event.Event) bool {
		modes = append(modes, ev.Data.(event.ModeChangedData).Language)
		return false
	})

	e.DetectMode("notes.txt")
	assert.Equal(t, hl.PlainText, e.Mode())
	assert.Empty(t, e.Highlight())

	assert.Equal(t, hl.Lexed, e.ToggleMode())
	assert.Equal(t, lang.Python, e.Language())
	assert.NotEmpty(t, e.Highlight())

	assert.Equal(t, hl.PlainText, e.ToggleMode())
	assert.Equal(t, []string{"", "Python", ""}, modes)
}

func TestHighlightDefinition(t *testing.T) {
	e := newTestEditor(t, "def foo():\n    self.__init__()")
	e.SetMode(hl.Lexed, lang.Python)

	got := map[string]hl.Category{}
	for _, tag := range e.Highlight() {
		text, err := e.GetBuffer().Slice(tag.Span.Start, tag.Span.End)
		require.NoError(t, err)
		got[text] = tag.Category
	}
	assert.Equal(t, hl.CategoryKeyword, got["def"])
	assert.Equal(t, hl.CategoryFunctionName, got["foo"])
	assert.Equal(t, hl.CategorySelf, got["self"])
	assert.Equal(t, hl.CategoryDunder, got["__init__"])
	assert.Equal(t, hl.CategoryOperator, got[":"])
	assert.Equal(t, hl.CategoryOperator, got["("])

	ranges := e.GetSyntaxHighlightsForLine(1)
	require.NotEmpty(t, ranges)
	assert.Equal(t, hl.LineRange{StartCol: 0, EndCol: 3, Category: hl.CategoryKeyword}, ranges[0])
}

func TestSelectionFollowsMovement(t *testing.T) {
	e := newTestEditor(t, "abcdef")
	e.StartOrUpdateSelection()
	e.MoveCursor(0, 2)
	e.MoveCursor(0, 1)

	start, end, ok := e.GetSelection()
	require.True(t, ok)
	assert.Equal(t, pos(1, 0), start)
	assert.Equal(t, pos(1, 3), end)

	e.ClearSelection()
	e.MoveCursor(0, 1)
	assert.False(t, e.HasSelection())
}

func TestCursorMovedEvents(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")
	var moves []types.Position
	e.GetEventManager().Subscribe(event.TypeCursorMoved, func(ev event.Event) bool {
		moves = append(moves, ev.Data.(event.CursorMovedData).NewPosition)
		return false
	})

	e.MoveCursor(1, 0)
	e.End()
	e.End()
	e.Home()
	assert.Equal(t, []types.Position{pos(2, 0), pos(2, 2), pos(2, 0)}, moves)
}

func TestSelectAllCopyPaste(t *testing.T) {
	e := newTestEditor(t, "one\ntwo")
	e.SelectAll()
	assert.Equal(t, pos(2, 3), e.GetCursor())

	ok, err := e.Copy()
	require.NoError(t, err)
	require.True(t, ok)

	e.ClearSelection()
	ok, err = e.Paste()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one\ntwoone\ntwo", e.Text())

	require.True(t, e.Undo())
	assert.Equal(t, "one\ntwo", e.Text())
}

func TestCutCanBeUndone(t *testing.T) {
	e := newTestEditor(t, "keep cut")
	e.SetSelection(pos(1, 4), pos(1, 8))

	ok, err := e.Cut()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "keep", e.Text())

	require.True(t, e.Undo())
	assert.Equal(t, "keep cut", e.Text())
}

func TestFindSelectsMatch(t *testing.T) {
	e := newTestEditor(t, "foo x foo")

	res, err := e.Find("foo", find.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.Bell)
	assert.Equal(t, 0, res.Cursor)

	start, end, ok := e.GetSelection()
	require.True(t, ok)
	assert.Equal(t, pos(1, 0), start)
	assert.Equal(t, pos(1, 3), end)
	assert.Equal(t, pos(1, 3), e.GetCursor())

	reveal, ok := e.Navigate(find.Forward)
	require.True(t, ok)
	assert.Equal(t, types.Span{Start: pos(1, 6), End: pos(1, 9)}, reveal)
}

func TestFindValidation(t *testing.T) {
	e := newTestEditor(t, "text")
	_, err := e.Find("", find.DefaultOptions())
	assert.ErrorIs(t, err, find.ErrEmptyQuery)
	_, err = e.Find("  ", find.DefaultOptions())
	assert.ErrorIs(t, err, find.ErrWhitespaceOnlyQuery)
}

func TestReplaceAllCanBeUndone(t *testing.T) {
	e := newTestEditor(t, "a a a")
	_, err := e.Search("a", find.DefaultOptions())
	require.NoError(t, err)

	res, err := e.ReplaceAll("bb")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Replaced)
	assert.Equal(t, "bb bb bb", e.Text())
	assert.Len(t, e.GetFindManager().Matches(), 0)

	require.True(t, e.Undo())
	assert.Equal(t, "a a a", e.Text())
}

func TestReplaceOneMovesCursor(t *testing.T) {
	e := newTestEditor(t, "the cat sat")
	_, err := e.Find("cat", find.DefaultOptions())
	require.NoError(t, err)

	res, err := e.Replace("tiger")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replaced)
	assert.Equal(t, "the tiger sat", e.Text())
	assert.Equal(t, pos(1, 9), e.GetCursor())
	assert.Equal(t, 1, e.GetHistoryManager().UndoLen())
}

func TestReplaceWithoutMatchDoesNotCheckpoint(t *testing.T) {
	e := newTestEditor(t, "nothing here")
	_, err := e.Search("zzz", find.DefaultOptions())
	require.NoError(t, err)

	res, err := e.ReplaceOne("x")
	require.NoError(t, err)
	assert.True(t, res.Bell)
	assert.Equal(t, 0, e.GetHistoryManager().UndoLen())

	_, err = e.ReplaceAll("has space")
	assert.ErrorIs(t, err, find.ErrWhitespaceReplacement)
}

func TestSetTextKeepsHistory(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.Checkpoint()
	e.SetCursor(pos(1, 3))

	e.SetText("x")
	assert.Equal(t, "x", e.Text())
	assert.Equal(t, pos(1, 1), e.GetCursor())
	assert.True(t, e.GetHistoryManager().CanUndo())
}

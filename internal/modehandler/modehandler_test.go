package modehandler

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/statusbar"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/types"
)

type harness struct {
	mh      *ModeHandler
	editor  *core.Editor
	status  *statusbar.StatusBar
	quit    chan struct{}
	beeps   int
	saves   int
	saveErr error
	path    string
	opened  []string
	recent  []string
}

func newHarness(t *testing.T, text string) *harness {
	t.Helper()
	h := &harness{
		editor: core.NewEditor(nil, nil, core.DefaultOptions()),
		status: statusbar.New(statusbar.ConfigFromTheme(&theme.Light)),
		quit:   make(chan struct{}),
		path:   "test.txt",
	}
	h.editor.Load(text, "test.txt")
	save := func() (string, error) {
		h.saves++
		if h.saveErr != nil {
			return "", h.saveErr
		}
		h.editor.MarkSaved(h.path)
		return h.path, nil
	}
	h.mh = New(Config{
		Editor:         h.editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      h.status,
		QuitSignal:     h.quit,
		FilePath:       func() string { return h.path },
		Save:           save,
		SaveAs: func(path string) (string, error) {
			old := h.path
			h.path = path
			saved, err := save()
			if err != nil {
				h.path = old
			}
			return saved, err
		},
		Open: func(path string) error {
			if path == "missing.txt" {
				return errors.New("file not found")
			}
			h.opened = append(h.opened, path)
			h.path = path
			h.editor.Load("opened "+path, path)
			return nil
		},
		NewFile: func() {
			h.path = ""
			h.editor.Load("", "")
		},
		RecentFiles: func() []string { return h.recent },
		ToggleTheme: func() string { return "dark" },
		Beep:        func() { h.beeps++ },
	})
	return h
}

func (h *harness) key(k tcell.Key, mod tcell.ModMask) bool {
	return h.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, mod))
}

func (h *harness) ctrl(k tcell.Key) bool { return h.key(k, tcell.ModCtrl) }

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) alt(r rune) {
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModAlt))
}

func (h *harness) message() string {
	return h.status.Message()
}

func (h *harness) quitClosed() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func TestTypingAndUndo(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("hello world")
	assert.Equal(t, "hello world", h.editor.Text())

	h.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, "hello", h.editor.Text())
	h.ctrl(tcell.KeyCtrlY)
	assert.Equal(t, "hello world", h.editor.Text())

	h.ctrl(tcell.KeyCtrlY)
	assert.Equal(t, "Nothing to redo", h.message())
}

func TestShiftMovementSelects(t *testing.T) {
	h := newHarness(t, "abcdef")
	h.key(tcell.KeyRight, tcell.ModShift)
	h.key(tcell.KeyRight, tcell.ModShift)

	start, end, ok := h.editor.GetSelection()
	require.True(t, ok)
	assert.Equal(t, pos(1, 0), start)
	assert.Equal(t, pos(1, 2), end)

	h.key(tcell.KeyRight, tcell.ModNone)
	assert.False(t, h.editor.HasSelection())
}

func TestQuitAsksAgainWithUnsavedChanges(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("x")

	h.ctrl(tcell.KeyCtrlQ)
	assert.False(t, h.quitClosed())
	assert.Contains(t, h.message(), "Unsaved changes")

	// Any other action resets the confirmation
	h.key(tcell.KeyLeft, tcell.ModNone)
	h.ctrl(tcell.KeyCtrlQ)
	assert.False(t, h.quitClosed())

	h.ctrl(tcell.KeyCtrlQ)
	assert.True(t, h.quitClosed())
	assert.NotPanics(t, func() { h.ctrl(tcell.KeyCtrlQ) })
}

func TestSaveThenQuit(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("x")

	h.ctrl(tcell.KeyCtrlS)
	assert.Equal(t, 1, h.saves)
	assert.Equal(t, "Saved test.txt", h.message())

	h.ctrl(tcell.KeyCtrlQ)
	assert.True(t, h.quitClosed())
}

func TestSaveFailureIsReported(t *testing.T) {
	h := newHarness(t, "")
	h.saveErr = errors.New("disk full")
	h.ctrl(tcell.KeyCtrlS)
	assert.Equal(t, "Save FAILED: disk full", h.message())
}

func TestFindPrompt(t *testing.T) {
	h := newHarness(t, "foo bar foo")

	h.ctrl(tcell.KeyCtrlF)
	require.Equal(t, ModeFind, h.mh.GetCurrentMode())
	h.typeText("foo")
	assert.Equal(t, "Find [word wrap fwd]: foo", h.mh.Prompt())

	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Match 1 of 2", h.message())
	assert.Equal(t, pos(1, 3), h.editor.GetCursor())

	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Match 2 of 2", h.message())
	assert.Equal(t, pos(1, 11), h.editor.GetCursor())

	h.key(tcell.KeyEscape, tcell.ModNone)
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())

	// Matches survive the prompt for find next
	h.ctrl(tcell.KeyCtrlL)
	assert.Equal(t, "Match 1 of 2", h.message())
}

func TestFindPromptErrorsAndBell(t *testing.T) {
	h := newHarness(t, "foo")
	h.ctrl(tcell.KeyCtrlF)

	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Type something to search for", h.message())
	assert.Equal(t, 0, h.beeps)

	h.typeText("zzz")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, 1, h.beeps)
	assert.Equal(t, "Pattern not found: zzz", h.message())

	h.key(tcell.KeyBackspace2, tcell.ModNone)
	assert.Equal(t, "zz", h.mh.GetFindBuffer())
}

func TestOptionToggles(t *testing.T) {
	h := newHarness(t, "")
	h.ctrl(tcell.KeyCtrlF)
	h.alt('w')
	h.alt('a')
	h.alt('u')

	opts := h.editor.SearchOptions()
	assert.False(t, opts.WholeWord)
	assert.True(t, opts.MatchAll)
	assert.Equal(t, "Find [wrap all back]: ", h.mh.Prompt())
}

func TestReplaceOneAtATime(t *testing.T) {
	h := newHarness(t, "cat dog cat")
	h.ctrl(tcell.KeyCtrlF)
	h.typeText("cat")
	h.key(tcell.KeyEnter, tcell.ModNone)

	h.ctrl(tcell.KeyCtrlR)
	require.Equal(t, ModeReplace, h.mh.GetCurrentMode())
	h.typeText("cow")
	assert.Equal(t, `Replace "cat" [word wrap fwd] with: cow`, h.mh.Prompt())

	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "cow dog cat", h.editor.Text())
	assert.Equal(t, ModeReplace, h.mh.GetCurrentMode())

	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "cow dog cow", h.editor.Text())
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Equal(t, "Replaced the last match", h.message())

	h.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, "cow dog cat", h.editor.Text())
}

func TestReplaceAllInMatchAllMode(t *testing.T) {
	h := newHarness(t, "a b a b a")
	h.ctrl(tcell.KeyCtrlF)
	h.alt('a')
	h.typeText("a")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "3 matches", h.message())

	h.ctrl(tcell.KeyCtrlR)
	h.typeText("z")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "z b z b z", h.editor.Text())
	assert.Equal(t, "Replaced 3 occurrences", h.message())
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
}

func TestReplaceRejectsWhitespace(t *testing.T) {
	h := newHarness(t, "cat")
	h.ctrl(tcell.KeyCtrlF)
	h.typeText("cat")
	h.ctrl(tcell.KeyCtrlR)
	h.typeText("big cat")
	h.key(tcell.KeyEnter, tcell.ModNone)

	assert.Equal(t, "Replacement must not contain whitespace", h.message())
	assert.Equal(t, "cat", h.editor.Text())
	assert.Equal(t, ModeReplace, h.mh.GetCurrentMode())
}

func TestReplaceWithoutQueryBeeps(t *testing.T) {
	h := newHarness(t, "cat")
	h.ctrl(tcell.KeyCtrlR)
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Equal(t, 1, h.beeps)
}

func TestToggleModeAndTheme(t *testing.T) {
	h := newHarness(t, "x = 1")
	h.alt('m')
	assert.Equal(t, "Mode: Python", h.message())
	h.alt('m')
	assert.Equal(t, "Mode: Plain Text", h.message())

	h.ctrl(tcell.KeyCtrlT)
	assert.Equal(t, "Wrap: on", h.message())
	assert.True(t, h.editor.Wrap())
	h.ctrl(tcell.KeyCtrlT)
	assert.Equal(t, "Wrap: off", h.message())

	h.ctrl(tcell.KeyCtrlG)
	assert.Equal(t, "Theme: dark", h.message())
}

func TestEscapeClearsHighlightsThenSelection(t *testing.T) {
	h := newHarness(t, "foo foo")
	h.ctrl(tcell.KeyCtrlF)
	h.typeText("foo")
	h.key(tcell.KeyEnter, tcell.ModNone)
	h.key(tcell.KeyEscape, tcell.ModNone)
	require.NotEmpty(t, h.editor.SearchHighlights())

	assert.True(t, h.key(tcell.KeyEscape, tcell.ModNone))
	assert.Empty(t, h.editor.SearchHighlights())
	assert.True(t, h.editor.HasSelection())

	assert.True(t, h.key(tcell.KeyEscape, tcell.ModNone))
	assert.False(t, h.editor.HasSelection())
	assert.False(t, h.key(tcell.KeyEscape, tcell.ModNone))
}

func TestErrorNoticeStaysUntilNextKey(t *testing.T) {
	h := newHarness(t, "cat")
	h.ctrl(tcell.KeyCtrlF)
	h.typeText("   ")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Search text is only whitespace", h.message())

	// A notice does not expire on its own
	h.status.Text()
	assert.Equal(t, "Search text is only whitespace", h.message())

	// The next key clears it and is still handled
	assert.True(t, h.key(tcell.KeyBackspace2, tcell.ModNone))
	assert.Empty(t, h.message())
	assert.Equal(t, "  ", h.mh.GetFindBuffer())
}

func TestSaveUntitledPromptsForPath(t *testing.T) {
	h := newHarness(t, "")
	h.ctrl(tcell.KeyCtrlN)
	require.Equal(t, "", h.path)
	h.typeText("x")

	h.ctrl(tcell.KeyCtrlS)
	require.Equal(t, ModeSaveAs, h.mh.GetCurrentMode())
	assert.Equal(t, 0, h.saves)
	assert.Equal(t, "Save as: ", h.mh.Prompt())

	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Type a file name", h.message())
	assert.Equal(t, ModeSaveAs, h.mh.GetCurrentMode())

	h.typeText("notes.txt")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Equal(t, "notes.txt", h.path)
	assert.Equal(t, 1, h.saves)
	assert.Equal(t, "Saved notes.txt", h.message())
	assert.False(t, h.editor.IsModified())
}

func TestSaveAsKeepsPathOnFailure(t *testing.T) {
	h := newHarness(t, "x")
	h.ctrl(tcell.KeyCtrlW)
	require.Equal(t, ModeSaveAs, h.mh.GetCurrentMode())
	assert.Equal(t, "Save as: test.txt", h.mh.Prompt())

	h.saveErr = errors.New("read-only")
	h.key(tcell.KeyBackspace2, tcell.ModNone)
	h.key(tcell.KeyBackspace2, tcell.ModNone)
	h.key(tcell.KeyBackspace2, tcell.ModNone)
	h.typeText("md")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Save FAILED: read-only", h.message())
	assert.Equal(t, "test.txt", h.path)
	assert.Equal(t, ModeSaveAs, h.mh.GetCurrentMode())

	h.key(tcell.KeyEscape, tcell.ModNone)
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Empty(t, h.mh.Prompt())
}

func TestOpenCyclesRecentFiles(t *testing.T) {
	h := newHarness(t, "")
	h.recent = []string{"/tmp/b.py", "/tmp/a.txt"}

	h.ctrl(tcell.KeyCtrlO)
	require.Equal(t, ModeOpen, h.mh.GetCurrentMode())
	h.key(tcell.KeyUp, tcell.ModNone)
	assert.Equal(t, "Open: /tmp/b.py", h.mh.Prompt())
	h.key(tcell.KeyUp, tcell.ModNone)
	h.key(tcell.KeyUp, tcell.ModNone)
	assert.Equal(t, "Open: /tmp/a.txt", h.mh.Prompt(), "stops at the oldest entry")
	h.key(tcell.KeyDown, tcell.ModNone)
	h.key(tcell.KeyDown, tcell.ModNone)
	assert.Equal(t, "Open: ", h.mh.Prompt())

	h.key(tcell.KeyUp, tcell.ModNone)
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Equal(t, []string{"/tmp/b.py"}, h.opened)
	assert.Equal(t, "opened /tmp/b.py", h.editor.Text())
	assert.Equal(t, "Opened /tmp/b.py", h.message())
}

func TestOpenMissingFileKeepsPrompt(t *testing.T) {
	h := newHarness(t, "keep")
	h.ctrl(tcell.KeyCtrlO)
	h.key(tcell.KeyUp, tcell.ModNone)
	assert.Equal(t, "No recent files", h.message())

	h.typeText("missing.txt")
	h.key(tcell.KeyEnter, tcell.ModNone)
	assert.Equal(t, "Open FAILED: file not found", h.message())
	assert.Equal(t, ModeOpen, h.mh.GetCurrentMode())
	assert.Equal(t, "keep", h.editor.Text())
}

func TestNewFileAsksAgainWithUnsavedChanges(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("draft")

	h.ctrl(tcell.KeyCtrlN)
	assert.Equal(t, "Unsaved changes! Press Ctrl+N again to start a new file without saving.", h.message())
	assert.Equal(t, "draft", h.editor.Text())

	// A different guarded action asks on its own
	h.ctrl(tcell.KeyCtrlO)
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Contains(t, h.message(), "Ctrl+O")

	h.ctrl(tcell.KeyCtrlN)
	h.ctrl(tcell.KeyCtrlN)
	assert.Equal(t, "", h.editor.Text())
	assert.Equal(t, "", h.path)
	assert.Equal(t, "New file", h.message())

	// Unmodified documents are replaced straight away
	h.ctrl(tcell.KeyCtrlO)
	assert.Equal(t, ModeOpen, h.mh.GetCurrentMode())
}

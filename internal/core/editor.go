// internal/core/editor.go
package core

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/core/clipboard"
	"github.com/bethropolis/quill/internal/core/cursor"
	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/core/highlight"
	"github.com/bethropolis/quill/internal/core/history"
	"github.com/bethropolis/quill/internal/core/selection"
	"github.com/bethropolis/quill/internal/core/text"
	"github.com/bethropolis/quill/internal/event"
	hl "github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// Options configures a new Editor.
type Options struct {
	TabWidth    int
	ScrollOff   int
	MaxUndo     int
	SoftIndent  bool
	Wrap        bool // Soft wrap long lines
	Search      find.Options
	Clipboard   clipboard.Provider // nil means an internal register
	Highlighter *hl.Highlighter    // nil disables syntax highlighting
}

// DefaultOptions returns the editor defaults without a highlighter.
func DefaultOptions() Options {
	return Options{
		TabWidth:   4,
		ScrollOff:  3,
		MaxUndo:    history.MaxUndo,
		SoftIndent: true,
		Search:     find.DefaultOptions(),
	}
}

// Editor ties the buffer to the managers that act on it. The shell talks
// to the core only through Editor and the event bus.
type Editor struct {
	buffer       buffer.Buffer
	eventManager *event.Manager
	tabWidth     int
	softIndent   bool
	lastLanguage *lang.Language // language restored by ToggleMode

	cursorManager    *cursor.Manager
	selectionManager *selection.Manager
	textOps          *text.Operations
	clipboardManager *clipboard.Manager
	historyManager   *history.Manager
	findManager      *find.Manager
	highlightManager *highlight.Manager
}

// NewEditor creates an Editor over buf. A nil event manager gets a private one.
func NewEditor(buf buffer.Buffer, em *event.Manager, opts Options) *Editor {
	if buf == nil {
		buf = buffer.NewSliceBuffer()
	}
	if em == nil {
		em = event.NewManager()
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	if opts.MaxUndo <= 0 {
		opts.MaxUndo = history.MaxUndo
	}
	hl.RegisterLanguages()

	e := &Editor{
		buffer:       buf,
		eventManager: em,
		tabWidth:     opts.TabWidth,
		softIndent:   opts.SoftIndent,
		lastLanguage: lang.Python,
	}
	e.cursorManager = cursor.NewManager(e, opts.ScrollOff, opts.TabWidth)
	e.cursorManager.SetWrap(opts.Wrap)
	e.selectionManager = selection.NewManager(e)
	e.textOps = text.NewOperations(e)
	e.historyManager = history.NewManager(opts.MaxUndo)
	e.clipboardManager = clipboard.NewManager(e, opts.Clipboard)
	e.findManager = find.NewManager(e, opts.Search)
	e.highlightManager = highlight.NewManager(e, opts.Highlighter)

	logger.DebugTagf("editor", "Editor: created (tab width %d, max undo %d)", opts.TabWidth, opts.MaxUndo)
	return e
}

func (e *Editor) GetBuffer() buffer.Buffer                { return e.buffer }
func (e *Editor) GetEventManager() *event.Manager         { return e.eventManager }
func (e *Editor) GetHistoryManager() *history.Manager     { return e.historyManager }
func (e *Editor) GetFindManager() *find.Manager           { return e.findManager }
func (e *Editor) GetHighlightManager() *highlight.Manager { return e.highlightManager }
func (e *Editor) GetClipboardManager() *clipboard.Manager { return e.clipboardManager }
func (e *Editor) GetSelectionManager() *selection.Manager { return e.selectionManager }
func (e *Editor) GetCursorManager() *cursor.Manager       { return e.cursorManager }
func (e *Editor) TabWidth() int                           { return e.tabWidth }

// SoftIndent reports whether typed spaces and backspaces are paired. It only
// applies in lexed mode.
func (e *Editor) SoftIndent() bool {
	return e.softIndent && e.highlightManager.Mode() == hl.Lexed
}

// Text returns the whole document.
func (e *Editor) Text() string {
	return e.buffer.Text()
}

// SetText replaces the whole document as an edit. History is untouched.
func (e *Editor) SetText(text string) {
	e.replaceAll(text)
}

// replaceAll swaps the document, keeps the cursor where it can and tells
// subscribers which range changed.
func (e *Editor) replaceAll(text string) {
	oldEnd := e.buffer.End()
	e.buffer.SetText(text)
	e.selectionManager.ClearSelection()
	e.cursorManager.SetPosition(e.cursorManager.GetPosition())
	edit := types.EditInfo{Start: types.Position{Line: 1, Col: 0}, OldEnd: oldEnd, NewEnd: e.buffer.End()}
	e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
}

// Load replaces the document with freshly read text. Both history stacks and
// the modified flag are cleared and the cursor returns to the start.
func (e *Editor) Load(text, filePath string) {
	e.buffer.SetText(text)
	e.buffer.SetModified(false)
	e.historyManager.Clear()
	e.selectionManager.ClearSelection()
	e.cursorManager.SetPosition(types.Position{Line: 1, Col: 0})
	logger.DebugTagf("editor", "Editor: loaded %q (%d lines)", filePath, e.buffer.LineCount())
	e.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
}

// MarkSaved clears the modified flag after the shell wrote the document.
func (e *Editor) MarkSaved(filePath string) {
	e.buffer.SetModified(false)
	e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: filePath})
}

// IsModified reports unsaved changes.
func (e *Editor) IsModified() bool {
	return e.buffer.IsModified()
}

// --- Highlight mode ---

// Mode returns the current highlight mode.
func (e *Editor) Mode() hl.Mode {
	return e.highlightManager.Mode()
}

// Language returns the lexed language, or nil in plain text mode.
func (e *Editor) Language() *lang.Language {
	return e.highlightManager.Language()
}

// SetMode switches the highlight mode and re-tags the whole document.
func (e *Editor) SetMode(mode hl.Mode, l *lang.Language) {
	if l != nil {
		e.lastLanguage = l
	}
	e.highlightManager.SetMode(mode, l)
}

// DetectMode picks lexed mode when filePath has a registered language and
// plain text otherwise.
func (e *Editor) DetectMode(filePath string) {
	if l := lang.GetForFile(filePath); l != nil {
		e.SetMode(hl.Lexed, l)
		return
	}
	e.SetMode(hl.PlainText, nil)
}

// ToggleMode flips between plain text and the last lexed language.
func (e *Editor) ToggleMode() hl.Mode {
	if e.Mode() == hl.Lexed {
		e.SetMode(hl.PlainText, nil)
	} else {
		e.SetMode(hl.Lexed, e.lastLanguage)
	}
	return e.Mode()
}

// Highlight returns the whole-document tags for the current mode.
// Plain text mode returns none.
func (e *Editor) Highlight() []hl.Tag {
	return e.highlightManager.Tags()
}

// GetSyntaxHighlightsForLine returns the ranges drawn on a 1-based line.
func (e *Editor) GetSyntaxHighlightsForLine(line int) []hl.LineRange {
	return e.highlightManager.GetHighlightsForLine(line)
}

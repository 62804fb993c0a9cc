package highlight

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/event"
	hl "github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/logger"
)

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetEventManager() *event.Manager
}

// Manager keeps the whole-document syntax tags current. Every buffer
// change or mode switch re-tags the entire text synchronously.
type Manager struct {
	editor      EditorInterface
	highlighter *hl.Highlighter
	mode        hl.Mode
	language    *lang.Language
	tags        []hl.Tag
	byLine      hl.Result
}

// NewManager creates a highlight manager in plain text mode and subscribes
// it to buffer changes.
func NewManager(editor EditorInterface, highlighter *hl.Highlighter) *Manager {
	m := &Manager{
		editor:      editor,
		highlighter: highlighter,
		mode:        hl.PlainText,
		byLine:      make(hl.Result),
	}
	if em := editor.GetEventManager(); em != nil {
		em.Subscribe(event.TypeBufferModified, m.handleBufferChange)
		em.Subscribe(event.TypeBufferLoaded, m.handleBufferChange)
	}
	return m
}

func (m *Manager) handleBufferChange(event.Event) bool {
	m.Refresh()
	return false
}

// Mode returns the current highlight mode.
func (m *Manager) Mode() hl.Mode { return m.mode }

// Language returns the lexed language, or nil in plain text mode.
func (m *Manager) Language() *lang.Language { return m.language }

// SetMode switches between plain text and a lexed language and re-tags.
// Lexed mode without a language falls back to plain text.
func (m *Manager) SetMode(mode hl.Mode, l *lang.Language) {
	if mode == hl.Lexed && l == nil {
		logger.Warnf("Highlight: lexed mode requested without a language, staying in plain text")
		mode = hl.PlainText
	}
	if mode == hl.PlainText {
		l = nil
	}
	m.mode = mode
	m.language = l
	m.Refresh()

	name := ""
	if l != nil {
		name = l.Name
	}
	logger.DebugTagf("highlight", "Highlight: mode %s %s", mode, name)
	if em := m.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeModeChanged, event.ModeChangedData{Language: name})
	}
}

// Refresh re-tags the whole document and returns the new tags.
func (m *Manager) Refresh() []hl.Tag {
	if m.highlighter == nil {
		m.tags, m.byLine = nil, make(hl.Result)
		return nil
	}
	tags, err := m.highlighter.Highlight(m.editor.GetBuffer().Text(), m.mode, m.language)
	if err != nil {
		logger.Warnf("Highlight: %v", err)
		tags = nil
	}
	m.tags = tags
	m.byLine = hl.ByLine(tags)
	return m.Tags()
}

// Tags returns a copy of the current tag list.
func (m *Manager) Tags() []hl.Tag {
	return append([]hl.Tag(nil), m.tags...)
}

// GetHighlightsForLine returns the ranges drawn on a 1-based line.
func (m *Manager) GetHighlightsForLine(line int) []hl.LineRange {
	return m.byLine[line]
}

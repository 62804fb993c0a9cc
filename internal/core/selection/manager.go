package selection

import (
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// Manager handles text selection state and logic.
type Manager struct {
	editor EditorInterface // Interface to get cursor position

	selecting bool
	anchor    types.Position // Fixed end
	head      types.Position // Usually follows cursor
}

// EditorInterface defines what the selection manager needs from editor.
type EditorInterface interface {
	GetCursor() types.Position
}

// NewManager creates a new selection manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// HasSelection returns whether a non-empty range is selected.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.anchor != m.head
}

// GetSelection returns the normalized selection range (start <= end).
// ok is false when nothing, or an empty range, is selected.
func (m *Manager) GetSelection() (start types.Position, end types.Position, ok bool) {
	if !m.HasSelection() {
		return types.Position{}, types.Position{}, false
	}
	span := m.Span()
	return span.Start, span.End, true
}

// Span returns the normalized selection span, empty when nothing is selected.
func (m *Manager) Span() types.Span {
	if !m.selecting {
		return types.Span{}
	}
	return types.Span{Start: m.anchor, End: m.head}.Normalized()
}

// ClearSelection resets the selection state.
func (m *Manager) ClearSelection() {
	if m.selecting {
		logger.DebugTagf("editor", "Selection Manager: Cleared")
	}
	m.selecting = false
	m.anchor = types.Position{}
	m.head = types.Position{}
}

// StartOrUpdateSelection anchors a selection at the cursor if none is active.
// It is called before a Shift+movement moves the cursor.
func (m *Manager) StartOrUpdateSelection() {
	cur := m.editor.GetCursor()
	if !m.selecting {
		m.anchor = cur
		m.selecting = true
		logger.DebugTagf("editor", "Selection Manager: Started at %v", m.anchor)
	}
	m.head = cur
}

// UpdateSelectionEnd moves the free end of the selection to the cursor.
func (m *Manager) UpdateSelectionEnd() {
	if m.selecting {
		m.head = m.editor.GetCursor()
	}
}

// Set selects [start, end) directly. The anchor is start.
func (m *Manager) Set(start, end types.Position) {
	m.anchor = start
	m.head = end
	m.selecting = true
	logger.DebugTagf("editor", "Selection Manager: Set %v", m.Span())
}

// IsSelecting returns the raw selecting flag state.
func (m *Manager) IsSelecting() bool {
	return m.selecting
}

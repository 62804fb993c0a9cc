package clipboard

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/core/history"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// Manager handles cut, copy and paste between the buffer and a Provider.
type Manager struct {
	editor   EditorInterface
	provider Provider
}

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetSelection() (start types.Position, end types.Position, ok bool)
	ClearSelection()
	GetEventManager() *event.Manager
	GetHistoryManager() *history.Manager
}

// NewManager creates a clipboard manager. A nil provider means an internal register.
func NewManager(editor EditorInterface, provider Provider) *Manager {
	if provider == nil {
		provider = &Register{}
	}
	return &Manager{editor: editor, provider: provider}
}

// Provider returns the clipboard backing this manager.
func (m *Manager) Provider() Provider {
	return m.provider
}

// Copy writes the selected text to the clipboard. It reports false when
// nothing is selected.
func (m *Manager) Copy() (bool, error) {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false, nil
	}
	text, err := m.editor.GetBuffer().Slice(start, end)
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text: %w", err)
	}
	if err := m.provider.Write(text); err != nil {
		return false, fmt.Errorf("clipboard write: %w", err)
	}
	logger.DebugTagf("editor", "ClipboardManager: Copied %d bytes", len(text))
	return true, nil
}

// Cut copies the selection, checkpoints and deletes it. A failed copy
// leaves the document and history untouched.
func (m *Manager) Cut() (bool, error) {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false, nil
	}
	if copied, err := m.Copy(); !copied || err != nil {
		return false, err
	}
	buf := m.editor.GetBuffer()
	if h := m.editor.GetHistoryManager(); h != nil {
		h.Checkpoint(buf.Text())
	}

	editInfo, err := buf.Delete(start, end)
	if err != nil {
		return false, fmt.Errorf("buffer delete failed during cut: %w", err)
	}
	m.editor.ClearSelection()
	m.editor.SetCursor(start)
	m.dispatch(editInfo)
	return true, nil
}

// Paste checkpoints, clears redo and inserts the clipboard text with
// trailing whitespace removed, replacing any selection.
func (m *Manager) Paste() (bool, error) {
	content, err := m.provider.Read()
	if err != nil {
		return false, fmt.Errorf("clipboard read: %w", err)
	}
	content = strings.TrimRightFunc(content, unicode.IsSpace)
	if content == "" {
		return false, nil
	}

	buf := m.editor.GetBuffer()
	if h := m.editor.GetHistoryManager(); h != nil {
		h.Checkpoint(buf.Text())
		h.ClearRedo()
	}

	pastePos := m.editor.GetCursor()
	if start, end, ok := m.editor.GetSelection(); ok {
		editInfo, err := buf.Delete(start, end)
		if err != nil {
			return false, fmt.Errorf("failed to delete selection before paste: %w", err)
		}
		m.editor.ClearSelection()
		pastePos = start
		m.dispatch(editInfo)
	}

	editInfo, err := buf.Insert(pastePos, []byte(content))
	if err != nil {
		return false, fmt.Errorf("buffer insert failed during paste: %w", err)
	}
	m.editor.SetCursor(editInfo.NewEnd)

	logger.DebugTagf("editor", "ClipboardManager: Pasted %d bytes at %s", len(content), pastePos)
	m.dispatch(editInfo)
	return true, nil
}

func (m *Manager) dispatch(editInfo types.EditInfo) {
	if em := m.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	}
}

package history

import (
	"github.com/bethropolis/quill/internal/logger"
)

// MaxUndo is the upper bound on undo depth.
const MaxUndo = 25

// Manager keeps full-text snapshots on two bounded stacks.
// It never touches the document itself: callers pass the current text in
// and apply whatever text comes back.
type Manager struct {
	undo  []string
	redo  []string
	limit int
}

// NewManager creates a history manager holding at most limit undo entries.
// Limits outside 1..MaxUndo fall back to MaxUndo.
func NewManager(limit int) *Manager {
	if limit <= 0 || limit > MaxUndo {
		limit = MaxUndo
	}
	return &Manager{
		undo:  make([]string, 0, limit),
		limit: limit,
	}
}

// Checkpoint records text as an undo point and clears the redo stack.
// It returns false when text equals the most recent entry.
func (m *Manager) Checkpoint(text string) bool {
	if n := len(m.undo); n > 0 && m.undo[n-1] == text {
		return false
	}
	m.push(text)
	m.redo = m.redo[:0]
	logger.DebugTagf("history", "checkpoint: undo=%d", len(m.undo))
	return true
}

// push appends to the undo stack, evicting the oldest entry at capacity.
func (m *Manager) push(text string) {
	if len(m.undo) >= m.limit {
		m.undo = append(m.undo[:0], m.undo[1:]...)
	}
	m.undo = append(m.undo, text)
}

// Undo pops the latest snapshot. current is the document text before the undo;
// it moves onto the redo stack. ok is false when there is nothing to restore.
func (m *Manager) Undo(current string) (text string, ok bool) {
	if n := len(m.undo); n > 0 {
		text = m.undo[n-1]
		m.undo = m.undo[:n-1]
		m.redo = append(m.redo, current)
		ok = true
	}
	m.collapseRedo()
	logger.DebugTagf("history", "undo: ok=%v undo=%d redo=%d", ok, len(m.undo), len(m.redo))
	return text, ok
}

// collapseRedo removes a duplicate directly beneath the top of the redo
// stack, then prunes empty entries below the top. An empty top stays so
// that undoing from an empty document can be redone.
func (m *Manager) collapseRedo() {
	if n := len(m.redo); n > 1 && m.redo[n-1] == m.redo[n-2] {
		m.redo = m.redo[:n-1]
	}
	if len(m.redo) < 2 {
		return
	}
	top := m.redo[len(m.redo)-1]
	kept := m.redo[:0]
	for _, entry := range m.redo[:len(m.redo)-1] {
		if entry != "" {
			kept = append(kept, entry)
		}
	}
	m.redo = append(kept, top)
}

// Redo pops the latest undone snapshot. current moves back onto the undo stack.
func (m *Manager) Redo(current string) (text string, ok bool) {
	n := len(m.redo)
	if n == 0 {
		logger.DebugTagf("history", "redo: nothing to redo")
		return "", false
	}
	text = m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.push(current)
	logger.DebugTagf("history", "redo: undo=%d redo=%d", len(m.undo), len(m.redo))
	return text, true
}

// ClearRedo drops every redo entry. Paste uses it after its checkpoint.
func (m *Manager) ClearRedo() {
	m.redo = m.redo[:0]
}

// Clear resets both stacks. Call this on file load.
func (m *Manager) Clear() {
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
	logger.DebugTagf("history", "cleared")
}

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoLen and RedoLen report the stack depths.
func (m *Manager) UndoLen() int { return len(m.undo) }
func (m *Manager) RedoLen() int { return len(m.redo) }

// Limit returns the configured undo capacity.
func (m *Manager) Limit() int { return m.limit }

package cursor

import (
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
	"github.com/rivo/uniseg"
)

// Editor is the interface cursor manager expects from the editor
type Editor interface {
	GetBuffer() buffer.Buffer
}

// Manager handles cursor positioning and viewport management.
type Manager struct {
	editor    Editor
	position  types.Position
	scrollOff int
	tabWidth  int

	viewportTop  int // First visible line (1-based)
	viewportLeft int // First visible screen column
	viewWidth    int
	viewHeight   int
	wrap         bool // Soft wrap; the view never scrolls sideways
}

// NewManager creates a cursor manager at the start of the document.
func NewManager(editor Editor, scrollOff, tabWidth int) *Manager {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &Manager{
		editor:      editor,
		position:    types.Position{Line: 1, Col: 0},
		scrollOff:   max(0, scrollOff),
		tabWidth:    tabWidth,
		viewportTop: 1,
	}
}

// SetViewSize updates the view dimensions and keeps the cursor visible.
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = max(0, width)
	m.viewHeight = max(0, height)
	m.ScrollToCursor()
}

// SetWrap turns soft wrapping of long lines on or off.
func (m *Manager) SetWrap(wrap bool) {
	m.wrap = wrap
	if wrap {
		m.viewportLeft = 0
	}
	m.ScrollToCursor()
}

// Wrap reports whether long lines are soft wrapped.
func (m *Manager) Wrap() bool {
	return m.wrap
}

// Rows returns the number of screen rows line takes. It is 1 without
// wrapping. A wrapped line always keeps room for the cursor after its last
// rune, so a line exactly as wide as the view takes two rows.
func (m *Manager) Rows(line int) int {
	if !m.wrap || m.viewWidth <= 0 {
		return 1
	}
	lineBytes, err := m.editor.GetBuffer().Line(line)
	if err != nil {
		return 1
	}
	return VisualCol(lineBytes, utf8.RuneCount(lineBytes), m.tabWidth)/m.viewWidth + 1
}

// ViewSize returns the view width and height.
func (m *Manager) ViewSize() (int, int) {
	return m.viewWidth, m.viewHeight
}

// GetViewport returns the first visible line and the first visible screen column.
func (m *Manager) GetViewport() (top, left int) {
	return m.viewportTop, m.viewportLeft
}

// TabWidth returns the tab stop width used for screen columns.
func (m *Manager) TabWidth() int {
	return m.tabWidth
}

// GetPosition returns the current cursor position.
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// SetPosition moves the cursor to pos, clamped into the document.
func (m *Manager) SetPosition(pos types.Position) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		logger.Warnf("CursorManager.SetPosition: Buffer is nil")
		return
	}
	m.position = buf.Clamp(pos)
	m.ScrollToCursor()
}

// Move moves the cursor by the given delta. Moving left from the start of a
// line wraps to the end of the previous one and moving right from the end
// wraps to the start of the next.
func (m *Manager) Move(deltaLine, deltaCol int) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	pos := m.position

	if deltaLine == 0 {
		switch {
		case deltaCol > 0 && pos.Col >= m.lineLength(pos.Line) && pos.Line < buf.LineCount():
			m.SetPosition(types.Position{Line: pos.Line + 1, Col: 0})
			return
		case deltaCol < 0 && pos.Col <= 0 && pos.Line > 1:
			m.SetPosition(types.Position{Line: pos.Line - 1, Col: m.lineLength(pos.Line - 1)})
			return
		}
	}

	m.SetPosition(types.Position{Line: pos.Line + deltaLine, Col: pos.Col + deltaCol})
}

// PageMove moves the cursor and viewport by whole view heights.
// deltaPages is +1 for PageDown and -1 for PageUp.
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return
	}
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	m.viewportTop += m.viewHeight * deltaPages
	maxTop := max(1, buf.LineCount()-m.viewHeight+1)
	m.viewportTop = max(1, min(m.viewportTop, maxTop))

	m.Move(m.viewHeight*deltaPages, 0)
}

// MoveToLineStart moves to the first non-blank rune of the line, or to
// column 0 when the cursor is already there.
func (m *Manager) MoveToLineStart() {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return
	}
	lineBytes, err := buf.Line(m.position.Line)
	if err != nil {
		return
	}

	firstNonWS := 0
	for _, ch := range string(lineBytes) {
		if ch != ' ' && ch != '\t' {
			break
		}
		firstNonWS++
	}
	if m.position.Col == firstNonWS {
		firstNonWS = 0
	}
	m.SetPosition(types.Position{Line: m.position.Line, Col: firstNonWS})
}

// MoveToLineEnd moves the cursor past the last rune of the line.
func (m *Manager) MoveToLineEnd() {
	m.SetPosition(types.Position{Line: m.position.Line, Col: m.lineLength(m.position.Line)})
}

func (m *Manager) lineLength(line int) int {
	lineBytes, err := m.editor.GetBuffer().Line(line)
	if err != nil {
		return 0
	}
	return utf8.RuneCount(lineBytes)
}

// ScrollToCursor adjusts the viewport so the cursor stays visible, keeping
// scrollOff lines of context above and below it.
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 || m.viewWidth <= 0 {
		return
	}

	// Scrolloff cannot exceed half the view height
	scrollOff := m.scrollOff
	if scrollOff*2 >= m.viewHeight {
		scrollOff = (m.viewHeight - 1) / 2
	}

	line := m.position.Line
	if line < m.viewportTop+scrollOff {
		m.viewportTop = line - scrollOff
	} else if !m.wrap && line >= m.viewportTop+m.viewHeight-scrollOff {
		m.viewportTop = line - m.viewHeight + 1 + scrollOff
	}
	m.viewportTop = max(1, m.viewportTop)

	cursorScreenCol := 0
	if lineBytes, err := m.editor.GetBuffer().Line(line); err == nil {
		cursorScreenCol = VisualCol(lineBytes, m.position.Col, m.tabWidth)
	} else {
		logger.DebugTagf("editor", "ScrollToCursor: Error getting line %d: %v", line, err)
	}

	if m.wrap {
		m.viewportLeft = 0
		m.viewportTop = max(m.viewportTop, m.lowestTop(line, cursorScreenCol/m.viewWidth, scrollOff))
		return
	}

	if cursorScreenCol < m.viewportLeft {
		m.viewportLeft = cursorScreenCol
	} else if cursorScreenCol >= m.viewportLeft+m.viewWidth {
		m.viewportLeft = cursorScreenCol - m.viewWidth + 1
	}
	m.viewportLeft = max(0, m.viewportLeft)
}

// lowestTop returns the smallest first line that still shows screen row
// row of line, plus up to scrollOff rows below it, in a wrapped view.
func (m *Manager) lowestTop(line, row, scrollOff int) int {
	below := m.Rows(line) - row - 1
	lineCount := m.editor.GetBuffer().LineCount()
	for next := line + 1; below < scrollOff && next <= lineCount; next++ {
		below += m.Rows(next)
	}

	top := line
	used := row + 1 + min(below, scrollOff)
	for top > 1 {
		rows := m.Rows(top - 1)
		if used+rows > m.viewHeight {
			break
		}
		used += rows
		top--
	}
	return top
}

// VisualCol returns the screen column of rune index col within line.
// Grapheme clusters count with their display width and tabs advance to the
// next multiple of tabWidth.
func VisualCol(line []byte, col, tabWidth int) int {
	if col <= 0 {
		return 0
	}
	width := 0
	runeIndex := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() && runeIndex < col {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			width = (width/tabWidth + 1) * tabWidth
		} else {
			width += gr.Width()
		}
		runeIndex += len(runes)
	}
	return width
}

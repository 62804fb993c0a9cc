// Package render draws the editor state onto a tcell screen.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/quill/internal/core"
	hl "github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/types"
)

const lineNumberPadding = 1 // Space between number and text

// GutterWidth returns the width of the line number column for lineCount
// lines, or 0 when the screen is too narrow for it.
func GutterWidth(lineCount, width int) int {
	gutter := len(fmt.Sprint(max(1, lineCount))) + lineNumberPadding
	if gutter >= width {
		return 0
	}
	return gutter
}

// Buffer draws the visible part of the document into the top viewHeight rows.
// Style precedence is syntax, then search highlight, then selection.
func Buffer(screen tcell.Screen, editor *core.Editor, activeTheme *theme.Theme, viewHeight int) {
	if activeTheme == nil {
		logger.Warnf("render.Buffer called with nil theme, using light preset")
		activeTheme = &theme.Light
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	lineNumberStyle := activeTheme.GetStyle(theme.StyleLineNumber)
	selectionStyle := activeTheme.GetStyle(theme.StyleSelection)
	searchStyle := activeTheme.GetStyle(theme.StyleSearchHighlight)

	width, _ := screen.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}

	buf := editor.GetBuffer()
	lineCount := buf.LineCount()
	gutterWidth := GutterWidth(lineCount, width)
	digits := max(0, gutterWidth-lineNumberPadding)
	textAreaWidth := width - gutterWidth
	tabWidth := editor.TabWidth()

	viewTop, viewLeft := editor.GetViewport()
	cursorLine := editor.GetCursor().Line
	selStart, selEnd, selectionActive := editor.GetSelection()
	selection := types.Span{Start: selStart, End: selEnd}
	searchSpans := editor.SearchHighlights()

	wrap := editor.Wrap() && textAreaWidth > 0

	screenY := 0
	for line := viewTop; screenY < viewHeight; line++ {
		rows := 1
		if wrap && line <= lineCount {
			rows = editor.DisplayRows(line)
		}
		for y := screenY; y < min(screenY+rows, viewHeight); y++ {
			for x := 0; x < width; x++ {
				screen.SetContent(x, y, ' ', nil, defaultStyle)
			}
		}
		if line > lineCount {
			screenY++
			continue
		}

		if gutterWidth > 0 {
			style := lineNumberStyle
			if line == cursorLine {
				style = style.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", digits, line) {
				screen.SetContent(i, screenY, r, nil, style)
			}
		}

		lineBytes, err := buf.Line(line)
		if err != nil {
			screenY += rows
			continue
		}
		syntax := hl.Result{line: editor.GetSyntaxHighlightsForLine(line)}

		// place maps a visual column of this line to a screen cell.
		place := func(visualX int) (x, y int, ok bool) {
			if wrap {
				y = screenY + visualX/textAreaWidth
				return visualX%textAreaWidth + gutterWidth, y, y < viewHeight
			}
			x = visualX - viewLeft + gutterWidth
			return x, screenY, x >= gutterWidth && x < width
		}
		visible := func(visualX int) bool {
			if wrap {
				return screenY+visualX/textAreaWidth < viewHeight
			}
			return visualX < viewLeft+textAreaWidth
		}

		visualX := 0
		runeIndex := 0
		gr := uniseg.NewGraphemes(string(lineBytes))
		for gr.Next() && visible(visualX) {
			runes := gr.Runes()
			clusterWidth := gr.Width()
			isTab := len(runes) == 1 && runes[0] == '\t'
			if isTab {
				clusterWidth = (visualX/tabWidth+1)*tabWidth - visualX
			}

			pos := types.Position{Line: line, Col: runeIndex}
			style := defaultStyle
			if cat, ok := syntax.At(line, runeIndex); ok {
				style = activeTheme.GetStyle(string(cat))
			}
			for _, span := range searchSpans {
				if span.Contains(pos) {
					style = searchStyle
					break
				}
			}
			if selectionActive && selection.Contains(pos) {
				style = selectionStyle
			}

			for cell := 0; cell < clusterWidth; cell++ {
				x, y, ok := place(visualX + cell)
				if !ok {
					continue
				}
				switch {
				case isTab || cell > 0:
					screen.SetContent(x, y, ' ', nil, style)
				default:
					screen.SetContent(x, y, runes[0], runes[1:], style)
				}
			}

			visualX += clusterWidth
			runeIndex += len(runes)
		}
		screenY += rows
	}
}

// Cursor positions the terminal cursor, hiding it when it is off screen.
func Cursor(screen tcell.Screen, editor *core.Editor, viewHeight int) {
	width, _ := screen.Size()
	cursor := editor.GetCursor()
	viewTop, viewLeft := editor.GetViewport()
	gutterWidth := GutterWidth(editor.GetBuffer().LineCount(), width)
	textAreaWidth := width - gutterWidth

	visualCol := editor.VisualCol(cursor.Line, cursor.Col)
	screenX := visualCol - viewLeft + gutterWidth
	screenY := cursor.Line - viewTop

	if editor.Wrap() && textAreaWidth > 0 && cursor.Line >= viewTop {
		screenY = visualCol / textAreaWidth
		for line := viewTop; line < cursor.Line && screenY < viewHeight; line++ {
			screenY += editor.DisplayRows(line)
		}
		screenX = visualCol%textAreaWidth + gutterWidth
	}

	if screenX < gutterWidth || screenX >= width || screenY < 0 || screenY >= viewHeight {
		screen.HideCursor()
		return
	}
	screen.ShowCursor(screenX, screenY)
}

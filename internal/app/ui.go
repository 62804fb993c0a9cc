package app

import (
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/render"
)

// viewHeight is the number of rows left for text above the status bar.
func (a *App) viewHeight() int {
	_, height := a.tuiManager.Size()
	return max(0, height-config.StatusBarHeight)
}

// resize tells the editor how much room the text area has. The gutter
// grows with the line count, so this runs before every draw.
func (a *App) resize() {
	width, _ := a.tuiManager.Size()
	gutter := render.GutterWidth(a.editor.GetBuffer().LineCount(), width)
	a.editor.SetViewSize(width-gutter, a.viewHeight())
}

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.resize()
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := a.viewHeight()
	logger.DebugTagf("draw", "drawEditor: screen %dx%d, view height %d", width, height, viewHeight)

	a.tuiManager.Clear()
	render.Buffer(screen, a.editor, a.themeManager.Current(), viewHeight)
	a.statusBar.Draw(screen, width, height)
	render.Cursor(screen, a.editor, viewHeight)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.filePath, a.editor.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetEditorMode(a.modeLabel())
	a.statusBar.SetPrompt(a.modeHandler.Prompt())
}

// modeLabel names the highlight mode, "" for plain text.
func (a *App) modeLabel() string {
	if l := a.editor.Language(); l != nil {
		return l.Name
	}
	return ""
}

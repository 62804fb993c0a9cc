package app

import (
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/statusbar"
	"github.com/bethropolis/quill/internal/theme"
)

// subscribeEvents wires the shell to the editor's event bus.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSavedForStatus)
	a.eventManager.Subscribe(event.TypeModeChanged, a.handleModeChanged)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

// handleCursorMovedForStatus updates the status bar based on cursor position
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.Debugf("App: loaded '%s' (%d lines)", data.FilePath, a.editor.GetBuffer().LineCount())
	}
	a.updateStatusBarContent()
	return false
}

func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	a.statusBar.SetFileInfo(a.filePath, a.editor.IsModified())
	return false
}

func (a *App) handleModeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ModeChangedData); ok {
		a.statusBar.SetEditorMode(data.Language)
	}
	return false
}

// handleThemeChanged restyles the status bar and the cleared background.
func (a *App) handleThemeChanged(e event.Event) bool {
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(current))
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	logger.Debugf("App: theme changed to %s", current.Name)
	return false
}

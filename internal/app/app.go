// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/core/clipboard"
	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/lexer"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/modehandler"
	"github.com/bethropolis/quill/internal/statusbar"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	editor       *core.Editor
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	themeManager *theme.Manager
	recent       *config.RecentFiles
	filePath     string

	// Channels managed by the App
	quit          chan struct{}
	events        chan tcell.Event
	redrawRequest chan struct{}
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	return NewAppWithScreen(cfg, filePath, screen)
}

// NewAppWithScreen creates the application over screen and loads filePath.
// A missing file starts an empty document that saves to filePath.
func NewAppWithScreen(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	// --- Theme ---
	themeManager := theme.NewManager(cfg.ThemesDir())
	if err := themeManager.SetTheme(cfg.Theme.Name); err != nil {
		logger.Warnf("App: %v, keeping %s", err, themeManager.Current().Name)
	}

	tuiManager, err := tui.NewWithScreen(screen, themeManager.Current().GetStyle(theme.StyleDefault))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	// --- Core ---
	hl, err := highlighter.NewHighlighter(cfg.Highlight.Scanner)
	if err != nil {
		logger.Warnf("App: %v, falling back to %s", err, lexer.BackendChroma)
		hl, _ = highlighter.NewHighlighter(lexer.BackendChroma)
	}

	eventManager := event.NewManager()
	editor := core.NewEditor(nil, eventManager, core.Options{
		TabWidth:   cfg.Editor.TabWidth,
		ScrollOff:  cfg.Editor.ScrollOff,
		MaxUndo:    cfg.Editor.MaxUndo,
		SoftIndent: cfg.Editor.SoftIndent,
		Wrap:       cfg.Editor.WordWrap,
		Search: find.Options{
			WholeWord:  cfg.Search.WholeWord,
			WrapAround: cfg.Search.WrapAround,
			MatchAll:   cfg.Search.MatchAll,
			Direction:  find.Forward,
		},
		Clipboard:   clipboard.New(cfg.Editor.SystemClipboard),
		Highlighter: hl,
	})

	recent, err := config.LoadRecentFiles(cfg.RecentFilePath())
	if err != nil {
		logger.Warnf("App: %v", err)
	}

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusbar.New(statusbar.ConfigFromTheme(themeManager.Current())),
		eventManager:  eventManager,
		themeManager:  themeManager,
		recent:        recent,
		filePath:      filePath,
		quit:          make(chan struct{}),
		events:        make(chan tcell.Event),
		redrawRequest: make(chan struct{}, 1),
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
		FilePath:       a.currentPath,
		Save:           a.saveFile,
		SaveAs:         a.saveFileAs,
		Open:           a.openFile,
		NewFile:        a.newFile,
		RecentFiles:    a.recent.List,
		ToggleTheme:    a.toggleTheme,
		Beep:           a.beep,
	})

	a.subscribeEvents()

	if err := a.loadFile(filePath); err != nil {
		tuiManager.Close()
		return nil, err
	}

	a.resize()
	return a, nil
}

// Run starts the application's event and drawing loop. Key handling and
// drawing share this goroutine; the poller only forwards events.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.pollEvents()

	a.statusBar.SetTemporaryMessage("quill - Ctrl+S Save | Ctrl+O Open | Ctrl+N New | Ctrl+Q Quit | Ctrl+F Find | Ctrl+R Replace")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			if a.editor.IsModified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent processes one terminal event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch eventData := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.resize()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(eventData)
	}
	return false
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// toggleTheme switches between light and dark and announces the change.
func (a *App) toggleTheme() string {
	next := a.themeManager.Toggle()
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: next.Name})
	return next.Name
}

// beep rings the terminal bell for searches and replaces that found nothing.
func (a *App) beep() {
	if err := a.tuiManager.Beep(); err != nil {
		logger.Debugf("App: beep failed: %v", err)
	}
}

// GetEditor returns the editor the app drives.
func (a *App) GetEditor() *core.Editor {
	return a.editor
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/core"
	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeFind
	ModeReplace
	ModeSaveAs
	ModeOpen
)

func (m InputMode) String() string {
	switch m {
	case ModeFind:
		return "FIND"
	case ModeReplace:
		return "REPLACE"
	case ModeSaveAs:
		return "SAVE AS"
	case ModeOpen:
		return "OPEN"
	default:
		return "NORMAL"
	}
}

// ModeHandler manages input modes, the find, replace and file prompts and
// the actions they trigger.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	filePath       func() string
	save           func() (string, error)
	saveAs         func(path string) (string, error)
	open           func(path string) error
	newFile        func()
	recentFiles    func() []string
	toggleTheme    func() string
	beep           func()

	currentMode    InputMode
	findBuffer     string
	replaceBuffer  string
	pathBuffer     string
	recentIndex    int          // Entry of recentFiles shown in a path prompt, -1 for none
	confirmPending input.Action // Action waiting for a second press to discard changes
	quitting       bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Closed once to stop the app

	// FilePath returns the document's path, "" while it is untitled.
	FilePath func() string
	// Save writes the document and returns the path it was written to.
	Save func() (string, error)
	// SaveAs writes the document to path, which becomes its new path.
	SaveAs func(path string) (string, error)
	// Open replaces the document with the file at path.
	Open func(path string) error
	// NewFile replaces the document with an empty, untitled one.
	NewFile func()
	// RecentFiles lists recently used paths, newest first. Optional.
	RecentFiles func() []string
	// ToggleTheme switches between the light and dark themes and returns
	// the new theme name.
	ToggleTheme func() string
	// Beep rings the terminal bell. Optional.
	Beep func()
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil ||
		cfg.FilePath == nil || cfg.Save == nil || cfg.SaveAs == nil || cfg.Open == nil || cfg.NewFile == nil ||
		cfg.ToggleTheme == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	beep := cfg.Beep
	if beep == nil {
		beep = func() {}
	}
	recentFiles := cfg.RecentFiles
	if recentFiles == nil {
		recentFiles = func() []string { return nil }
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		filePath:       cfg.FilePath,
		save:           cfg.Save,
		saveAs:         cfg.SaveAs,
		open:           cfg.Open,
		newFile:        cfg.NewFile,
		recentFiles:    recentFiles,
		toggleTheme:    cfg.ToggleTheme,
		beep:           beep,
		currentMode:    ModeNormal,
		recentIndex:    -1,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
// Any key dismisses a notice before it is handled.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "ModeHandler: %s in %s mode", actionEvent.Action, mh.currentMode)
	dismissed := mh.statusBar.DismissNotice()

	var handled bool
	switch mh.currentMode {
	case ModeNormal:
		handled = mh.executeAction(actionEvent)
	case ModeFind:
		handled = mh.handleActionFind(actionEvent)
	case ModeReplace:
		handled = mh.handleActionReplace(actionEvent)
	case ModeSaveAs, ModeOpen:
		handled = mh.handleActionPath(actionEvent)
	default:
		logger.Warnf("ModeHandler: unknown input mode %d", mh.currentMode)
	}
	return handled || dismissed
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetFindBuffer returns the text typed into the find prompt.
func (mh *ModeHandler) GetFindBuffer() string {
	return mh.findBuffer
}

// GetReplaceBuffer returns the text typed into the replace prompt.
func (mh *ModeHandler) GetReplaceBuffer() string {
	return mh.replaceBuffer
}

// Prompt returns the input line for the current mode, or "" in normal mode.
func (mh *ModeHandler) Prompt() string {
	opts := optionsLabel(mh.editor.SearchOptions())
	switch mh.currentMode {
	case ModeFind:
		return fmt.Sprintf("Find [%s]: %s", opts, mh.findBuffer)
	case ModeReplace:
		return fmt.Sprintf("Replace %q [%s] with: %s", mh.findBuffer, opts, mh.replaceBuffer)
	case ModeSaveAs:
		return "Save as: " + mh.pathBuffer
	case ModeOpen:
		return "Open: " + mh.pathBuffer
	default:
		return ""
	}
}

func (mh *ModeHandler) updatePrompt() {
	mh.statusBar.SetPrompt(mh.Prompt())
}

func (mh *ModeHandler) enterMode(mode InputMode) {
	mh.currentMode = mode
	mh.updatePrompt()
	logger.DebugTagf("input", "ModeHandler: entering %s mode", mode)
}

// optionsLabel renders search options as "word wrap fwd".
func optionsLabel(opts find.Options) string {
	var parts []string
	if opts.WholeWord {
		parts = append(parts, "word")
	}
	if opts.WrapAround {
		parts = append(parts, "wrap")
	}
	if opts.MatchAll {
		parts = append(parts, "all")
	}
	if opts.Direction == find.Backward {
		parts = append(parts, "back")
	} else {
		parts = append(parts, "fwd")
	}
	return strings.Join(parts, " ")
}

// requestQuit closes the quit channel once.
func (mh *ModeHandler) requestQuit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

package modehandler

import (
	"strings"

	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
)

func (mh *ModeHandler) startPathPrompt(mode InputMode, initial string) {
	mh.pathBuffer = initial
	mh.recentIndex = -1
	mh.enterMode(mode)
}

// handleActionPath handles actions in the save-as and open prompts.
// Up and Down step through the recent files list.
func (mh *ModeHandler) handleActionPath(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.pathBuffer += string(actionEvent.Rune)
		mh.recentIndex = -1

	case input.ActionDeleteCharBackward:
		mh.pathBuffer = dropLastRune(mh.pathBuffer)
		mh.recentIndex = -1

	case input.ActionMoveUp:
		mh.cycleRecent(1)
	case input.ActionMoveDown:
		mh.cycleRecent(-1)

	case input.ActionInsertNewLine:
		if mh.executePath() {
			mh.cancelPrompt()
			return true
		}

	case input.ActionCancel:
		mh.cancelPrompt()
		return true

	default:
		return false
	}

	mh.updatePrompt()
	return true
}

// cycleRecent moves step entries through the recent files. Stepping
// below the newest entry restores an empty prompt.
func (mh *ModeHandler) cycleRecent(step int) {
	recent := mh.recentFiles()
	if len(recent) == 0 {
		mh.statusBar.SetTemporaryMessage("No recent files")
		return
	}
	mh.recentIndex = min(max(mh.recentIndex+step, -1), len(recent)-1)
	if mh.recentIndex < 0 {
		mh.pathBuffer = ""
		return
	}
	mh.pathBuffer = recent[mh.recentIndex]
}

// executePath saves or opens the typed path. It returns false when the
// prompt should stay open.
func (mh *ModeHandler) executePath() bool {
	path := strings.TrimSpace(mh.pathBuffer)
	if path == "" {
		mh.statusBar.SetNotice("Type a file name")
		return false
	}

	switch mh.currentMode {
	case ModeSaveAs:
		saved, err := mh.saveAs(path)
		if err != nil {
			mh.statusBar.SetNotice("Save FAILED: %v", err)
			return false
		}
		mh.statusBar.SetTemporaryMessage("Saved %s", saved)
	case ModeOpen:
		if err := mh.open(path); err != nil {
			mh.statusBar.SetNotice("Open FAILED: %v", err)
			return false
		}
		mh.statusBar.SetTemporaryMessage("Opened %s", path)
	}
	logger.DebugTagf("input", "ModeHandler: %s %q done", mh.currentMode, path)
	return true
}

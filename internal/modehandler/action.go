package modehandler

import (
	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	actionProcessed := true

	if action.IsMovement() {
		if actionEvent.Shift {
			mh.editor.StartOrUpdateSelection()
		} else {
			mh.editor.ClearSelection()
		}
	}

	switch action {
	// --- Modes ---
	case input.ActionEnterFindMode:
		mh.findBuffer = mh.editor.GetFindManager().Query()
		mh.enterMode(ModeFind)

	case input.ActionEnterReplaceMode:
		actionProcessed = mh.startReplace()

	case input.ActionCancel:
		switch {
		case len(mh.editor.SearchHighlights()) > 0:
			mh.editor.ClearSearchHighlights()
			mh.statusBar.SetTemporaryMessage("Highlights cleared")
		case mh.editor.HasSelection():
			mh.editor.ClearSelection()
		default:
			actionProcessed = false
		}

	// --- Quit/Save ---
	case input.ActionQuit:
		if !mh.confirmDiscard(action, "Ctrl+Q", "quit") {
			return true
		}
		mh.requestQuit()
		return false

	case input.ActionSave:
		if mh.filePath() == "" {
			mh.startPathPrompt(ModeSaveAs, "")
			break
		}
		path, err := mh.save()
		if err != nil {
			mh.statusBar.SetNotice("Save FAILED: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Saved %s", path)
		}
	case input.ActionSaveAs:
		mh.startPathPrompt(ModeSaveAs, mh.filePath())

	case input.ActionOpen:
		if mh.confirmDiscard(action, "Ctrl+O", "open another file") {
			mh.startPathPrompt(ModeOpen, "")
		}
	case input.ActionNewFile:
		if mh.confirmDiscard(action, "Ctrl+N", "start a new file") {
			mh.newFile()
			mh.statusBar.SetTemporaryMessage("New file")
		}

	// --- Movement ---
	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	// --- Text Modification ---
	case input.ActionInsertRune:
		actionProcessed = mh.edit("InsertRune", func() error { return mh.editor.InsertRune(actionEvent.Rune) })
	case input.ActionInsertNewLine:
		actionProcessed = mh.edit("InsertNewLine", mh.editor.InsertNewLine)
	case input.ActionInsertTab:
		actionProcessed = mh.edit("InsertTab", mh.editor.InsertTab)
	case input.ActionDeleteCharBackward:
		actionProcessed = mh.edit("DeleteBackward", mh.editor.DeleteBackward)
	case input.ActionDeleteCharForward:
		actionProcessed = mh.edit("DeleteForward", mh.editor.DeleteForward)

	// --- Clipboard ---
	case input.ActionCut:
		cut, err := mh.editor.Cut()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Cut failed: %v", err)
		case !cut:
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}
	case input.ActionCopy:
		copied, err := mh.editor.Copy()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		case copied:
			mh.statusBar.SetTemporaryMessage("Text copied to clipboard")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}
	case input.ActionPaste:
		pasted, err := mh.editor.Paste()
		switch {
		case err != nil:
			mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
		case !pasted:
			mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
		}
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	// --- Undo/Redo ---
	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// --- Search ---
	case input.ActionFindNext:
		mh.findNext(mh.editor.SearchOptions().Direction)
	case input.ActionFindPrevious:
		mh.findNext(-mh.editor.SearchOptions().Direction)
	case input.ActionToggleWholeWord, input.ActionToggleWrapAround,
		input.ActionToggleMatchAll, input.ActionToggleDirection:
		mh.toggleOption(action)
		mh.statusBar.SetTemporaryMessage("Search: %s", optionsLabel(mh.editor.SearchOptions()))

	// --- View ---
	case input.ActionToggleMode:
		if mh.editor.ToggleMode() == highlighter.Lexed {
			mh.statusBar.SetTemporaryMessage("Mode: %s", mh.editor.Language().Name)
		} else {
			mh.statusBar.SetTemporaryMessage("Mode: Plain Text")
		}
	case input.ActionToggleWrap:
		if mh.editor.ToggleWrap() {
			mh.statusBar.SetTemporaryMessage("Wrap: on")
		} else {
			mh.statusBar.SetTemporaryMessage("Wrap: off")
		}
	case input.ActionToggleTheme:
		mh.statusBar.SetTemporaryMessage("Theme: %s", mh.toggleTheme())

	default:
		actionProcessed = false
	}

	if action != input.ActionUnknown && action != mh.confirmPending {
		mh.confirmPending = input.ActionUnknown
	}
	return actionProcessed
}

// confirmDiscard reports whether action may go ahead. With unsaved changes
// the first press only warns; pressing the same key again confirms.
func (mh *ModeHandler) confirmDiscard(action input.Action, key, what string) bool {
	if !mh.editor.IsModified() || mh.confirmPending == action {
		mh.confirmPending = input.ActionUnknown
		return true
	}
	mh.confirmPending = action
	mh.statusBar.SetTemporaryMessage("Unsaved changes! Press %s again to %s without saving.", key, what)
	return false
}

// edit runs a typing operation and logs its failure.
func (mh *ModeHandler) edit(name string, op func() error) bool {
	if err := op(); err != nil {
		logger.Debugf("ModeHandler: %s failed: %v", name, err)
		return false
	}
	return true
}

// findNext steps to the next match of the active query in dir.
func (mh *ModeHandler) findNext(dir find.Direction) bool {
	query := mh.editor.GetFindManager().Query()
	if query == "" {
		mh.statusBar.SetTemporaryMessage("No previous search term")
		return false
	}
	if _, ok := mh.editor.Navigate(dir); !ok {
		mh.beep()
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", query)
		return false
	}
	mh.reportPosition()
	return true
}

func (mh *ModeHandler) reportPosition() {
	fm := mh.editor.GetFindManager()
	mh.statusBar.SetTemporaryMessage("Match %d of %d", fm.Cursor()+1, len(fm.Matches()))
}

// toggleOption flips one search option. An active search is recompiled.
func (mh *ModeHandler) toggleOption(action input.Action) {
	opts := mh.editor.SearchOptions()
	switch action {
	case input.ActionToggleWholeWord:
		opts.WholeWord = !opts.WholeWord
	case input.ActionToggleWrapAround:
		opts.WrapAround = !opts.WrapAround
	case input.ActionToggleMatchAll:
		opts.MatchAll = !opts.MatchAll
	case input.ActionToggleDirection:
		opts.Direction = -opts.Direction
	}
	mh.editor.SetSearchOptions(opts)
	logger.DebugTagf("find", "ModeHandler: search options now %s", optionsLabel(opts))
}

package modehandler

import (
	"errors"

	"github.com/bethropolis/quill/internal/core/find"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
)

// handleActionFind handles actions when in ModeFind. Every edit of the
// query searches again so the match count stays current; Enter selects
// the next match.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.findBuffer += string(actionEvent.Rune)
		mh.liveSearch()

	case input.ActionDeleteCharBackward:
		mh.findBuffer = dropLastRune(mh.findBuffer)
		mh.liveSearch()

	case input.ActionInsertNewLine:
		mh.executeFind()

	case input.ActionFindNext:
		mh.findNext(mh.editor.SearchOptions().Direction)
	case input.ActionFindPrevious:
		mh.findNext(-mh.editor.SearchOptions().Direction)

	case input.ActionToggleWholeWord, input.ActionToggleWrapAround,
		input.ActionToggleMatchAll, input.ActionToggleDirection:
		mh.toggleOption(actionEvent.Action)
		mh.liveSearch()

	case input.ActionEnterReplaceMode:
		mh.startReplace()
		return true

	case input.ActionCancel, input.ActionEnterFindMode:
		mh.cancelPrompt()
		return true

	default:
		return false
	}

	mh.updatePrompt()
	return true
}

// liveSearch recomputes matches for the prompt text without moving the cursor.
func (mh *ModeHandler) liveSearch() {
	set, err := mh.editor.Search(mh.findBuffer, mh.editor.SearchOptions())
	if err != nil {
		mh.editor.ClearSearchHighlights()
		return
	}
	logger.DebugTagf("find", "ModeHandler: live search %q: %d matches", mh.findBuffer, set.Len())
}

// executeFind runs the query. Repeating Enter on the same query steps to the
// next match instead of searching again.
func (mh *ModeHandler) executeFind() {
	opts := mh.editor.SearchOptions()
	fm := mh.editor.GetFindManager()

	if !opts.MatchAll && mh.findBuffer == fm.Query() && fm.Cursor() >= 0 {
		mh.findNext(opts.Direction)
		return
	}

	result, err := mh.editor.Find(mh.findBuffer, opts)
	if err != nil {
		mh.reportQueryError(err)
		return
	}
	if result.Bell {
		mh.beep()
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", mh.findBuffer)
		return
	}
	if opts.MatchAll {
		mh.statusBar.SetTemporaryMessage("%d matches", result.Len())
		return
	}
	mh.reportPosition()
}

func (mh *ModeHandler) reportQueryError(err error) {
	switch {
	case errors.Is(err, find.ErrEmptyQuery):
		mh.statusBar.SetNotice("Type something to search for")
	case errors.Is(err, find.ErrWhitespaceOnlyQuery):
		mh.statusBar.SetNotice("Search text is only whitespace")
	default:
		mh.statusBar.SetNotice("Invalid search: %v", err)
	}
}

// startReplace opens the replace prompt for the active query. Outside
// match-all mode a match is selected first so Enter has something to replace.
func (mh *ModeHandler) startReplace() bool {
	fm := mh.editor.GetFindManager()
	query := mh.findBuffer
	if mh.currentMode == ModeNormal || query == "" {
		query = fm.Query()
	}
	if query == "" {
		mh.beep()
		mh.statusBar.SetTemporaryMessage("Search for something first (Ctrl+F)")
		return true
	}

	opts := mh.editor.SearchOptions()
	if query != fm.Query() || len(fm.Matches()) == 0 {
		if _, err := mh.editor.Search(query, opts); err != nil {
			mh.reportQueryError(err)
			return true
		}
	}
	if !opts.MatchAll && fm.Cursor() < 0 {
		mh.editor.Navigate(opts.Direction)
	}

	mh.findBuffer = query
	mh.replaceBuffer = ""
	mh.enterMode(ModeReplace)
	return true
}

// handleActionReplace handles actions when in ModeReplace. Enter replaces
// the selected match and moves on to the next one, or replaces every match
// in match-all mode.
func (mh *ModeHandler) handleActionReplace(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.replaceBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		mh.replaceBuffer = dropLastRune(mh.replaceBuffer)

	case input.ActionInsertNewLine:
		if mh.executeReplace() {
			mh.cancelPrompt()
			return true
		}

	case input.ActionFindNext:
		mh.findNext(mh.editor.SearchOptions().Direction)
	case input.ActionFindPrevious:
		mh.findNext(-mh.editor.SearchOptions().Direction)

	case input.ActionToggleWholeWord, input.ActionToggleWrapAround,
		input.ActionToggleMatchAll, input.ActionToggleDirection:
		mh.toggleOption(actionEvent.Action)

	case input.ActionCancel, input.ActionEnterReplaceMode:
		mh.cancelPrompt()
		return true

	default:
		return false
	}

	mh.updatePrompt()
	return true
}

// executeReplace runs one replace request. It reports true when the prompt
// should close.
func (mh *ModeHandler) executeReplace() bool {
	result, err := mh.editor.Replace(mh.replaceBuffer)
	if err != nil {
		switch {
		case errors.Is(err, find.ErrEmptyReplacement):
			mh.statusBar.SetNotice("Type the replacement text")
		case errors.Is(err, find.ErrWhitespaceReplacement):
			mh.statusBar.SetNotice("Replacement must not contain whitespace")
		default:
			mh.statusBar.SetNotice("Replace failed: %v", err)
		}
		return false
	}
	if result.Bell {
		mh.beep()
		mh.statusBar.SetTemporaryMessage("Nothing to replace")
		return true
	}

	opts := mh.editor.SearchOptions()
	if opts.MatchAll {
		mh.statusBar.SetTemporaryMessage("Replaced %d occurrences", result.Replaced)
		return true
	}
	if _, ok := mh.editor.Navigate(opts.Direction); !ok {
		mh.statusBar.SetTemporaryMessage("Replaced the last match")
		return true
	}
	mh.statusBar.SetTemporaryMessage("Replaced 1, %d left", len(mh.editor.GetFindManager().Matches()))
	return false
}

// cancelPrompt leaves the current prompt. Matches stay active for
// find next and previous.
func (mh *ModeHandler) cancelPrompt() {
	mh.currentMode = ModeNormal
	mh.replaceBuffer = ""
	mh.pathBuffer = ""
	mh.recentIndex = -1
	mh.statusBar.SetPrompt("")
	logger.DebugTagf("input", "ModeHandler: prompt closed")
}

func dropLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

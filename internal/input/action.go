// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit           // Asks again while there are unsaved changes
	ActionSave
	ActionSaveAs
	ActionOpen
	ActionNewFile
	ActionCancel // Esc

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd

	// --- Text Manipulation ---
	ActionInsertRune // Requires Rune argument
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	// --- Clipboard and history ---
	ActionUndo
	ActionRedo
	ActionCut
	ActionCopy
	ActionPaste
	ActionSelectAll

	// --- Search ---
	ActionEnterFindMode
	ActionEnterReplaceMode
	ActionFindNext
	ActionFindPrevious
	ActionToggleWholeWord
	ActionToggleWrapAround
	ActionToggleMatchAll
	ActionToggleDirection

	// --- View ---
	ActionToggleMode // Plain text and lexed highlighting
	ActionToggleWrap
	ActionToggleTheme
)

var actionNames = map[Action]string{
	ActionUnknown:            "Unknown",
	ActionQuit:               "Quit",
	ActionSave:               "Save",
	ActionSaveAs:             "SaveAs",
	ActionOpen:               "Open",
	ActionNewFile:            "NewFile",
	ActionCancel:             "Cancel",
	ActionMoveUp:             "MoveUp",
	ActionMoveDown:           "MoveDown",
	ActionMoveLeft:           "MoveLeft",
	ActionMoveRight:          "MoveRight",
	ActionMovePageUp:         "MovePageUp",
	ActionMovePageDown:       "MovePageDown",
	ActionMoveHome:           "MoveHome",
	ActionMoveEnd:            "MoveEnd",
	ActionInsertRune:         "InsertRune",
	ActionInsertNewLine:      "InsertNewLine",
	ActionInsertTab:          "InsertTab",
	ActionDeleteCharForward:  "DeleteCharForward",
	ActionDeleteCharBackward: "DeleteCharBackward",
	ActionUndo:               "Undo",
	ActionRedo:               "Redo",
	ActionCut:                "Cut",
	ActionCopy:               "Copy",
	ActionPaste:              "Paste",
	ActionSelectAll:          "SelectAll",
	ActionEnterFindMode:      "EnterFindMode",
	ActionEnterReplaceMode:   "EnterReplaceMode",
	ActionFindNext:           "FindNext",
	ActionFindPrevious:       "FindPrevious",
	ActionToggleWholeWord:    "ToggleWholeWord",
	ActionToggleWrapAround:   "ToggleWrapAround",
	ActionToggleMatchAll:     "ToggleMatchAll",
	ActionToggleDirection:    "ToggleDirection",
	ActionToggleMode:         "ToggleMode",
	ActionToggleWrap:         "ToggleWrap",
	ActionToggleTheme:        "ToggleTheme",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// IsMovement reports whether a is a cursor movement, which Shift turns into
// a selection.
func (a Action) IsMovement() bool {
	return a >= ActionMoveUp && a <= ActionMoveEnd
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Shift  bool // Extend the selection while moving
}

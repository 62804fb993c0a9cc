// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // Special keys (Enter, arrows, Ctrl+letter)
type RuneKeymap map[rune]Action         // Rune bindings, used with Alt
type ModKeymap map[tcell.ModMask]Keymap // Keys combined with modifiers

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	altRuneMap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		altRuneMap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyF3] = ActionFindNext

	// --- Ctrl bindings ---
	// tcell reports Ctrl+letter as its own key, with or without ModCtrl set.
	ctrlMap := Keymap{
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlW: ActionSaveAs,
		tcell.KeyCtrlO: ActionOpen,
		tcell.KeyCtrlN: ActionNewFile,
		tcell.KeyCtrlQ: ActionQuit,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlY: ActionRedo,
		tcell.KeyCtrlX: ActionCut,
		tcell.KeyCtrlC: ActionCopy,
		tcell.KeyCtrlV: ActionPaste,
		tcell.KeyCtrlA: ActionSelectAll,
		tcell.KeyCtrlF: ActionEnterFindMode,
		tcell.KeyCtrlR: ActionEnterReplaceMode,
		tcell.KeyCtrlL: ActionFindNext,
		tcell.KeyCtrlP: ActionFindPrevious,
		tcell.KeyCtrlT: ActionToggleWrap,
		tcell.KeyCtrlG: ActionToggleTheme,
	}
	p.modKeymap[tcell.ModCtrl] = ctrlMap
	for key, action := range ctrlMap {
		p.keymap[key] = action
	}

	// --- Alt bindings toggle search options and the highlight mode ---
	p.altRuneMap['w'] = ActionToggleWholeWord
	p.altRuneMap['r'] = ActionToggleWrapAround
	p.altRuneMap['a'] = ActionToggleMatchAll
	p.altRuneMap['u'] = ActionToggleDirection
	p.altRuneMap['m'] = ActionToggleMode
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// Which mode the action applies to is decided by the caller.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()
	shift := mod&tcell.ModShift != 0

	// 1. Modifier + Key combinations
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 2. Alt + rune
	if key == tcell.KeyRune && mod&tcell.ModAlt != 0 {
		if action, ok := p.altRuneMap[runeVal]; ok {
			return ActionEvent{Action: action}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	// 3. Plain runes are typed, Shift included
	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	// 4. Simple keys; Shift only matters for movement
	if mod&tcell.ModAlt == 0 {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Shift: shift && action.IsMovement()}
		}
	}

	return ActionEvent{Action: ActionUnknown}
}

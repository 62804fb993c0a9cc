// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/types"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style // File name while there are unsaved changes
	StyleMessage   tcell.Style
	StylePrompt    tcell.Style // Find and replace input
	MessageTimeout time.Duration
}

// ConfigFromTheme takes the status bar styles from a theme.
func ConfigFromTheme(th *theme.Theme) Config {
	if th == nil {
		th = &theme.Light
	}
	return Config{
		StyleDefault:   th.GetStyle(theme.StyleStatusBar),
		StyleModified:  th.GetStyle(theme.StyleStatusBarModified),
		StyleMessage:   th.GetStyle(theme.StyleStatusBarMessage),
		StylePrompt:    th.GetStyle(theme.StyleStatusBarFind),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	cursorPos  types.Position
	isModified bool
	editorMode string

	// A prompt replaces the status text until it is cleared
	prompt string

	tempMessage     string
	tempMessageTime time.Time
	notice          bool // The message stays until DismissNotice
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetConfig swaps the styles, typically after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed highlight mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetPrompt shows an input line such as "Find: foo". An empty string hides it.
func (sb *StatusBar) SetPrompt(prompt string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = prompt
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.notice = false
}

// SetNotice displays a message that does not expire. It stays until
// DismissNotice, which the input handler calls on the next key.
func (sb *StatusBar) SetNotice(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Time{}
	sb.notice = true
}

// DismissNotice clears a notice and reports whether one was showing.
// Temporary messages are left to expire.
func (sb *StatusBar) DismissNotice() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.notice {
		return false
	}
	sb.tempMessage = ""
	sb.notice = false
	return true
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
	sb.notice = false
}

// expireMessage drops a message older than the timeout. Caller holds the lock.
func (sb *StatusBar) expireMessage() {
	if !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
}

// Message returns the temporary message, or "" once it has expired.
func (sb *StatusBar) Message() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.expireMessage()
	return sb.tempMessage
}

// Text returns the line Draw would show and the style it would use.
// A prompt is followed by the current message, if any.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.expireMessage()

	switch {
	case sb.prompt != "" && sb.tempMessage != "":
		return sb.prompt + "  | " + sb.tempMessage, sb.config.StylePrompt
	case sb.prompt != "":
		return sb.prompt, sb.config.StylePrompt
	case sb.tempMessage != "":
		return sb.tempMessage, sb.config.StyleMessage
	case sb.isModified:
		return sb.defaultText(), sb.config.StyleModified
	default:
		return sb.defaultText(), sb.config.StyleDefault
	}
}

// defaultText builds "name* | Ln: 3 Col: 0 | Python". Caller holds the lock.
func (sb *StatusBar) defaultText() string {
	name := "[No Name]"
	if sb.filePath != "" {
		name = filepath.Base(sb.filePath)
	}
	if sb.isModified {
		name += "*"
	}

	mode := sb.editorMode
	if mode == "" {
		mode = "Plain Text"
	}

	return fmt.Sprintf("%s | Ln: %d Col: %d | %s", name, sb.cursorPos.Line, sb.cursorPos.Col, mode)
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}

// internal/event/event.go
package event

import (
	"github.com/bethropolis/quill/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified // Fired when buffer content changes
	TypeBufferLoaded   // Fired after a document replaces the buffer wholesale
	TypeBufferSaved    // Fired after the shell wrote the document to disk
	TypeCursorMoved    // Fired when the cursor position changes
	TypeModeChanged    // Fired when highlighting switches between plain text and a language
	TypeSearchUpdated  // Fired when the match list or search cursor changes
	TypeThemeChanged   // Fired when the theme is changed
)

func (t Type) String() string {
	switch t {
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeCursorMoved:
		return "CursorMoved"
	case TypeModeChanged:
		return "ModeChanged"
	case TypeSearchUpdated:
		return "SearchUpdated"
	case TypeThemeChanged:
		return "ThemeChanged"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type // The kind of event
	Data any  // Payload carrying event-specific data
}

// BufferModifiedData describes the edited range.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// ModeChangedData names the active highlight language. Empty means plain text.
type ModeChangedData struct {
	Language string
}

// SearchUpdatedData summarises the current search state.
type SearchUpdatedData struct {
	Query   string
	Matches int
	Cursor  int
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

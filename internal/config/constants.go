package config

import (
	"time"

	"github.com/bethropolis/quill/internal/lexer"
)

// Base application details
const AppName = "quill"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "quill.log"
const DefaultRecentFileName = "recent.toml"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultSystemClipboard = true
const DefaultSoftIndent = true
const DefaultWordWrap = true

// Recent files
const MaxRecentFiles = 5
const DefaultScanner = lexer.BackendChroma
const DefaultTheme = "light"

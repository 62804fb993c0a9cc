package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/quill/internal/core/history"
	"github.com/bethropolis/quill/internal/lexer"
	"github.com/bethropolis/quill/internal/logger"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Editor    EditorConfig    `toml:"editor"`
	Highlight HighlightConfig `toml:"highlight"`
	Search    SearchConfig    `toml:"search"`
	Theme     ThemeConfig     `toml:"theme"`
	Recent    RecentConfig    `toml:"recent"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	MaxUndo         int  `toml:"max_undo"`
	SystemClipboard bool `toml:"system_clipboard"`
	SoftIndent      bool `toml:"soft_indent"`
	WordWrap        bool `toml:"word_wrap"` // Off while a Python file is highlighted
}

// HighlightConfig selects the scanner backend.
type HighlightConfig struct {
	Scanner string `toml:"scanner"`
}

// SearchConfig holds the initial find/replace options.
type SearchConfig struct {
	WholeWord  bool `toml:"whole_word"`
	WrapAround bool `toml:"wrap_around"`
	MatchAll   bool `toml:"match_all"`
}

// ThemeConfig names the starting theme and where custom palettes live.
type ThemeConfig struct {
	Name      string `toml:"name"`
	Directory string `toml:"directory"`
}

// RecentConfig locates the recent files list.
type RecentConfig struct {
	File string `toml:"file"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel: "info",
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			MaxUndo:         history.MaxUndo,
			SystemClipboard: DefaultSystemClipboard,
			SoftIndent:      DefaultSoftIndent,
			WordWrap:        DefaultWordWrap,
		},
		Highlight: HighlightConfig{Scanner: DefaultScanner},
		Search:    SearchConfig{WholeWord: true, WrapAround: true},
		Theme:     ThemeConfig{Name: DefaultTheme},
	}
}

// DefaultConfigPath returns the config file under the user config dir
// ($XDG_CONFIG_HOME on Linux), or "" if that dir is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// DefaultLogPath returns quill.log in the user cache dir, falling back to
// the working directory.
func DefaultLogPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return DefaultLogFileName
	}
	return filepath.Join(cacheDir, AppName, DefaultLogFileName)
}

// RecentFilePath returns the configured recent files list or the default
// one next to the config file.
func (c *Config) RecentFilePath() string {
	if c.Recent.File != "" {
		return c.Recent.File
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultRecentFileName)
}

// ThemesDir returns the configured theme directory or the default one
// next to the config file.
func (c *Config) ThemesDir() string {
	if c.Theme.Directory != "" {
		return c.Theme.Directory
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, ThemesDirName)
}

// loadFromFile decodes filePath over cfg. Keys missing from the file keep
// their current values. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) (undecoded []string, err error) {
	_, err = os.Stat(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

// validate resets invalid values to their defaults and reports each one.
func (c *Config) validate() error {
	defaults := NewDefaultConfig()
	var problems []error
	invalid := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Editor.TabWidth <= 0 {
		invalid("editor.tab_width %d must be positive", c.Editor.TabWidth)
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		invalid("editor.scroll_off %d must not be negative", c.Editor.ScrollOff)
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.MaxUndo < 1 || c.Editor.MaxUndo > history.MaxUndo {
		invalid("editor.max_undo %d must be between 1 and %d", c.Editor.MaxUndo, history.MaxUndo)
		c.Editor.MaxUndo = defaults.Editor.MaxUndo
	}

	c.Highlight.Scanner = strings.ToLower(strings.TrimSpace(c.Highlight.Scanner))
	switch c.Highlight.Scanner {
	case lexer.BackendChroma, lexer.BackendTreeSitter:
	default:
		invalid("highlight.scanner %q must be chroma or treesitter", c.Highlight.Scanner)
		c.Highlight.Scanner = defaults.Highlight.Scanner
	}

	if strings.TrimSpace(c.Theme.Name) == "" {
		c.Theme.Name = defaults.Theme.Name
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	return errors.Join(problems...)
}

// LoadConfig applies defaults, then the config file, then the flags the
// user set, and validates the result. configFilePath "" means the default
// location. The returned config is always usable; err reports a file that
// could not be read or values that were reset to defaults.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}

	var errs []error
	if effectivePath != "" {
		undecoded, err := loadFromFile(effectivePath, cfg)
		if err != nil {
			errs = append(errs, err)
			cfg = NewDefaultConfig()
		}
		if len(undecoded) > 0 {
			// The logger may not be initialised yet, so this is reported later.
			errs = append(errs, fmt.Errorf("config file '%s': unrecognized keys: %v", effectivePath, undecoded))
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	if err := cfg.validate(); err != nil {
		errs = append(errs, err)
	}
	return cfg, errors.Join(errs...)
}

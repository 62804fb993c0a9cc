package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/logger"
)

var ErrUnknownColor = errors.New("unknown color")

// TomlStyleDef represents a single style definition in the TOML file
type TomlStyleDef struct {
	Fg        *string `toml:"fg"` // pointers detect missing values
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// TomlTheme represents the structure of a theme file
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML palette into a Theme.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}

	theme, err := ParseTheme(string(data))
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		logger.Debugf("Theme file '%s' missing 'name', using filename '%s'", filePath, theme.Name)
	}

	logger.Debugf("Successfully loaded theme '%s' from '%s'", theme.Name, filePath)
	return theme, nil
}

// ParseTheme decodes TOML palette text. Styles inherit from the file's
// Default style; categories the file leaves out keep the Light preset's colour.
func ParseTheme(data string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tomlTheme.Name, undecoded)
	}

	fallback := Light
	if tomlTheme.IsDark {
		fallback = Dark
	}
	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style, len(fallback.Styles)),
	}
	for name, style := range fallback.Styles {
		theme.Styles[name] = style
	}

	baseStyle := fallback.Styles[StyleDefault]
	if defaultTomlStyle, ok := tomlTheme.Styles[StyleDefault]; ok {
		baseStyle, err = convertTomlStyle(defaultTomlStyle, baseStyle)
		if err != nil {
			return nil, fmt.Errorf("style 'Default': %w", err)
		}
		theme.Styles[StyleDefault] = baseStyle
	}

	for name, tomlStyle := range tomlTheme.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertTomlStyle(tomlStyle, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}
	return theme, nil
}

// convertTomlStyle applies a TOML definition on top of baseStyle.
func convertTomlStyle(tomlStyle TomlStyleDef, baseStyle tcell.Style) (tcell.Style, error) {
	style := baseStyle

	if tomlStyle.Fg != nil {
		color, err := parseColorString(*tomlStyle.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color: %w", err)
		}
		style = style.Foreground(color)
	}
	if tomlStyle.Bg != nil {
		color, err := parseColorString(*tomlStyle.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color: %w", err)
		}
		style = style.Background(color)
	}

	if tomlStyle.Bold != nil {
		style = style.Bold(*tomlStyle.Bold)
	}
	if tomlStyle.Italic != nil {
		style = style.Italic(*tomlStyle.Italic)
	}
	if tomlStyle.Underline != nil {
		style = style.Underline(*tomlStyle.Underline)
	}
	if tomlStyle.Reverse != nil {
		style = style.Reverse(*tomlStyle.Reverse)
	}
	return style, nil
}

// parseColorString accepts #RRGGBB, W3C/X11 colour names ("light blue" and
// "lightblue" alike), "reset" and "default".
func parseColorString(s string) (tcell.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "reset":
		return tcell.ColorReset, nil
	case "default", "":
		return tcell.ColorDefault, nil
	}
	color := tcell.GetColor(strings.ReplaceAll(name, " ", ""))
	if color == tcell.ColorDefault {
		return color, fmt.Errorf("%w: '%s'", ErrUnknownColor, s)
	}
	return color, nil
}

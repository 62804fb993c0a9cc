package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/highlighter"
	"github.com/bethropolis/quill/internal/logger"
)

// UI style keys. Syntax styles are keyed by highlighter category name.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleSearchHighlight   = "SearchHighlight"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarFind     = "StatusBarFind"
	StyleLineNumber        = "LineNumber"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. Unknown dotted names fall back to
// their base name, then to the Default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Palette is the set of colours a preset is built from.
type Palette struct {
	Background tcell.Color
	Foreground tcell.Color
	Categories map[highlighter.Category]tcell.Color
}

// build expands a palette into a full theme.
func build(name string, isDark bool, p Palette) Theme {
	base := tcell.StyleDefault.Background(p.Background).Foreground(p.Foreground)
	bar := tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)

	styles := map[string]tcell.Style{
		StyleDefault:           base,
		StyleSelection:         base.Reverse(true),
		StyleSearchHighlight:   tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite),
		StyleStatusBar:         bar,
		StyleStatusBarModified: bar.Bold(true),
		StyleStatusBarMessage:  bar.Bold(true),
		StyleStatusBarFind:     bar.Foreground(tcell.ColorYellow).Bold(true),
		StyleLineNumber:        base.Foreground(tcell.ColorGray),
	}
	for category, color := range p.Categories {
		styles[string(category)] = base.Foreground(color)
	}
	return Theme{Name: name, IsDark: isDark, Styles: styles}
}

// Light is the default preset: dark text on white.
var Light = build("light", false, Palette{
	Background: tcell.ColorWhite,
	Foreground: tcell.ColorBlack,
	Categories: map[highlighter.Category]tcell.Color{
		highlighter.CategoryComment:      tcell.ColorRed,
		highlighter.CategoryString:       tcell.ColorLightBlue,
		highlighter.CategoryKeyword:      tcell.ColorOrange,
		highlighter.CategoryIdentifier:   tcell.ColorBlack,
		highlighter.CategoryBuiltin:      tcell.ColorPurple,
		highlighter.CategorySelf:         tcell.ColorOrange,
		highlighter.CategoryDunder:       tcell.ColorPurple,
		highlighter.CategoryNumber:       tcell.ColorDarkBlue,
		highlighter.CategoryOperator:     tcell.ColorBlack,
		highlighter.CategoryFunctionName: tcell.ColorBlue,
	},
})

// Dark is the night preset on a deep blue background.
var Dark = build("dark", true, Palette{
	Background: tcell.NewHexColor(0x152e3d),
	Foreground: tcell.ColorWhite,
	Categories: map[highlighter.Category]tcell.Color{
		highlighter.CategoryComment:      tcell.NewHexColor(0xfa4d4d),
		highlighter.CategoryString:       tcell.ColorLightBlue,
		highlighter.CategoryKeyword:      tcell.ColorOrange,
		highlighter.CategoryIdentifier:   tcell.ColorWhite,
		highlighter.CategoryBuiltin:      tcell.NewHexColor(0xeb9cf7),
		highlighter.CategorySelf:         tcell.ColorOrange,
		highlighter.CategoryDunder:       tcell.NewHexColor(0xeb9cf7),
		highlighter.CategoryNumber:       tcell.ColorLightBlue,
		highlighter.CategoryOperator:     tcell.ColorWhite,
		highlighter.CategoryFunctionName: tcell.NewHexColor(0x52aeba),
	},
})

package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quill/internal/highlighter"
)

// ChromaPrefix marks a theme name that refers to a chroma style.
const ChromaPrefix = "chroma:"

var ErrUnknownStyle = errors.New("unknown chroma style")

// chromaTypes picks the chroma token type whose colour a category borrows.
var chromaTypes = map[highlighter.Category]chroma.TokenType{
	highlighter.CategoryComment:      chroma.Comment,
	highlighter.CategoryString:       chroma.LiteralString,
	highlighter.CategoryKeyword:      chroma.Keyword,
	highlighter.CategoryIdentifier:   chroma.Name,
	highlighter.CategoryBuiltin:      chroma.NameBuiltin,
	highlighter.CategorySelf:         chroma.NameBuiltinPseudo,
	highlighter.CategoryDunder:       chroma.NameFunctionMagic,
	highlighter.CategoryNumber:       chroma.LiteralNumber,
	highlighter.CategoryOperator:     chroma.Operator,
	highlighter.CategoryFunctionName: chroma.NameFunction,
}

func chromaToTcell(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// FromChroma derives a theme from a registered chroma style such as
// "monokai" or "github".
func FromChroma(styleName string) (*Theme, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	bg := style.Get(chroma.Background)
	palette := Palette{
		Background: chromaToTcell(bg.Background),
		Foreground: chromaToTcell(bg.Colour),
		Categories: make(map[highlighter.Category]tcell.Color, len(chromaTypes)),
	}
	for category, tokenType := range chromaTypes {
		palette.Categories[category] = chromaToTcell(style.Get(tokenType).Colour)
	}

	isDark := bg.Background.IsSet() && bg.Background.Brightness() < 0.5
	t := build(ChromaPrefix+style.Name, isDark, palette)

	for category, tokenType := range chromaTypes {
		entry := style.Get(tokenType)
		s := t.Styles[string(category)]
		if entry.Bold == chroma.Yes {
			s = s.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			s = s.Italic(true)
		}
		t.Styles[string(category)] = s
	}
	return &t, nil
}

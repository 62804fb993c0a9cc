package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/quill/internal/highlighter"
)

func fg(s tcell.Style) tcell.Color {
	f, _, _ := s.Decompose()
	return f
}

func bg(s tcell.Style) tcell.Color {
	_, b, _ := s.Decompose()
	return b
}

func TestPresetsCoverEveryCategory(t *testing.T) {
	for _, preset := range []Theme{Light, Dark} {
		for _, c := range highlighter.Categories {
			_, ok := preset.Styles[string(c)]
			assert.True(t, ok, "%s lacks %s", preset.Name, c)
		}
	}
}

func TestPresetColours(t *testing.T) {
	assert.Equal(t, tcell.ColorRed, fg(Light.GetStyle("comment")))
	assert.Equal(t, tcell.ColorBlue, fg(Light.GetStyle("function-name")))
	assert.Equal(t, tcell.ColorWhite, bg(Light.GetStyle(StyleDefault)))

	assert.Equal(t, tcell.NewHexColor(0xfa4d4d), fg(Dark.GetStyle("comment")))
	assert.Equal(t, tcell.NewHexColor(0x52aeba), fg(Dark.GetStyle("function-name")))
	assert.Equal(t, tcell.NewHexColor(0x152e3d), bg(Dark.GetStyle("keyword")))

	search := Light.GetStyle(StyleSearchHighlight)
	assert.Equal(t, tcell.ColorGray, bg(search))
	assert.Equal(t, tcell.ColorWhite, fg(search))
}

func TestGetStyleFallback(t *testing.T) {
	theme := &Theme{
		Name: "t",
		Styles: map[string]tcell.Style{
			StyleDefault: tcell.StyleDefault.Foreground(tcell.ColorGreen),
			"keyword":    tcell.StyleDefault.Foreground(tcell.ColorRed),
		},
	}
	assert.Equal(t, tcell.ColorRed, fg(theme.GetStyle("keyword.control")))
	assert.Equal(t, tcell.ColorGreen, fg(theme.GetStyle("missing")))
	assert.Equal(t, tcell.StyleDefault, (&Theme{Name: "empty"}).GetStyle("x"))
}

func TestParseTheme(t *testing.T) {
	data := `
name = "Sea"
is_dark = true

[styles.Default]
fg = "white"
bg = "#001122"

[styles.comment]
fg = "light blue"
italic = true

[styles.keyword]
fg = "nonsense"
`
	theme, err := ParseTheme(data)
	require.NoError(t, err)
	assert.Equal(t, "Sea", theme.Name)
	assert.True(t, theme.IsDark)

	comment := theme.GetStyle("comment")
	assert.Equal(t, tcell.ColorLightBlue, fg(comment))
	assert.Equal(t, tcell.NewHexColor(0x001122), bg(comment))
	_, _, attrs := comment.Decompose()
	assert.NotZero(t, attrs&tcell.AttrItalic)

	// The bad keyword style is skipped and the dark preset's colour stays.
	assert.Equal(t, tcell.ColorOrange, fg(theme.GetStyle("keyword")))
}

func TestParseThemeRejectsBadDefault(t *testing.T) {
	_, err := ParseTheme("[styles.Default]\nfg = \"#12\"\n")
	assert.ErrorIs(t, err, ErrUnknownColor)
}

func TestFromChroma(t *testing.T) {
	theme, err := FromChroma("monokai")
	require.NoError(t, err)
	assert.Equal(t, "chroma:monokai", theme.Name)
	assert.True(t, theme.IsDark)
	for _, c := range highlighter.Categories {
		_, ok := theme.Styles[string(c)]
		assert.True(t, ok, c)
	}

	_, err = FromChroma("no-such-style")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestManager(t *testing.T) {
	dir := t.TempDir()
	custom := "name = \"Paper\"\n[styles.comment]\nfg = \"gray\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(custom), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	m := NewManager(dir)
	assert.Equal(t, "light", m.Current().Name)
	assert.Equal(t, []string{"Paper", "dark", "light"}, m.ListThemes())

	require.NoError(t, m.SetTheme("PAPER"))
	assert.Equal(t, tcell.ColorGray, fg(m.Current().GetStyle("comment")))

	assert.True(t, m.Toggle().IsDark)
	assert.Equal(t, "light", m.Toggle().Name)

	require.NoError(t, m.SetTheme("chroma:github"))
	assert.Equal(t, "chroma:github", m.Current().Name)
	_, ok := m.GetTheme("chroma:github")
	assert.True(t, ok)

	assert.ErrorIs(t, m.SetTheme("solarized"), ErrThemeNotFound)
	assert.Equal(t, "chroma:github", m.Current().Name)
}

func TestManagerMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent"))
	assert.Len(t, m.ListThemes(), 2)
}

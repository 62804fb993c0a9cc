package find

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/quill/internal/types"
)

func texts(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}

func TestCompileRejectsBadQueries(t *testing.T) {
	_, err := Compile("", true)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = Compile("   ", false)
	assert.ErrorIs(t, err, ErrWhitespaceOnlyQuery)

	_, err = Compile("\t\n", true)
	assert.ErrorIs(t, err, ErrWhitespaceOnlyQuery)
}

func TestValidateReplacement(t *testing.T) {
	assert.ErrorIs(t, ValidateReplacement(""), ErrEmptyReplacement)
	assert.ErrorIs(t, ValidateReplacement("a b"), ErrWhitespaceReplacement)
	assert.ErrorIs(t, ValidateReplacement("tab\there"), ErrWhitespaceReplacement)
	assert.NoError(t, ValidateReplacement("ok"))
}

func TestFindAllWholeWord(t *testing.T) {
	p, err := Compile("foo bar", true)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo   bar"}, texts(p.FindAll("x foo   bar y")))
	assert.Empty(t, p.FindAll("foobar"))
	assert.Empty(t, p.FindAll("xfoo bar"))
	assert.Empty(t, p.FindAll("foo barx"))
	assert.Equal(t, []string{"foo\n\tbar"}, texts(p.FindAll("(foo\n\tbar)")))
}

func TestFindAllWholeWordRetriesInsideRejectedCandidate(t *testing.T) {
	p, err := Compile("aa", true)
	require.NoError(t, err)
	// "aaa" is rejected at every offset; the standalone "aa" still matches.
	matches := p.FindAll("aaa aa")
	require.Len(t, matches, 1)
	assert.Equal(t, types.Position{Line: 1, Col: 4}, matches[0].Start)
}

func TestFindAllLiteral(t *testing.T) {
	p, err := Compile("a.b", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.b"}, texts(p.FindAll("axb a.b")))

	p, err = Compile("aa", false)
	require.NoError(t, err)
	// Non-overlapping, leftmost first.
	assert.Equal(t, []string{"aa", "aa"}, texts(p.FindAll("aaaaa")))

	p, err = Compile("foo", false)
	require.NoError(t, err)
	assert.Len(t, p.FindAll("foobar foo"), 2)
}

func TestFindAllPositionsAcrossLines(t *testing.T) {
	p, err := Compile("ño", false)
	require.NoError(t, err)
	matches := FindAll("año\nniño ño", p)
	require.Len(t, matches, 3)

	assert.Equal(t, types.Span{Start: types.Position{Line: 1, Col: 1}, End: types.Position{Line: 1, Col: 3}}, matches[0].Span())
	assert.Equal(t, types.Position{Line: 2, Col: 2}, matches[1].Start)
	assert.Equal(t, types.Position{Line: 2, Col: 5}, matches[2].Start)
}

func TestFindAllMultiLineWholeWordSpan(t *testing.T) {
	p, err := Compile("foo bar", true)
	require.NoError(t, err)
	matches := p.FindAll("a foo\nbar b")
	require.Len(t, matches, 1)
	assert.Equal(t, types.Position{Line: 1, Col: 2}, matches[0].Start)
	assert.Equal(t, types.Position{Line: 2, Col: 3}, matches[0].End)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		cursor int
		dir    Direction
		wrap   bool
		want   int
	}{
		{"fresh forward", 3, NoMatch, Forward, true, 0},
		{"fresh backward clamps", 3, NoMatch, Backward, true, 0},
		{"fresh backward no wrap", 3, NoMatch, Backward, false, 0},
		{"wrap past end", 3, 2, Forward, true, 0},
		{"wrap before start", 3, 0, Backward, true, 2},
		{"clamp at end", 3, 2, Forward, false, 2},
		{"clamp at start", 3, 0, Backward, false, 0},
		{"stale cursor clamps", 3, 7, Backward, false, 2},
		{"no matches", 0, 1, Forward, true, NoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.n, tt.cursor, tt.dir, tt.wrap))
		})
	}
}

func TestAdvanceSequences(t *testing.T) {
	cursor := NoMatch
	var visited []int
	for i := 0; i < 7; i++ {
		cursor = Advance(3, cursor, Forward, true)
		visited = append(visited, cursor)
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, visited)

	cursor = NoMatch
	visited = nil
	for i := 0; i < 5; i++ {
		cursor = Advance(3, cursor, Forward, false)
		visited = append(visited, cursor)
	}
	assert.Equal(t, []int{0, 1, 2, 2, 2}, visited)
}

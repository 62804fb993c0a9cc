package find

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/types"
)

type fakeEditor struct {
	buf       *buffer.SliceBuffer
	events    *event.Manager
	cursor    types.Position
	selection types.Span
}

func newFakeEditor(text string) *fakeEditor {
	buf := buffer.NewSliceBuffer()
	buf.SetText(text)
	return &fakeEditor{buf: buf, events: event.NewManager()}
}

func (f *fakeEditor) GetBuffer() buffer.Buffer        { return f.buf }
func (f *fakeEditor) SetCursor(pos types.Position)    { f.cursor = pos }
func (f *fakeEditor) GetEventManager() *event.Manager { return f.events }
func (f *fakeEditor) SetSelection(start, end types.Position) {
	f.selection = types.Span{Start: start, End: end}
}

func pos(line, col int) types.Position { return types.Position{Line: line, Col: col} }

func TestSearchResetsCursorOnlyWhenQueryChanges(t *testing.T) {
	ed := newFakeEditor("foo foo foo")
	m := NewManager(ed, DefaultOptions())

	set, err := m.Search("foo", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, NoMatch, set.Cursor)

	_, ok := m.Navigate(Forward)
	require.True(t, ok)
	_, ok = m.Navigate(Forward)
	require.True(t, ok)
	assert.Equal(t, 1, m.Cursor())

	set, err = m.Search("foo", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, set.Cursor)

	set, err = m.Search("fo", Options{WrapAround: true})
	require.NoError(t, err)
	assert.Equal(t, NoMatch, set.Cursor)
}

func TestSearchValidation(t *testing.T) {
	m := NewManager(newFakeEditor("text"), DefaultOptions())
	_, err := m.Search("", DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = m.Search("  ", DefaultOptions())
	assert.ErrorIs(t, err, ErrWhitespaceOnlyQuery)
}

func TestNavigateSelectsMatch(t *testing.T) {
	ed := newFakeEditor("one two\ntwo")
	m := NewManager(ed, DefaultOptions())
	_, err := m.Search("two", DefaultOptions())
	require.NoError(t, err)

	reveal, ok := m.Navigate(Backward)
	require.True(t, ok)
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, types.Span{Start: pos(1, 4), End: pos(1, 7)}, reveal)
	assert.Equal(t, reveal, ed.selection)
	assert.Equal(t, pos(1, 7), ed.cursor)
	assert.Equal(t, []types.Span{reveal}, m.Highlights())

	reveal, ok = m.Navigate(Backward)
	require.True(t, ok)
	assert.Equal(t, pos(2, 0), reveal.Start)
}

func TestFindBellsWithoutMatches(t *testing.T) {
	m := NewManager(newFakeEditor("alpha"), DefaultOptions())
	res, err := m.Find("beta", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Bell)
	assert.Empty(t, res.Highlights)
}

func TestFindMatchAllHighlightsEverySpan(t *testing.T) {
	ed := newFakeEditor("x y x y x")
	m := NewManager(ed, DefaultOptions())
	opts := DefaultOptions()
	opts.MatchAll = true

	res, err := m.Find("x", opts)
	require.NoError(t, err)
	assert.False(t, res.Bell)
	assert.Len(t, res.Highlights, 3)
	assert.Equal(t, NoMatch, res.Cursor)
	assert.Equal(t, res.Highlights[0], res.Reveal)
}

func TestFindNotifiesSearchUpdated(t *testing.T) {
	ed := newFakeEditor("a a")
	var last event.SearchUpdatedData
	ed.events.Subscribe(event.TypeSearchUpdated, func(e event.Event) bool {
		last = e.Data.(event.SearchUpdatedData)
		return false
	})
	m := NewManager(ed, DefaultOptions())
	_, err := m.Find("a", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, event.SearchUpdatedData{Query: "a", Matches: 2, Cursor: 0}, last)
}

func TestReplaceAll(t *testing.T) {
	ed := newFakeEditor("a a a")
	m := NewManager(ed, DefaultOptions())
	_, err := m.Search("a", DefaultOptions())
	require.NoError(t, err)

	res, err := m.ReplaceAll("bb")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Replaced)
	assert.Equal(t, "bb bb bb", ed.buf.Text())
	assert.Equal(t, NoMatch, m.Cursor())
	assert.Empty(t, m.Matches(), "the old query no longer matches")

	// Searching for the replacement finds every inserted copy.
	_, err = m.Search("bb", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, m.Matches(), 3)
}

func TestReplaceAllRecomputesWithSameQuery(t *testing.T) {
	ed := newFakeEditor("a a a")
	m := NewManager(ed, Options{})
	_, err := m.Search("a", Options{})
	require.NoError(t, err)

	_, err = m.ReplaceAll("aa")
	require.NoError(t, err)
	assert.Equal(t, "aa aa aa", ed.buf.Text())
	assert.Len(t, m.Matches(), 6)
}

func TestReplaceOne(t *testing.T) {
	ed := newFakeEditor("cat\nthe cat sat")
	m := NewManager(ed, DefaultOptions())
	_, err := m.Search("cat", DefaultOptions())
	require.NoError(t, err)
	_, ok := m.Navigate(Forward)
	require.True(t, ok)
	_, ok = m.Navigate(Forward)
	require.True(t, ok)

	res, err := m.ReplaceOne("tiger")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replaced)
	assert.Equal(t, "cat\nthe tiger sat", ed.buf.Text())
	assert.Equal(t, pos(2, 9), res.Cursor)
	assert.Equal(t, pos(2, 9), ed.cursor)
	assert.Equal(t, NoMatch, m.Cursor())
	assert.Len(t, m.Matches(), 1)
}

func TestReplaceOneAcrossLines(t *testing.T) {
	ed := newFakeEditor("x foo\nbar y")
	m := NewManager(ed, DefaultOptions())
	_, err := m.Find("foo bar", DefaultOptions())
	require.NoError(t, err)

	res, err := m.ReplaceOne("qux")
	require.NoError(t, err)
	assert.Equal(t, "x qux y", ed.buf.Text())
	assert.Equal(t, pos(1, 5), res.Cursor)
}

func TestReplaceValidationAndBell(t *testing.T) {
	ed := newFakeEditor("abc")
	m := NewManager(ed, DefaultOptions())

	_, err := m.ReplaceOne("")
	assert.ErrorIs(t, err, ErrEmptyReplacement)
	_, err = m.ReplaceAll("a b")
	assert.ErrorIs(t, err, ErrWhitespaceReplacement)

	res, err := m.ReplaceAll("x")
	require.NoError(t, err)
	assert.True(t, res.Bell)

	_, err = m.Search("abc", DefaultOptions())
	require.NoError(t, err)
	// Matches exist but none has been visited yet.
	res, err = m.ReplaceOne("x")
	require.NoError(t, err)
	assert.True(t, res.Bell)
	assert.Equal(t, "abc", ed.buf.Text())
}

func TestReplaceDispatchesToMatchAll(t *testing.T) {
	ed := newFakeEditor("q q")
	opts := DefaultOptions()
	opts.MatchAll = true
	m := NewManager(ed, opts)
	_, err := m.Find("q", opts)
	require.NoError(t, err)

	res, err := m.Replace("z")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Replaced)
	assert.Equal(t, "z z", ed.buf.Text())
}

func TestReplaceNotifiesOtherSubscribersOnce(t *testing.T) {
	ed := newFakeEditor("a a a")
	m := NewManager(ed, DefaultOptions())
	calls := 0
	ed.events.Subscribe(event.TypeBufferModified, func(event.Event) bool {
		calls++
		return false
	})
	_, err := m.Search("a", DefaultOptions())
	require.NoError(t, err)
	_, err = m.ReplaceAll("b")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestBufferEditsRefreshMatches(t *testing.T) {
	ed := newFakeEditor("one")
	m := NewManager(ed, DefaultOptions())
	_, err := m.Find("one", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, m.Highlights())

	edit, err := ed.buf.Insert(pos(1, 3), []byte(" one"))
	require.NoError(t, err)
	ed.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})

	assert.Len(t, m.Matches(), 2)
	assert.Empty(t, m.Highlights())
}

func TestSetOptionsRecompiles(t *testing.T) {
	ed := newFakeEditor("foobar foo")
	m := NewManager(ed, DefaultOptions())
	_, err := m.Search("foo", DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, m.Matches(), 1)

	m.SetOptions(Options{WholeWord: false, WrapAround: true})
	assert.Len(t, m.Matches(), 2)
	assert.Equal(t, Forward, m.Options().Direction)
}

package find

import (
	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// EditorInterface defines methods the find manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetCursor(pos types.Position)
	SetSelection(start, end types.Position)
	GetEventManager() *event.Manager
}

// Options are the user-selectable search settings.
type Options struct {
	WholeWord  bool
	WrapAround bool
	MatchAll   bool
	Direction  Direction
}

// DefaultOptions returns whole word and wrap around on, match all off, searching forward.
func DefaultOptions() Options {
	return Options{WholeWord: true, WrapAround: true, Direction: Forward}
}

// MatchSet is a snapshot of the current search.
type MatchSet struct {
	Query   string
	Matches []Match
	Cursor  int
}

// Len returns the number of matches.
func (s MatchSet) Len() int { return len(s.Matches) }

// Current returns the match under the cursor, if any.
func (s MatchSet) Current() (Match, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Matches) {
		return Match{}, false
	}
	return s.Matches[s.Cursor], true
}

// Result reports what a find request did.
type Result struct {
	MatchSet
	Reveal     types.Span   // span the shell should scroll to
	Highlights []types.Span // spans drawn as search selections
	Bell       bool         // no matches
}

// ReplaceResult reports what a replace request did.
type ReplaceResult struct {
	Replaced int
	Cursor   types.Position // edit cursor after a single replace
	Bell     bool           // nothing to replace
}

// Manager holds the query, the match list and the navigation cursor.
type Manager struct {
	editor     EditorInterface
	opts       Options
	query      string
	pattern    *Pattern
	matches    []Match
	cursor     int
	highlights []types.Span
	applying   bool // set while the manager itself edits the buffer
}

// NewManager creates a find manager and subscribes it to buffer changes.
func NewManager(editor EditorInterface, opts Options) *Manager {
	if opts.Direction == 0 {
		opts.Direction = Forward
	}
	m := &Manager{editor: editor, opts: opts, cursor: NoMatch}
	if em := editor.GetEventManager(); em != nil {
		em.Subscribe(event.TypeBufferModified, m.handleBufferModified)
		em.Subscribe(event.TypeBufferLoaded, m.handleBufferModified)
	}
	return m
}

// Options returns the current search options.
func (m *Manager) Options() Options {
	return m.opts
}

// SetOptions changes the search options. An active search is recompiled.
func (m *Manager) SetOptions(opts Options) {
	if opts.Direction == 0 {
		opts.Direction = Forward
	}
	wholeWordChanged := opts.WholeWord != m.opts.WholeWord
	m.opts = opts
	if m.pattern != nil && wholeWordChanged {
		pattern, err := Compile(m.query, opts.WholeWord)
		if err == nil {
			m.pattern = pattern
			m.refresh()
		}
	}
}

func (m *Manager) Query() string { return m.query }
func (m *Manager) Cursor() int   { return m.cursor }

// Matches returns a copy of the current match list.
func (m *Manager) Matches() []Match {
	return append([]Match(nil), m.matches...)
}

// Highlights returns the spans currently marked as search selections.
func (m *Manager) Highlights() []types.Span {
	return append([]types.Span(nil), m.highlights...)
}

// ClearHighlights removes the search selections without forgetting the matches.
func (m *Manager) ClearHighlights() {
	m.highlights = nil
}

func (m *Manager) snapshot() MatchSet {
	return MatchSet{Query: m.query, Matches: m.Matches(), Cursor: m.cursor}
}

// Search compiles query and finds every match in the document.
// A query different from the previous one resets the cursor.
func (m *Manager) Search(query string, opts Options) (MatchSet, error) {
	pattern, err := Compile(query, opts.WholeWord)
	if err != nil {
		return MatchSet{}, err
	}
	if query != m.query {
		m.cursor = NoMatch
		m.query = query
	}
	if opts.Direction == 0 {
		opts.Direction = Forward
	}
	m.opts = opts
	m.pattern = pattern
	m.refresh()
	logger.DebugTagf("find", "search %q: %d matches", query, len(m.matches))
	return m.snapshot(), nil
}

// refresh recomputes the match list from the current document.
func (m *Manager) refresh() {
	m.highlights = nil
	if m.pattern == nil {
		m.matches = nil
		return
	}
	m.matches = m.pattern.FindAll(m.editor.GetBuffer().Text())
	m.notify()
}

func (m *Manager) notify() {
	if em := m.editor.GetEventManager(); em != nil {
		em.Dispatch(event.TypeSearchUpdated, event.SearchUpdatedData{
			Query:   m.query,
			Matches: len(m.matches),
			Cursor:  m.cursor,
		})
	}
}

func (m *Manager) handleBufferModified(event.Event) bool {
	if !m.applying && m.pattern != nil {
		m.refresh()
	}
	return false
}

// Navigate steps the cursor in dir and selects the match it lands on.
// ok is false when there are no matches.
func (m *Manager) Navigate(dir Direction) (reveal types.Span, ok bool) {
	if len(m.matches) == 0 {
		return types.Span{}, false
	}
	m.cursor = Advance(len(m.matches), m.cursor, dir, m.opts.WrapAround)
	match := m.matches[m.cursor]
	m.highlights = []types.Span{match.Span()}
	m.editor.SetSelection(match.Start, match.End)
	m.editor.SetCursor(match.End)
	logger.DebugTagf("find", "navigate %v: match %d/%d at %s", dir, m.cursor+1, len(m.matches), match.Start)
	m.notify()
	return match.Span(), true
}

// SelectAll marks every match as a search selection.
func (m *Manager) SelectAll() []types.Span {
	m.highlights = make([]types.Span, len(m.matches))
	for i, match := range m.matches {
		m.highlights[i] = match.Span()
	}
	return m.Highlights()
}

// Find runs a search and then either steps in opts.Direction or, in match-all
// mode, selects every match.
func (m *Manager) Find(query string, opts Options) (Result, error) {
	set, err := m.Search(query, opts)
	if err != nil {
		return Result{}, err
	}
	if set.Len() == 0 {
		return Result{MatchSet: set, Bell: true}, nil
	}
	if opts.MatchAll {
		highlights := m.SelectAll()
		return Result{MatchSet: m.snapshot(), Reveal: highlights[0], Highlights: highlights}, nil
	}
	reveal, _ := m.Navigate(m.opts.Direction)
	return Result{MatchSet: m.snapshot(), Reveal: reveal, Highlights: m.Highlights()}, nil
}

// Replace replaces every match in match-all mode and the current match otherwise.
func (m *Manager) Replace(replacement string) (ReplaceResult, error) {
	if m.opts.MatchAll {
		return m.ReplaceAll(replacement)
	}
	return m.ReplaceOne(replacement)
}

// ReplaceOne replaces the match under the cursor. The cursor then resets and
// the edit cursor moves to the end of the inserted text.
func (m *Manager) ReplaceOne(replacement string) (ReplaceResult, error) {
	if err := ValidateReplacement(replacement); err != nil {
		return ReplaceResult{}, err
	}
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return ReplaceResult{Bell: true}, nil
	}
	match := m.matches[m.cursor]

	edit, err := m.apply(match, replacement)
	if err != nil {
		return ReplaceResult{}, err
	}
	m.cursor = NoMatch
	m.refresh()
	m.dispatchModified(edit)

	after := types.Position{Line: match.Start.Line, Col: match.Start.Col + len([]rune(replacement))}
	m.editor.SetCursor(after)
	logger.DebugTagf("find", "replaced %q at %s, cursor %s", match.Text, match.Start, after)
	return ReplaceResult{Replaced: 1, Cursor: after}, nil
}

// ReplaceAll replaces every match, last to first so earlier spans stay valid.
func (m *Manager) ReplaceAll(replacement string) (ReplaceResult, error) {
	if err := ValidateReplacement(replacement); err != nil {
		return ReplaceResult{}, err
	}
	if len(m.matches) == 0 {
		return ReplaceResult{Bell: true}, nil
	}
	buf := m.editor.GetBuffer()
	oldEnd := buf.End()
	first := m.matches[0].Start

	for i := len(m.matches) - 1; i >= 0; i-- {
		if _, err := m.apply(m.matches[i], replacement); err != nil {
			m.refresh()
			return ReplaceResult{Replaced: len(m.matches) - 1 - i}, err
		}
	}
	replaced := len(m.matches)
	m.cursor = NoMatch
	m.refresh()
	m.dispatchModified(types.EditInfo{Start: first, OldEnd: oldEnd, NewEnd: buf.End()})
	logger.DebugTagf("find", "replaced %d matches", replaced)
	return ReplaceResult{Replaced: replaced}, nil
}

func (m *Manager) apply(match Match, replacement string) (types.EditInfo, error) {
	m.applying = true
	defer func() { m.applying = false }()
	return m.editor.GetBuffer().Replace(match.Start, match.End, []byte(replacement))
}

// dispatchModified tells the other subscribers about a replace. The manager
// has already refreshed its own matches.
func (m *Manager) dispatchModified(edit types.EditInfo) {
	em := m.editor.GetEventManager()
	if em == nil {
		return
	}
	m.applying = true
	defer func() { m.applying = false }()
	em.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
}

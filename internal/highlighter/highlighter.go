package highlighter

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/lexer"
	"github.com/bethropolis/quill/internal/logger"
)

// Mode selects whether a document is highlighted at all.
type Mode int

const (
	PlainText Mode = iota
	Lexed
)

func (m Mode) String() string {
	if m == Lexed {
		return "Lexed"
	}
	return "PlainText"
}

var registerOnce sync.Once

// RegisterLanguages fills the language registry. Safe to call repeatedly.
func RegisterLanguages() {
	registerOnce.Do(func() {
		lang.Register(lang.Python)
	})
}

// Highlighter scans and tags whole documents.
type Highlighter struct {
	backend  string
	scanners map[string]lexer.Scanner // by language name
}

// NewHighlighter creates a highlighter that scans with the named backend.
func NewHighlighter(backend string) (*Highlighter, error) {
	backend = strings.ToLower(backend)
	if backend == "" {
		backend = lexer.BackendChroma
	}
	if !slices.Contains([]string{lexer.BackendChroma, lexer.BackendTreeSitter}, backend) {
		return nil, fmt.Errorf("%w: %q", lexer.ErrUnknownScanner, backend)
	}
	RegisterLanguages()
	return &Highlighter{backend: backend, scanners: make(map[string]lexer.Scanner)}, nil
}

// Backend returns the scanner backend name.
func (h *Highlighter) Backend() string {
	return h.backend
}

// scanner returns the cached scanner for l, building it on first use.
// A language without a grammar for the configured backend falls back to chroma.
func (h *Highlighter) scanner(l *lang.Language) (lexer.Scanner, error) {
	if s, ok := h.scanners[l.Name]; ok {
		return s, nil
	}
	s, err := lexer.New(h.backend, l.Grammar)
	if err != nil && h.backend != lexer.BackendChroma {
		logger.Warnf("highlighter: %v, falling back to chroma", err)
		s, err = lexer.New(lexer.BackendChroma, l.Grammar)
	}
	if err != nil {
		return nil, fmt.Errorf("scanner for %s: %w", l.Name, err)
	}
	h.scanners[l.Name] = s
	return s, nil
}

// Highlight tags the entire text. PlainText mode, or a nil language, yields no tags.
func (h *Highlighter) Highlight(text string, mode Mode, l *lang.Language) ([]Tag, error) {
	if mode == PlainText || l == nil {
		return nil, nil
	}
	s, err := h.scanner(l)
	if err != nil {
		return nil, err
	}
	tokens := s.Scan(text)
	tags := TagTokens(tokens, l)
	logger.DebugTagf("highlight", "%s: %d tokens, %d tags", l.Name, len(tokens), len(tags))
	return tags, nil
}

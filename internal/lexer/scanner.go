package lexer

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var (
	ErrUnknownScanner = errors.New("unknown scanner backend")
	ErrUnknownGrammar = errors.New("unknown grammar")
)

// Backend names accepted by New.
const (
	BackendChroma     = "chroma"
	BackendTreeSitter = "treesitter"
)

// Scanner produces the token sequence for a whole document.
// Scan never fails: input it cannot recognise ends the sequence early.
// Whitespace is never emitted.
type Scanner interface {
	Scan(text string) []Token
}

// Grammar names a language for every backend.
type Grammar struct {
	Name       string          // display name
	Chroma     string          // chroma lexer name
	TreeSitter *sitter.Language // nil when no tree-sitter grammar is bundled
}

// New builds the scanner for grammar g using the named backend.
func New(backend string, g Grammar) (Scanner, error) {
	switch strings.ToLower(backend) {
	case "", BackendChroma:
		return NewChroma(g.Chroma)
	case BackendTreeSitter:
		if g.TreeSitter == nil {
			return nil, fmt.Errorf("%w: no tree-sitter grammar for %s", ErrUnknownGrammar, g.Name)
		}
		return NewTreeSitter(g.TreeSitter), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScanner, backend)
}

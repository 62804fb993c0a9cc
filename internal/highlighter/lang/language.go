package lang

import (
	"github.com/bethropolis/quill/internal/lexer"
)

// WordSet is a read-only set of identifiers, built once and shared.
type WordSet struct {
	words map[string]struct{}
}

// NewWordSet builds a set from words.
func NewWordSet(words ...string) WordSet {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return WordSet{words: m}
}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s.words[w]
	return ok
}

func (s WordSet) Len() int {
	return len(s.words)
}

// Language holds everything the tagger needs to know about a programming language.
type Language struct {
	// Name is the display name of the language
	Name string

	// Grammar tells each scanner backend how to tokenise the language
	Grammar lexer.Grammar

	// Extensions maps file extensions to this language
	Extensions []string

	Keywords WordSet
	Builtins WordSet
	Dunders  WordSet

	// DefinitionKeyword introduces a function name ("def").
	DefinitionKeyword string
	// ReceiverName is the conventional receiver parameter ("self").
	ReceiverName string
}

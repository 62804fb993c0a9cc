// Package lexer turns document text into an ordered sequence of typed tokens.
package lexer

import (
	"unicode"

	"github.com/bethropolis/quill/internal/types"
)

// Kind classifies a token.
type Kind int

const (
	Other Kind = iota
	Comment
	String
	Number
	Identifier // includes keywords
	Operator   // operators and punctuation
)

func (k Kind) String() string {
	switch k {
	case Comment:
		return "Comment"
	case String:
		return "String"
	case Number:
		return "Number"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	}
	return "Other"
}

// Token is one lexeme with its [Start, End) span.
type Token struct {
	Kind  Kind
	Text  string
	Start types.Position
	End   types.Position
}

// Span returns the range covered by the token.
func (t Token) Span() types.Span {
	return types.Span{Start: t.Start, End: t.End}
}

// isIdentifier reports whether s has the shape of a Python identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

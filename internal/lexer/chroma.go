package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/types"
)

// ChromaScanner scans with one of chroma's regular-expression lexers.
type ChromaScanner struct {
	name  string
	lexer chroma.Lexer
}

// NewChroma looks up the chroma lexer registered under name.
func NewChroma(name string) (*ChromaScanner, error) {
	l := lexers.Get(name)
	if l == nil {
		return nil, fmt.Errorf("%w: chroma lexer %q", ErrUnknownGrammar, name)
	}
	return &ChromaScanner{name: name, lexer: l}, nil
}

// chromaKind maps a chroma token type onto a token kind.
// emit is false for whitespace.
func chromaKind(t chroma.TokenType) (kind Kind, emit bool) {
	switch {
	case t.InCategory(chroma.Comment):
		return Comment, true
	case t.InSubCategory(chroma.LiteralString):
		return String, true
	case t.InSubCategory(chroma.LiteralNumber):
		return Number, true
	case t == chroma.OperatorWord, t.InCategory(chroma.Keyword), t.InCategory(chroma.Name):
		return Identifier, true
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return Operator, true
	case t.InCategory(chroma.Text):
		return Other, false
	}
	return Other, true
}

func (s *ChromaScanner) Scan(text string) []Token {
	it, err := s.lexer.Tokenise(nil, text)
	if err != nil {
		logger.Warnf("lexer: chroma %s tokenise failed: %v", s.name, err)
		return nil
	}

	var tokens []Token
	at := types.Position{Line: 1}
	for _, ct := range it.Tokens() {
		if ct.Type == chroma.Error {
			logger.DebugTagf("lexer", "chroma: unscannable input %q at %s, truncating", ct.Value, at)
			break
		}
		start := at
		at = at.Advance(ct.Value)

		kind, emit := chromaKind(ct.Type)
		if !emit || strings.TrimSpace(ct.Value) == "" {
			continue
		}
		n := len(tokens)
		switch {
		case kind == String && n > 0 && tokens[n-1].Kind == String && tokens[n-1].End == start:
			// Prefix, quotes and body arrive as separate string tokens.
			tokens[n-1].Text += ct.Value
			tokens[n-1].End = at
		case kind == Identifier && strings.EqualFold(ct.Value, "j") && n > 0 &&
			tokens[n-1].Kind == Number && tokens[n-1].End == start:
			// Complex literals such as 3j; chroma lexes the suffix as a name.
			tokens[n-1].Text += ct.Value
			tokens[n-1].End = at
		case kind == Identifier && strings.ContainsAny(ct.Value, ".@"):
			tokens = splitDotted(tokens, ct.Value, start)
		case ct.Type.InCategory(chroma.Punctuation) && utf8.RuneCountInString(ct.Value) > 1:
			tokens = splitRunes(tokens, ct.Value, start)
		default:
			tokens = append(tokens, Token{Kind: kind, Text: ct.Value, Start: start, End: at})
		}
	}
	return tokens
}

// splitDotted breaks qualified names such as "os.path" or "@app.route" into
// identifiers separated by operator tokens.
func splitDotted(tokens []Token, value string, start types.Position) []Token {
	at := start
	word := ""
	wordStart := at
	flush := func() {
		if word != "" {
			tokens = append(tokens, Token{Kind: Identifier, Text: word, Start: wordStart, End: at})
			word = ""
		}
	}
	for _, r := range value {
		if r == '.' || r == '@' {
			flush()
			next := types.Position{Line: at.Line, Col: at.Col + 1}
			tokens = append(tokens, Token{Kind: Operator, Text: string(r), Start: at, End: next})
			at = next
			continue
		}
		if word == "" {
			wordStart = at
		}
		word += string(r)
		at.Col++
	}
	flush()
	return tokens
}

func splitRunes(tokens []Token, value string, start types.Position) []Token {
	at := start
	for _, r := range value {
		next := at.Advance(string(r))
		tokens = append(tokens, Token{Kind: Operator, Text: string(r), Start: at, End: next})
		at = next
	}
	return tokens
}

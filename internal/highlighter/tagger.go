package highlighter

import (
	"github.com/bethropolis/quill/internal/highlighter/lang"
	"github.com/bethropolis/quill/internal/lexer"
)

// tagState is the bit carried from one token to the next:
// the next identifier names a function being defined.
type tagState struct {
	functionNext bool
}

// TagTokens classifies a whole-document token sequence in one forward pass.
// The state starts cleared on every call.
func TagTokens(tokens []lexer.Token, l *lang.Language) []Tag {
	tags := make([]Tag, 0, len(tokens))
	var st tagState
	var prev *lexer.Token
	for i := range tokens {
		var cat Category
		var ok bool
		cat, ok, st = classify(&tokens[i], prev, st, l)
		if ok {
			tags = append(tags, Tag{Category: cat, Span: tokens[i].Span()})
		}
		prev = &tokens[i]
	}
	return tags
}

// classify assigns a category to tok given the previous token and the carried state.
func classify(tok, prev *lexer.Token, st tagState, l *lang.Language) (Category, bool, tagState) {
	switch tok.Kind {
	case lexer.Comment:
		return CategoryComment, true, tagState{}
	case lexer.String:
		return CategoryString, true, tagState{}
	case lexer.Number:
		return CategoryNumber, true, tagState{}
	case lexer.Operator:
		return CategoryOperator, true, tagState{}
	case lexer.Identifier:
		return classifyIdentifier(tok.Text, prev, st, l)
	}
	return "", false, st
}

func classifyIdentifier(word string, prev *lexer.Token, st tagState, l *lang.Language) (Category, bool, tagState) {
	switch {
	case l.Keywords.Has(word):
		return CategoryKeyword, true, tagState{functionNext: word == l.DefinitionKeyword}
	case word == l.ReceiverName:
		return CategorySelf, true, tagState{}
	case l.Dunders.Has(word):
		return CategoryDunder, true, tagState{}
	case l.Builtins.Has(word):
		if prev != nil && prev.Kind == lexer.Operator && prev.Text == "." {
			return CategoryIdentifier, true, tagState{}
		}
		return CategoryBuiltin, true, tagState{}
	case st.functionNext:
		return CategoryFunctionName, true, tagState{}
	}
	return CategoryIdentifier, true, tagState{}
}

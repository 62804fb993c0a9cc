package find

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/quill/internal/buffer"
	"github.com/bethropolis/quill/internal/types"
)

// Validation errors for user input. NoMatches is reported through result flags, not errors.
var (
	ErrEmptyQuery            = errors.New("search text is empty")
	ErrWhitespaceOnlyQuery   = errors.New("search text is only whitespace")
	ErrEmptyReplacement      = errors.New("replacement text is empty")
	ErrWhitespaceReplacement = errors.New("replacement text contains whitespace")
)

// wordSeparator matches the run of whitespace between words of a whole-word query.
const wordSeparator = `[\s\v\x{85}\p{Z}]+`

// Match is one occurrence of a pattern.
type Match struct {
	Start types.Position
	End   types.Position
	Text  string
}

// Span returns the [Start, End) range of the match.
func (m Match) Span() types.Span {
	return types.Span{Start: m.Start, End: m.End}
}

// Pattern is a compiled search query.
type Pattern struct {
	Query     string
	WholeWord bool
	re        *regexp.Regexp
}

// ValidateQuery rejects empty and whitespace-only search text.
func ValidateQuery(query string) error {
	if query == "" {
		return ErrEmptyQuery
	}
	if strings.TrimSpace(query) == "" {
		return ErrWhitespaceOnlyQuery
	}
	return nil
}

// ValidateReplacement rejects empty replacements and any containing whitespace.
func ValidateReplacement(replacement string) error {
	if replacement == "" {
		return ErrEmptyReplacement
	}
	if strings.IndexFunc(replacement, unicode.IsSpace) >= 0 {
		return ErrWhitespaceReplacement
	}
	return nil
}

// Compile builds the pattern for query. The query is matched literally.
// In whole-word mode each word must stand alone and consecutive words may be
// separated by any run of whitespace.
func Compile(query string, wholeWord bool) (*Pattern, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}
	expr := regexp.QuoteMeta(query)
	if wholeWord {
		words := strings.Fields(query)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		expr = strings.Join(words, wordSeparator)
	}
	return &Pattern{Query: query, WholeWord: wholeWord, re: regexp.MustCompile(expr)}, nil
}

// isWordRune reports whether r can be part of an identifier.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// standsAlone reports whether text[start:end] has no identifier character on either side.
func standsAlone(text string, start, end int) bool {
	if before, size := utf8.DecodeLastRuneInString(text[:start]); size > 0 && isWordRune(before) {
		return false
	}
	if after, size := utf8.DecodeRuneInString(text[end:]); size > 0 && isWordRune(after) {
		return false
	}
	return true
}

// FindAll returns the non-overlapping matches in text, left to right.
// At each position the leftmost match wins.
func (p *Pattern) FindAll(text string) []Match {
	index := buffer.NewIndex(text)
	var matches []Match
	for off := 0; off < len(text); {
		loc := p.re.FindStringIndex(text[off:])
		if loc == nil {
			break
		}
		start, end := off+loc[0], off+loc[1]
		if p.WholeWord && !standsAlone(text, start, end) {
			// Retry one rune further so a candidate overlapping this one is not lost.
			_, size := utf8.DecodeRuneInString(text[start:])
			off = start + max(size, 1)
			continue
		}
		matches = append(matches, Match{
			Start: index.Position(start),
			End:   index.Position(end),
			Text:  text[start:end],
		})
		off = max(end, start+1)
	}
	return matches
}

// FindAll is a convenience wrapper over Pattern.FindAll.
func FindAll(text string, p *Pattern) []Match {
	return p.FindAll(text)
}

package highlighter

import (
	"github.com/bethropolis/quill/internal/types"
)

// Category is the display class assigned to a token.
// The string value doubles as the theme style key.
type Category string

const (
	CategoryComment      Category = "comment"
	CategoryString       Category = "string"
	CategoryKeyword      Category = "keyword"
	CategoryIdentifier   Category = "identifier"
	CategoryBuiltin      Category = "builtin"
	CategorySelf         Category = "self"
	CategoryDunder       Category = "dunder"
	CategoryNumber       Category = "number"
	CategoryOperator     Category = "operator"
	CategoryFunctionName Category = "function-name"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryComment, CategoryString, CategoryKeyword, CategoryIdentifier, CategoryBuiltin,
	CategorySelf, CategoryDunder, CategoryNumber, CategoryOperator, CategoryFunctionName,
}

// Tag assigns a category to a span of the document.
type Tag struct {
	Category Category
	Span     types.Span
}

// LineRange is the part of a tag that falls on one line.
// EndCol is -1 when the range runs to the end of the line.
type LineRange struct {
	StartCol int
	EndCol   int
	Category Category
}

// Result maps 1-based line numbers to the ranges drawn on that line.
type Result map[int][]LineRange

// ByLine splits tags into per-line ranges for drawing.
func ByLine(tags []Tag) Result {
	result := make(Result)
	for _, tag := range tags {
		start, end := tag.Span.Start, tag.Span.End
		for line := start.Line; line <= end.Line; line++ {
			r := LineRange{StartCol: 0, EndCol: -1, Category: tag.Category}
			if line == start.Line {
				r.StartCol = start.Col
			}
			if line == end.Line {
				r.EndCol = end.Col
			}
			if r.EndCol != -1 && r.EndCol <= r.StartCol {
				continue
			}
			result[line] = append(result[line], r)
		}
	}
	return result
}

// At returns the category covering col on line, if any.
func (r Result) At(line, col int) (Category, bool) {
	for _, lr := range r[line] {
		if col >= lr.StartCol && (lr.EndCol == -1 || col < lr.EndCol) {
			return lr.Category, true
		}
	}
	return "", false
}

// internal/types/position.go
package types

import "fmt"

// Position is a location in the document.
// Line is 1-based. Col is the 0-based rune index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Col < o.Col)
}

// Compare returns -1, 0 or 1 as p sorts before, equal to or after o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Before(o):
		return -1
	case o.Before(p):
		return 1
	}
	return 0
}

// Advance returns the position reached after text is placed at p.
func (p Position) Advance(text string) Position {
	for _, r := range text {
		if r == '\n' {
			p.Line++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Line, p.Col)
}

// Span is a half-open [Start, End) range of positions.
type Span struct {
	Start Position
	End   Position
}

// Normalized returns the span with Start not after End.
func (s Span) Normalized() Span {
	if s.End.Before(s.Start) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// IsEmpty reports whether the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether p lies inside the span.
func (s Span) Contains(p Position) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}

func (s Span) String() string {
	return fmt.Sprintf("[%s, %s)", s.Start, s.End)
}

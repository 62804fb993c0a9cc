package find

// Direction of navigation through the match list.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "Up"
	}
	return "Down"
}

// Search cursor sentinels.
const (
	// NoMatch means no match has been visited yet.
	NoMatch = -1
	// FirstUpSearch is where a backward step from NoMatch lands. It never wraps.
	FirstUpSearch = -2
)

// Advance moves the search cursor one step through n matches.
// With wrap the cursor cycles, except that the first backward step from a
// fresh search clamps to the first match. Without wrap it stops at either end.
func Advance(n, cursor int, dir Direction, wrap bool) int {
	if n <= 0 {
		return NoMatch
	}
	next := cursor + int(dir)
	if wrap && next != FirstUpSearch {
		return ((next % n) + n) % n
	}
	return max(0, min(next, n-1))
}

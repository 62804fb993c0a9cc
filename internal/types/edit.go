package types

// EditInfo describes a single buffer mutation. Subscribers use it to
// decide what to recompute after a BufferModified event.
type EditInfo struct {
	Start  Position // Where the edit began
	OldEnd Position // End of the replaced text before the edit
	NewEnd Position // End of the inserted text after the edit
}


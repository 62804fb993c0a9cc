package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in a line.
// The index one past the last rune maps to len(line). Returns -1 if
// runeIndex is negative or past the end.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex < 0 {
		return -1
	}
	byteOffset := 0
	for currentRune := 0; currentRune < runeIndex; currentRune++ {
		if byteOffset >= len(line) {
			return -1
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
	}
	return byteOffset
}

package components

// MoveCursor moves cursor by delta rows, clamped to [0, rows).
func MoveCursor(cursor, delta, rows int) int {
	if rows == 0 {
		return 0
	}
	return max(0, min(cursor+delta, rows-1))
}

// AdjustOffset returns the first shown row such that cursor stays inside a
// window of height rows.
func AdjustOffset(cursor, offset, height int) int {
	height = max(height, 1)
	switch {
	case cursor < offset:
		return cursor
	case cursor >= offset+height:
		return cursor - height + 1
	}
	return offset
}

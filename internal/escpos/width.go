package escpos

// RuneWidth returns the number of print columns a rune occupies on the
// fixed-width paper grid: ASCII is half width (1 column), everything
// else prints as a full-width glyph (2 columns).
func RuneWidth(r rune) int {
	if r <= 0x7F {
		return 1
	}
	return 2
}

// StringWidth returns the total print column count of s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

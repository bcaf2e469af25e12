package escpos

// PaperWidth selects the physical paper size. It fixes the printable
// dot width and the half/full-width column counts per line.
type PaperWidth int

const (
	// Paper58 is the 58mm roll, the default.
	Paper58 PaperWidth = iota
	// Paper80 is the 80mm roll.
	Paper80
)

// PaperWidthFromHint maps a caller-supplied millimeter hint to a paper
// width. Anything other than 80 selects the narrower default.
func PaperWidthFromHint(mm int) PaperWidth {
	if mm == 80 {
		return Paper80
	}
	return Paper58
}

// Dots returns the printable area width in dots.
func (w PaperWidth) Dots() uint16 {
	if w == Paper80 {
		return 576
	}
	return 384
}

// Chars returns the half-width characters per line.
func (w PaperWidth) Chars() int {
	if w == Paper80 {
		return 48
	}
	return 32
}

// WideChars returns the full-width characters per line.
func (w PaperWidth) WideChars() int {
	if w == Paper80 {
		return 24
	}
	return 16
}

func (w PaperWidth) String() string {
	if w == Paper80 {
		return "80mm"
	}
	return "58mm"
}

// Align is the horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle describes the styling of one text operation. The zero value
// is plain left-aligned text. Styles are plain values; the printer reads
// them and always restores the hardware to the unstyled baseline.
type TextStyle struct {
	Bold         bool
	Underline    bool
	DoubleWidth  bool
	DoubleHeight bool
	Reverse      bool
	Align        Align
}

// WithBold returns a copy with bold set.
func (s TextStyle) WithBold() TextStyle {
	s.Bold = true
	return s
}

// WithUnderline returns a copy with underline set.
func (s TextStyle) WithUnderline() TextStyle {
	s.Underline = true
	return s
}

// WithDouble returns a copy with both dimensions doubled.
func (s TextStyle) WithDouble() TextStyle {
	s.DoubleWidth = true
	s.DoubleHeight = true
	return s
}

// WithReverse returns a copy with reverse video set.
func (s TextStyle) WithReverse() TextStyle {
	s.Reverse = true
	return s
}

// WithAlign returns a copy with the given alignment.
func (s TextStyle) WithAlign(a Align) TextStyle {
	s.Align = a
	return s
}

// Stamp is the emphasis style for total and title blocks: bold reverse
// video at double size, centered.
func Stamp() TextStyle {
	return TextStyle{}.WithBold().WithReverse().WithDouble().WithAlign(AlignCenter)
}

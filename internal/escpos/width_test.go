package escpos

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'A', 1},
		{' ', 1},
		{0x00, 1},
		{0x7F, 1},
		{'あ', 2},
		{'ア', 2},
		{'漢', 2},
		{'￥', 2},
		{'¥', 2}, // U+00A5 is outside ASCII, counted full width
	}

	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestStringWidth_ASCIIEqualsLength(t *testing.T) {
	s := "Hello, world! 0123456789"
	if got := StringWidth(s); got != len(s) {
		t.Errorf("StringWidth(%q) = %d, want %d", s, got, len(s))
	}
}

func TestStringWidth_FullWidthDoublesLength(t *testing.T) {
	s := "こんにちは"
	if got := StringWidth(s); got != 10 {
		t.Errorf("StringWidth(%q) = %d, want 10", s, got)
	}
}

func TestStringWidth_Mixed(t *testing.T) {
	// 2 ASCII + 2 full-width = 6 columns
	if got := StringWidth("A1あい"); got != 6 {
		t.Errorf("StringWidth = %d, want 6", got)
	}
}

func TestStringWidth_Empty(t *testing.T) {
	if got := StringWidth(""); got != 0 {
		t.Errorf("StringWidth(\"\") = %d, want 0", got)
	}
}

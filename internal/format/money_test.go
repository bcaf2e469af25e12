package format

import "testing"

func TestFormatYen(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "¥0"},
		{16, "¥16"},
		{660, "¥660"},
		{1000, "¥1,000"},
		{1234567, "¥1,234,567"},
		{100000000, "¥100,000,000"},
		{-1500, "-¥1,500"},
	}

	for _, tt := range tests {
		if got := FormatYen(tt.in); got != tt.want {
			t.Errorf("FormatYen(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFullWidthDigits(t *testing.T) {
	if got := FullWidthDigits("1205"); got != "１２０５" {
		t.Errorf("FullWidthDigits(1205) = %q, want １２０５", got)
	}

	// Non-digit runes pass through untouched.
	if got := FullWidthDigits("¥1,205円"); got != "¥１,２０５円" {
		t.Errorf("FullWidthDigits mixed = %q", got)
	}

	if got := FullWidthDigits(""); got != "" {
		t.Errorf("FullWidthDigits empty = %q", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-08-30T14:05:00+09:00", "2026/08/30 14:05"},
		{"2026-08-30 14:05:00", "2026/08/30 14:05"},
		{"2026-08-30T14:05", "2026/08/30 14:05"},
		// Shorter than 16 characters passes through unchanged.
		{"2026-08-30", "2026-08-30"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatYenSigned(t *testing.T) {
	if got := FormatYenSigned(400); got != "+¥400" {
		t.Errorf("FormatYenSigned(400) = %q", got)
	}
	if got := FormatYenSigned(-400); got != "-¥400" {
		t.Errorf("FormatYenSigned(-400) = %q", got)
	}
}

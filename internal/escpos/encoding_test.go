package escpos

import (
	"bytes"
	"testing"
)

func TestEncodeShiftJIS_ASCIIPassthrough(t *testing.T) {
	got := EncodeShiftJIS("Receipt No.42")
	if !bytes.Equal(got, []byte("Receipt No.42")) {
		t.Errorf("ASCII not passed through: %v", got)
	}
}

func TestEncodeShiftJIS_Kanji(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"あ", []byte{0x82, 0xA0}},
		{"ア", []byte{0x83, 0x41}},
		{"日", []byte{0x93, 0xFA}},
	}

	for _, tt := range tests {
		if got := EncodeShiftJIS(tt.in); !bytes.Equal(got, tt.want) {
			t.Errorf("EncodeShiftJIS(%q) = % X, want % X", tt.in, got, tt.want)
		}
	}
}

func TestEncodeShiftJIS_YenSignIsJISX0201Backslash(t *testing.T) {
	// x/text alone has no mapping for U+00A5 and would emit a
	// substitution byte. The printer draws 0x5C as ¥, so every money
	// line depends on this override.
	tests := []struct {
		in   string
		want []byte
	}{
		{"¥100", []byte{0x5C, '1', '0', '0'}},
		{"-¥1,500", []byte{'-', 0x5C, '1', ',', '5', '0', '0'}},
		{"‾", []byte{0x7E}},
	}

	for _, tt := range tests {
		if got := EncodeShiftJIS(tt.in); !bytes.Equal(got, tt.want) {
			t.Errorf("EncodeShiftJIS(%q) = % X, want % X", tt.in, got, tt.want)
		}
	}
}

func TestEncodeShiftJIS_UnmappableSubstituted(t *testing.T) {
	// The euro sign has no Shift-JIS mapping; the encoder must degrade,
	// not fail, and must still emit the surrounding text.
	got := EncodeShiftJIS("a€b")
	if len(got) < 2 {
		t.Fatalf("unexpectedly short output: %v", got)
	}
	if got[0] != 'a' || got[len(got)-1] != 'b' {
		t.Errorf("surrounding text lost: % X", got)
	}
}

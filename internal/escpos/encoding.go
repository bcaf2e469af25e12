package escpos

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// EncodeShiftJIS converts text to the Shift-JIS byte sequence the
// printer's kanji mode expects. Unmappable runes are substituted rather
// than reported; a receipt with a degraded glyph still has to print.
//
// U+00A5 and U+203E are mapped to 0x5C and 0x7E first, following the
// WHATWG Shift_JIS encoder. The printer's JIS X 0201 table renders
// those bytes as the yen sign and the overline, so currency lines keep
// their glyph instead of picking up a substitution byte.
func EncodeShiftJIS(text string) []byte {
	text = jisX0201Overrides.Replace(text)
	enc := encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder())
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		// Unreachable with the replacement wrapper, but the raw bytes
		// are a better fallback than dropping the line.
		return []byte(text)
	}
	return out
}

var jisX0201Overrides = strings.NewReplacer(
	"¥", "\x5c", // yen sign
	"‾", "\x7e", // overline
)

// Package escpos builds ESC/POS command streams for Japanese thermal
// receipt printers and drives them over an injected transport.
package escpos

// Control bytes
const (
	esc byte = 0x1B
	gs  byte = 0x1D
	fs  byte = 0x1C
)

// Fixed command sequences. These must match the printer dialect byte for
// byte; the hardware has no NAK channel and silently misprints on malformed
// input.
var (
	cmdInit       = []byte{esc, 0x40}
	cmdLineFeed   = []byte{0x0A}
	cmdFullCut    = []byte{gs, 0x56, 0x00}
	cmdPartialCut = []byte{gs, 0x56, 0x01}

	cmdBoldOn  = []byte{esc, 0x45, 0x01}
	cmdBoldOff = []byte{esc, 0x45, 0x00}

	// ESC - underlines single-byte glyphs, FS - underlines kanji.
	cmdUnderlineOn       = []byte{esc, 0x2D, 0x01}
	cmdUnderlineOff      = []byte{esc, 0x2D, 0x00}
	cmdKanjiUnderlineOn  = []byte{fs, 0x2D, 0x01}
	cmdKanjiUnderlineOff = []byte{fs, 0x2D, 0x00}

	cmdAlignLeft   = []byte{esc, 0x61, 0x00}
	cmdAlignCenter = []byte{esc, 0x61, 0x01}
	cmdAlignRight  = []byte{esc, 0x61, 0x02}

	cmdReverseOn  = []byte{gs, 0x42, 0x01}
	cmdReverseOff = []byte{gs, 0x42, 0x00}

	// ESC ! with width+height bits; renders correctly combined with
	// reverse video, unlike the FS ! size flags.
	cmdDoubleSize = []byte{esc, 0x21, 0x30}
	cmdNormalSize = []byte{esc, 0x21, 0x00}

	cmdCodeTableJIS   = []byte{esc, 0x74, 0x02}
	cmdKanjiCharset   = []byte{fs, 0x43, 0x01}
	cmdKanjiModeOn    = []byte{fs, 0x26}
	cmdKanjiModeOff   = []byte{fs, 0x2E}
	cmdKanjiSizeReset = []byte{fs, 0x21, 0x00}

	// QR sub-protocol, GS ( k framing:
	// fn=165 select model, fn=167 cell size, fn=169 error level,
	// fn=180 store data, fn=181 print symbol.
	cmdQRModel2 = []byte{gs, 0x28, 0x6B, 0x04, 0x00, 0x31, 0xA5, 0x32, 0x00}
	cmdQRErrorL = []byte{gs, 0x28, 0x6B, 0x03, 0x00, 0x31, 0xA9, 0x30}
	cmdQRErrorM = []byte{gs, 0x28, 0x6B, 0x03, 0x00, 0x31, 0xA9, 0x31}
	cmdQRPrint  = []byte{gs, 0x28, 0x6B, 0x03, 0x00, 0x31, 0xB5, 0x30}

	// HRI text below the barcode.
	cmdBarcodeHRIBelow = []byte{gs, 0x48, 0x02}
)

// LeftMargin returns GS L with the dot offset split little-endian.
func LeftMargin(dots uint16) []byte {
	return []byte{gs, 0x4C, byte(dots), byte(dots >> 8)}
}

// PrintAreaWidth returns GS W with the dot width split little-endian.
func PrintAreaWidth(dots uint16) []byte {
	return []byte{gs, 0x57, byte(dots), byte(dots >> 8)}
}

// KanjiSize returns FS ! with the given size flag byte
// (0x04 = double width, 0x08 = double height).
func KanjiSize(flag byte) []byte {
	return []byte{fs, 0x21, flag}
}

// QRCellSize returns the fn=167 frame. The cell size is clamped to the
// hardware range 1..16.
func QRCellSize(size int) []byte {
	if size < 1 {
		size = 1
	}
	if size > 16 {
		size = 16
	}
	return []byte{gs, 0x28, 0x6B, 0x03, 0x00, 0x31, 0xA7, byte(size)}
}

// QRStore returns the fn=180 frame storing data in the symbol storage
// area. The declared length is the payload byte count plus the three
// header bytes (cn, fn, m), little-endian across pL and pH.
func QRStore(data []byte) []byte {
	n := len(data) + 3
	cmd := make([]byte, 0, len(data)+8)
	cmd = append(cmd, gs, 0x28, 0x6B, byte(n), byte(n>>8), 0x31, 0xB4, 0x30)
	return append(cmd, data...)
}

// BarcodeHeight returns GS h with the height in dots.
func BarcodeHeight(dots byte) []byte {
	return []byte{gs, 0x68, dots}
}

// BarcodeModuleWidth returns GS w, clamped to the hardware range 2..6.
func BarcodeModuleWidth(width int) []byte {
	if width < 2 {
		width = 2
	}
	if width > 6 {
		width = 6
	}
	return []byte{gs, 0x77, byte(width)}
}

// BarcodeCODE128 returns GS k m=73 with an 8-bit length prefix equal to
// the raw payload byte count.
func BarcodeCODE128(data []byte) []byte {
	cmd := make([]byte, 0, len(data)+4)
	cmd = append(cmd, gs, 0x6B, 0x49, byte(len(data)))
	return append(cmd, data...)
}

package escpos

import (
	"fmt"
	"strings"
)

// Transport is the byte sink the printer writes to. Every command batch
// is written and then flushed; a failure of either aborts the print.
type Transport interface {
	Write(p []byte) error
	Flush() error
}

// Printer drives one thermal printer for the duration of a single print
// session. It owns the only stateful part of the protocol: style
// commands persist on the device across writes, so every text operation
// restores the baseline (left aligned, all attributes off) before
// returning.
//
// A Printer is not safe for concurrent use; callers serialize print
// requests per physical device.
type Printer struct {
	transport Transport
	paper     PaperWidth
}

// NewPrinter creates a printer on 58mm paper.
func NewPrinter(t Transport) *Printer {
	return &Printer{transport: t, paper: Paper58}
}

// NewPrinterWithPaper creates a printer for the given paper width.
func NewPrinterWithPaper(t Transport, paper PaperWidth) *Printer {
	return &Printer{transport: t, paper: paper}
}

// Paper returns the paper width of this session.
func (p *Printer) Paper() PaperWidth {
	return p.paper
}

// CharsPerLine returns the half-width column count of the paper.
func (p *Printer) CharsPerLine() int {
	return p.paper.Chars()
}

func (p *Printer) raw(data []byte) error {
	if err := p.transport.Write(data); err != nil {
		return fmt.Errorf("printer write failed: %w", err)
	}
	if err := p.transport.Flush(); err != nil {
		return fmt.Errorf("printer flush failed: %w", err)
	}
	return nil
}

// Init resets the printer, selects the JIS code table and kanji
// character set, and sets the print area to the full paper width.
func (p *Printer) Init() error {
	if err := p.raw(cmdInit); err != nil {
		return err
	}
	if err := p.raw(cmdCodeTableJIS); err != nil {
		return err
	}
	if err := p.raw(cmdKanjiCharset); err != nil {
		return err
	}
	return p.SetPrintAreaWidth(p.paper.Dots())
}

// SetLeftMargin sets the left margin in dots.
func (p *Printer) SetLeftMargin(dots uint16) error {
	return p.raw(LeftMargin(dots))
}

// SetPrintAreaWidth sets the printable area width in dots.
func (p *Printer) SetPrintAreaWidth(dots uint16) error {
	return p.raw(PrintAreaWidth(dots))
}

// Feed advances the paper by the given number of lines.
func (p *Printer) Feed(lines int) error {
	for i := 0; i < lines; i++ {
		if err := p.raw(cmdLineFeed); err != nil {
			return err
		}
	}
	return nil
}

// Cut performs a full paper cut.
func (p *Printer) Cut() error {
	return p.raw(cmdFullCut)
}

// PartialCut performs a partial paper cut.
func (p *Printer) PartialCut() error {
	return p.raw(cmdPartialCut)
}

func (p *Printer) setAlign(a Align) error {
	switch a {
	case AlignCenter:
		return p.raw(cmdAlignCenter)
	case AlignRight:
		return p.raw(cmdAlignRight)
	default:
		return p.raw(cmdAlignLeft)
	}
}

func (p *Printer) setBold(on bool) error {
	if on {
		return p.raw(cmdBoldOn)
	}
	return p.raw(cmdBoldOff)
}

func (p *Printer) setUnderline(on bool) error {
	// Both the single-byte and the kanji underline have to toggle or
	// mixed-width lines underline only partially.
	if on {
		if err := p.raw(cmdUnderlineOn); err != nil {
			return err
		}
		return p.raw(cmdKanjiUnderlineOn)
	}
	if err := p.raw(cmdUnderlineOff); err != nil {
		return err
	}
	return p.raw(cmdKanjiUnderlineOff)
}

func (p *Printer) setReverse(on bool) error {
	if on {
		return p.raw(cmdReverseOn)
	}
	return p.raw(cmdReverseOff)
}

func (p *Printer) setDoubleSize(on bool) error {
	if on {
		return p.raw(cmdDoubleSize)
	}
	return p.raw(cmdNormalSize)
}

// Text prints unstyled text without a trailing line feed.
func (p *Printer) Text(text string) error {
	return p.StyledText(text, TextStyle{})
}

// Textln prints unstyled text followed by a line feed.
func (p *Printer) Textln(text string) error {
	return p.StyledTextln(text, TextStyle{})
}

// StyledText prints one styled run of text. Styling commands are
// sequenced around the encoded bytes and the device is always restored
// to the baseline before returning, whether or not the write succeeds
// up to that point (on transport failure the operation aborts
// immediately; partial output cannot be recalled from paper).
func (p *Printer) StyledText(text string, style TextStyle) error {
	if err := p.setAlign(style.Align); err != nil {
		return err
	}
	if err := p.setBold(style.Bold); err != nil {
		return err
	}
	if err := p.setUnderline(style.Underline); err != nil {
		return err
	}
	if err := p.setReverse(style.Reverse); err != nil {
		return err
	}

	// When both dimensions double, ESC ! is used instead of the FS !
	// size flags; only that path renders correctly with reverse video.
	useDoubleSize := style.DoubleWidth && style.DoubleHeight
	if useDoubleSize {
		if err := p.setDoubleSize(true); err != nil {
			return err
		}
	}

	if err := p.raw(cmdKanjiModeOn); err != nil {
		return err
	}

	var sizeFlag byte
	if !useDoubleSize {
		if style.DoubleWidth {
			sizeFlag |= 0x04
		}
		if style.DoubleHeight {
			sizeFlag |= 0x08
		}
	}

	if sizeFlag != 0 {
		if err := p.raw(KanjiSize(sizeFlag)); err != nil {
			return err
		}
	}

	if err := p.raw(EncodeShiftJIS(text)); err != nil {
		return err
	}

	if sizeFlag != 0 {
		if err := p.raw(cmdKanjiSizeReset); err != nil {
			return err
		}
	}

	if err := p.raw(cmdKanjiModeOff); err != nil {
		return err
	}

	if useDoubleSize {
		if err := p.setDoubleSize(false); err != nil {
			return err
		}
	}

	if err := p.setBold(false); err != nil {
		return err
	}
	if err := p.setUnderline(false); err != nil {
		return err
	}
	if err := p.setReverse(false); err != nil {
		return err
	}
	return p.setAlign(AlignLeft)
}

// StyledTextln prints styled text followed by a line feed.
func (p *Printer) StyledTextln(text string, style TextStyle) error {
	if err := p.StyledText(text, style); err != nil {
		return err
	}
	return p.Feed(1)
}

// PaddedTextln prints text padded with spaces to the full line width,
// so that reverse-video stamp blocks get a contiguous background fill.
// When double width is styled each glyph cell doubles, so the
// full-width column count governs the target width. The alignment is
// baked into the padding and the line prints left aligned.
func (p *Printer) PaddedTextln(text string, style TextStyle) error {
	lineWidth := p.paper.Chars()
	if style.DoubleWidth {
		lineWidth = p.paper.WideChars()
	}

	pad := lineWidth - StringWidth(text)
	if pad < 0 {
		pad = 0
	}

	var padded string
	switch style.Align {
	case AlignCenter:
		left := pad / 2
		padded = strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	case AlignRight:
		padded = strings.Repeat(" ", pad) + text
	default:
		padded = text + strings.Repeat(" ", pad)
	}

	style.Align = AlignLeft
	return p.StyledTextln(padded, style)
}

// Row prints a label on the left and a value on the right, justified to
// the given line width with interior spaces. Content wider than the
// line is printed without padding; overflow wrapping is the caller's
// problem.
func (p *Printer) Row(left, right string, width int) error {
	fill := width - StringWidth(left) - StringWidth(right)
	if fill < 0 {
		fill = 0
	}
	return p.Textln(left + strings.Repeat(" ", fill) + right)
}

// RowAuto prints a Row across the full paper width.
func (p *Printer) RowAuto(left, right string) error {
	return p.Row(left, right, p.paper.Chars())
}

// Line prints a '-' rule of the given width.
func (p *Printer) Line(width int) error {
	return p.Textln(strings.Repeat("-", width))
}

// Separator prints a '-' rule across the paper.
func (p *Printer) Separator() error {
	return p.Line(p.paper.Chars())
}

// DoubleLine prints a '=' rule of the given width.
func (p *Printer) DoubleLine(width int) error {
	return p.Textln(strings.Repeat("=", width))
}

// DoubleSeparator prints a '=' rule across the paper.
func (p *Printer) DoubleSeparator() error {
	return p.DoubleLine(p.paper.Chars())
}

package escpos

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// memSink collects everything the printer writes. failAfter > 0 makes
// the Nth write fail, for fail-fast checks.
type memSink struct {
	buf       bytes.Buffer
	writes    int
	flushes   int
	failAfter int
}

func (s *memSink) Write(p []byte) error {
	s.writes++
	if s.failAfter > 0 && s.writes >= s.failAfter {
		return errors.New("device gone")
	}
	s.buf.Write(p)
	return nil
}

func (s *memSink) Flush() error {
	s.flushes++
	return nil
}

func concat(chunks ...[]byte) []byte {
	var out []byte
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func TestTextln_CommandSequence(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Textln("A"); err != nil {
		t.Fatalf("Textln failed: %v", err)
	}

	want := concat(
		cmdAlignLeft,
		cmdBoldOff,
		cmdUnderlineOff, cmdKanjiUnderlineOff,
		cmdReverseOff,
		cmdKanjiModeOn,
		[]byte("A"),
		cmdKanjiModeOff,
		cmdBoldOff,
		cmdUnderlineOff, cmdKanjiUnderlineOff,
		cmdReverseOff,
		cmdAlignLeft,
		cmdLineFeed,
	)
	if !bytes.Equal(sink.buf.Bytes(), want) {
		t.Errorf("stream mismatch:\ngot  % X\nwant % X", sink.buf.Bytes(), want)
	}
}

func TestStyledText_RestoresBaseline(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	style := TextStyle{Bold: true, Underline: true, Reverse: true, Align: AlignCenter}
	if err := p.StyledText("X", style); err != nil {
		t.Fatalf("StyledText failed: %v", err)
	}

	// Whatever was switched on must be switched back off, ending on
	// align-left so the device carries no state into the next call.
	tail := concat(
		cmdKanjiModeOff,
		cmdBoldOff,
		cmdUnderlineOff, cmdKanjiUnderlineOff,
		cmdReverseOff,
		cmdAlignLeft,
	)
	got := sink.buf.Bytes()
	if !bytes.HasSuffix(got, tail) {
		t.Errorf("stream does not end with restore sequence:\ngot % X", got)
	}

	head := concat(cmdAlignCenter, cmdBoldOn, cmdUnderlineOn, cmdKanjiUnderlineOn, cmdReverseOn)
	if !bytes.HasPrefix(got, head) {
		t.Errorf("stream does not begin with style sequence:\ngot % X", got)
	}
}

func TestStyledText_DoubleSizeUsesCombinedCommand(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	style := TextStyle{DoubleWidth: true, DoubleHeight: true}
	if err := p.StyledText("大", style); err != nil {
		t.Fatalf("StyledText failed: %v", err)
	}

	got := sink.buf.Bytes()
	if !bytes.Contains(got, cmdDoubleSize) {
		t.Error("expected ESC ! double size command")
	}
	if !bytes.Contains(got, cmdNormalSize) {
		t.Error("expected ESC ! size restore")
	}
	// The FS ! flag dance must not happen on this path.
	if bytes.Contains(got, KanjiSize(0x0C)) {
		t.Error("FS ! size flags must not be used when both dimensions double")
	}
}

func TestStyledText_SingleDimensionUsesKanjiSizeFlags(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.StyledText("広", TextStyle{DoubleWidth: true}); err != nil {
		t.Fatalf("StyledText failed: %v", err)
	}

	got := sink.buf.Bytes()
	if !bytes.Contains(got, KanjiSize(0x04)) {
		t.Error("expected FS ! with double-width flag")
	}
	if !bytes.Contains(got, cmdKanjiSizeReset) {
		t.Error("expected FS ! flag reset after text")
	}
	if bytes.Contains(got, cmdDoubleSize) {
		t.Error("ESC ! must not be used for a single doubled dimension")
	}
}

func TestStyledText_KanjiModeWrapsTextOnly(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Text("領収書"); err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	got := sink.buf.Bytes()
	on := bytes.Index(got, cmdKanjiModeOn)
	off := bytes.Index(got, cmdKanjiModeOff)
	if on < 0 || off < 0 || off < on {
		t.Fatalf("kanji mode not entered/exited in order")
	}
	inner := got[on+len(cmdKanjiModeOn) : off]
	if !bytes.Equal(inner, EncodeShiftJIS("領収書")) {
		t.Errorf("kanji window holds % X, want encoded text only", inner)
	}
}

func TestRow_InteriorFill(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Row("A", "B", 10); err != nil {
		t.Fatalf("Row failed: %v", err)
	}

	// fill = width - leftWidth - rightWidth = 10 - 1 - 1
	if !bytes.Contains(sink.buf.Bytes(), []byte("A"+strings.Repeat(" ", 8)+"B")) {
		t.Errorf("expected 8 interior spaces, got stream % X", sink.buf.Bytes())
	}
}

func TestRow_OverflowSaturatesToZeroFill(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Row("ABCDEFGHIJ", "K", 10); err != nil {
		t.Fatalf("Row failed: %v", err)
	}

	if !bytes.Contains(sink.buf.Bytes(), []byte("ABCDEFGHIJK")) {
		t.Errorf("expected zero interior spaces, got stream % X", sink.buf.Bytes())
	}
}

func TestRow_FullWidthGlyphsCountDouble(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	// "合計" occupies 4 columns, "¥100" occupies 5 (¥ is full width).
	if err := p.Row("合計", "¥100", 12); err != nil {
		t.Fatalf("Row failed: %v", err)
	}

	want := EncodeShiftJIS("合計" + strings.Repeat(" ", 3) + "¥100")
	if !bytes.Contains(sink.buf.Bytes(), want) {
		t.Errorf("full-width fill wrong, stream % X", sink.buf.Bytes())
	}
}

func TestPaddedTextln_CenterSplitsRemainderRight(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink) // 32 half-width columns

	// Width 5 on 32 columns: 27 to fill, 13 left / 14 right.
	if err := p.PaddedTextln("STAMP", TextStyle{Align: AlignCenter}); err != nil {
		t.Fatalf("PaddedTextln failed: %v", err)
	}

	want := strings.Repeat(" ", 13) + "STAMP" + strings.Repeat(" ", 14)
	if !bytes.Contains(sink.buf.Bytes(), []byte(want)) {
		t.Errorf("center padding wrong, stream %q", sink.buf.String())
	}
}

func TestPaddedTextln_RightPadsLeft(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.PaddedTextln("AB", TextStyle{Align: AlignRight}); err != nil {
		t.Fatalf("PaddedTextln failed: %v", err)
	}

	want := strings.Repeat(" ", 30) + "AB"
	if !bytes.Contains(sink.buf.Bytes(), []byte(want)) {
		t.Errorf("right padding wrong, stream %q", sink.buf.String())
	}
}

func TestPaddedTextln_DoubleWidthUsesWideColumns(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink) // 16 full-width columns

	style := TextStyle{DoubleWidth: true, DoubleHeight: true, Align: AlignCenter}
	if err := p.PaddedTextln("票", style); err != nil {
		t.Fatalf("PaddedTextln failed: %v", err)
	}

	// Width 2 on 16 columns: 14 to fill, 7 left / 7 right.
	want := EncodeShiftJIS(strings.Repeat(" ", 7) + "票" + strings.Repeat(" ", 7))
	if !bytes.Contains(sink.buf.Bytes(), want) {
		t.Errorf("wide-column padding wrong, stream % X", sink.buf.Bytes())
	}
}

func TestSeparators(t *testing.T) {
	sink := &memSink{}
	p := NewPrinterWithPaper(sink, Paper80)

	if err := p.Separator(); err != nil {
		t.Fatalf("Separator failed: %v", err)
	}
	if err := p.DoubleSeparator(); err != nil {
		t.Fatalf("DoubleSeparator failed: %v", err)
	}

	got := sink.buf.Bytes()
	if !bytes.Contains(got, []byte(strings.Repeat("-", 48))) {
		t.Error("expected 48-column dash rule on 80mm paper")
	}
	if !bytes.Contains(got, []byte(strings.Repeat("=", 48))) {
		t.Error("expected 48-column double rule on 80mm paper")
	}
}

func TestInit_SelectsJISAndPrintArea(t *testing.T) {
	sink := &memSink{}
	p := NewPrinterWithPaper(sink, Paper80)

	if err := p.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	want := concat(cmdInit, cmdCodeTableJIS, cmdKanjiCharset, PrintAreaWidth(576))
	if !bytes.Equal(sink.buf.Bytes(), want) {
		t.Errorf("init stream mismatch:\ngot  % X\nwant % X", sink.buf.Bytes(), want)
	}
}

func TestWriteFailureAborts(t *testing.T) {
	sink := &memSink{failAfter: 3}
	p := NewPrinter(sink)

	err := p.Textln("hello")
	if err == nil {
		t.Fatal("expected error from failing transport")
	}
	// Nothing more is written after the failing call.
	if sink.writes != 3 {
		t.Errorf("writes after failure = %d, want 3", sink.writes)
	}
}

func TestEveryWriteIsFlushed(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Textln("flush check"); err != nil {
		t.Fatalf("Textln failed: %v", err)
	}
	if sink.writes != sink.flushes {
		t.Errorf("writes = %d, flushes = %d; every batch must flush", sink.writes, sink.flushes)
	}
}

func TestFeed(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Feed(3); err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if !bytes.Equal(sink.buf.Bytes(), []byte{0x0A, 0x0A, 0x0A}) {
		t.Errorf("Feed(3) stream = % X", sink.buf.Bytes())
	}
}

func TestCutCommands(t *testing.T) {
	sink := &memSink{}
	p := NewPrinter(sink)

	if err := p.Cut(); err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	if err := p.PartialCut(); err != nil {
		t.Fatalf("PartialCut failed: %v", err)
	}

	want := concat(cmdFullCut, cmdPartialCut)
	if !bytes.Equal(sink.buf.Bytes(), want) {
		t.Errorf("cut stream = % X, want % X", sink.buf.Bytes(), want)
	}
}

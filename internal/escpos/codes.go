package escpos

import (
	"fmt"

	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// QRErrorLevel selects the symbol error correction level.
type QRErrorLevel int

const (
	// QRErrorM is the receipt default.
	QRErrorM QRErrorLevel = iota
	QRErrorL
)

// DefaultQRSize is the module (cell) size used when callers pass 0.
const DefaultQRSize = 4

// DefaultBarcodeHeight is the CODE128 bar height in dots.
const DefaultBarcodeHeight = 50

// DefaultBarcodeWidth is the CODE128 module width.
const DefaultBarcodeWidth = 2

// QRCode stores and prints a QR symbol. The sub-commands must go out in
// protocol order: model, cell size, error level, store, print. The data
// is checked host-side for encodability first; the printer itself never
// reports a bad symbol, it just prints nothing.
func (p *Printer) QRCode(data string, size int, level QRErrorLevel) error {
	ecLevel := qrcode.Medium
	cmdLevel := cmdQRErrorM
	if level == QRErrorL {
		ecLevel = qrcode.Low
		cmdLevel = cmdQRErrorL
	}
	if _, err := qrcode.New(data, ecLevel); err != nil {
		return fmt.Errorf("qr data not encodable: %w", err)
	}

	if size == 0 {
		size = DefaultQRSize
	}

	if err := p.raw(cmdQRModel2); err != nil {
		return err
	}
	if err := p.raw(QRCellSize(size)); err != nil {
		return err
	}
	if err := p.raw(cmdLevel); err != nil {
		return err
	}
	if err := p.raw(QRStore([]byte(data))); err != nil {
		return err
	}
	return p.raw(cmdQRPrint)
}

// QRCodeCentered prints a QR symbol centered on the line.
func (p *Printer) QRCodeCentered(data string, size int, level QRErrorLevel) error {
	if err := p.setAlign(AlignCenter); err != nil {
		return err
	}
	if err := p.QRCode(data, size, level); err != nil {
		return err
	}
	return p.setAlign(AlignLeft)
}

// Barcode prints a CODE128 barcode with HRI text below it. The payload
// stays ASCII on the wire; the 8-bit length prefix counts raw payload
// bytes. Height 0 and width 0 select the defaults.
func (p *Printer) Barcode(data string, height byte, width int) error {
	if _, err := code128.Encode(data); err != nil {
		return fmt.Errorf("barcode data not encodable as CODE128: %w", err)
	}

	if height == 0 {
		height = DefaultBarcodeHeight
	}
	if width == 0 {
		width = DefaultBarcodeWidth
	}

	if err := p.raw(cmdBarcodeHRIBelow); err != nil {
		return err
	}
	if err := p.raw(BarcodeHeight(height)); err != nil {
		return err
	}
	if err := p.raw(BarcodeModuleWidth(width)); err != nil {
		return err
	}
	return p.raw(BarcodeCODE128([]byte(data)))
}

// BarcodeCentered prints a CODE128 barcode centered on the line.
func (p *Printer) BarcodeCentered(data string, height byte, width int) error {
	if err := p.setAlign(AlignCenter); err != nil {
		return err
	}
	if err := p.Barcode(data, height, width); err != nil {
		return err
	}
	return p.setAlign(AlignLeft)
}

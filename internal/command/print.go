package command

import (
	"github.com/mizpos/print-engine/internal/escpos"
	"github.com/mizpos/print-engine/internal/format"
	"github.com/mizpos/print-engine/pkg/receiptdata"
)

// PrintReceipt renders a receipt on the given device.
func (e *Executor) PrintReceipt(deviceID string, r *receiptdata.Receipt) error {
	return e.withPrinter(deviceID, e.paperFor(r.PaperWidth), func(p *escpos.Printer) error {
		return format.PrintReceipt(p, r)
	})
}

// PrintReport renders a settlement report on the given device.
func (e *Executor) PrintReport(deviceID string, r *receiptdata.Report) error {
	return e.withPrinter(deviceID, e.paperFor(r.PaperWidth), func(p *escpos.Printer) error {
		return format.PrintReport(p, r)
	})
}

// PrintTest renders the connectivity test page on the given device.
func (e *Executor) PrintTest(deviceID, terminalID string) error {
	return e.withPrinter(deviceID, e.defaultPaper, func(p *escpos.Printer) error {
		return format.PrintTestPage(p, terminalID)
	})
}

// PrintText prints plain text lines and cuts.
func (e *Executor) PrintText(deviceID, text string) error {
	return e.withPrinter(deviceID, e.defaultPaper, func(p *escpos.Printer) error {
		if err := p.Init(); err != nil {
			return err
		}
		if err := p.Textln(text); err != nil {
			return err
		}
		if err := p.Feed(3); err != nil {
			return err
		}
		return p.Cut()
	})
}

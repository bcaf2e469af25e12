package format

import (
	"fmt"
	"strconv"

	"github.com/mizpos/print-engine/internal/escpos"
	"github.com/mizpos/print-engine/pkg/receiptdata"
)

// PrintReport renders an end-of-day settlement report: sales totals,
// per-tender breakdown, tax breakdown, the cash-drawer denomination
// count and the over/short figure.
func PrintReport(p *escpos.Printer, r *receiptdata.Report) error {
	if err := p.Init(); err != nil {
		return err
	}

	title := r.Title
	if title == "" {
		title = "精算レポート"
	}
	if err := p.PaddedTextln(title, escpos.Stamp()); err != nil {
		return err
	}
	if err := p.Textln(""); err != nil {
		return err
	}

	if err := p.RowAuto("日付", r.Date); err != nil {
		return err
	}
	if r.TerminalID != "" {
		if err := p.RowAuto("端末ID", r.TerminalID); err != nil {
			return err
		}
	}
	if err := p.DoubleSeparator(); err != nil {
		return err
	}

	if err := p.RowAuto("総売上", FormatYen(r.GrossSales)); err != nil {
		return err
	}
	if err := p.RowAuto("取引件数", strconv.Itoa(r.ReceiptCount)+"件"); err != nil {
		return err
	}

	for _, mt := range r.MethodTotals {
		if err := p.RowAuto(mt.Method, FormatYen(mt.Amount)); err != nil {
			return err
		}
	}

	for _, tl := range r.TaxLines {
		if tl.Tax == 0 && tl.Taxable == 0 {
			continue
		}
		label := fmt.Sprintf("内消費税(%d%%)", tl.Rate)
		if err := p.RowAuto(label, FormatYen(tl.Tax)); err != nil {
			return err
		}
	}

	if len(r.Denominations) > 0 {
		if err := p.Separator(); err != nil {
			return err
		}
		if err := p.StyledTextln("金種別在高", escpos.TextStyle{Bold: true}); err != nil {
			return err
		}
		for _, d := range r.Denominations {
			left := FormatYen(d.Value) + " ×" + strconv.Itoa(d.Count)
			sum := d.Value * int64(d.Count)
			if err := p.RowAuto(left, FormatYen(sum)); err != nil {
				return err
			}
		}
		if err := p.RowAuto("現金在高", FormatYen(r.CountedCash)); err != nil {
			return err
		}

		diff := r.CountedCash - r.ExpectedCash
		if diff != 0 {
			if err := p.RowAuto("過不足", FormatYenSigned(diff)); err != nil {
				return err
			}
		}
	}

	if err := p.DoubleSeparator(); err != nil {
		return err
	}
	if err := p.Feed(4); err != nil {
		return err
	}
	return p.Cut()
}

// FormatYenSigned renders an amount with an explicit sign, used for the
// over/short row where direction matters.
func FormatYenSigned(amount int64) string {
	if amount > 0 {
		return "+" + FormatYen(amount)
	}
	return FormatYen(amount)
}

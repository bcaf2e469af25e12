package format

import (
	"fmt"
	"strconv"

	"github.com/mizpos/print-engine/internal/escpos"
	"github.com/mizpos/print-engine/pkg/receiptdata"
)

// defaultCashLabel is the tender label that participates in change-due
// computation when the record does not configure one.
const defaultCashLabel = "現金"

// PrintReceipt renders a sales receipt as one synchronous sequence of
// printer calls: header, items, totals, payments, optional voucher and
// card-slip blocks, trailer codes, then feed and cut. Any transport
// failure aborts immediately; paper already printed stays printed.
func PrintReceipt(p *escpos.Printer, r *receiptdata.Receipt) error {
	if err := p.Init(); err != nil {
		return err
	}
	if err := printHeader(p, r); err != nil {
		return err
	}
	if err := printItems(p, r); err != nil {
		return err
	}
	if err := printTotals(p, r); err != nil {
		return err
	}
	if err := printPayments(p, r); err != nil {
		return err
	}
	if err := printVouchers(p, r); err != nil {
		return err
	}
	if err := printCardSlip(p, r.CardSlip); err != nil {
		return err
	}
	if err := printTrailer(p, r); err != nil {
		return err
	}
	if err := p.Feed(4); err != nil {
		return err
	}
	return p.Cut()
}

func printHeader(p *escpos.Printer, r *receiptdata.Receipt) error {
	title := escpos.TextStyle{Bold: true, Align: escpos.AlignCenter}
	if err := p.StyledTextln(r.StoreName, title); err != nil {
		return err
	}
	if r.VenueName != "" {
		if err := p.StyledTextln(r.VenueName, escpos.TextStyle{Align: escpos.AlignCenter}); err != nil {
			return err
		}
	}
	if r.Address != "" {
		if err := p.StyledTextln(r.Address, escpos.TextStyle{Align: escpos.AlignCenter}); err != nil {
			return err
		}
	}
	if err := p.Textln(""); err != nil {
		return err
	}

	if err := p.Textln(FormatTimestamp(r.Timestamp)); err != nil {
		return err
	}
	if err := p.RowAuto("レシートNo:", r.ReceiptNo); err != nil {
		return err
	}
	if r.TerminalID != "" {
		if err := p.RowAuto("端末ID:", r.TerminalID); err != nil {
			return err
		}
	}
	return p.Separator()
}

func printItems(p *escpos.Printer, r *receiptdata.Receipt) error {
	for _, item := range r.Items {
		if err := p.Textln(item.Name); err != nil {
			return err
		}

		code := item.Code
		if item.IsBook {
			code = BookDisplayCode(item.Code, item.JANCode)
		}

		left := "  "
		if code != "" {
			left += code
		}
		if item.Quantity > 1 {
			if code != "" {
				left += " "
			}
			unit := unitPrice(item.Price, item.Quantity)
			left += "×" + strconv.Itoa(item.Quantity) + " @" + FormatYen(unit)
		}

		if err := p.RowAuto(left, FormatYen(item.Price)); err != nil {
			return err
		}
	}
	return p.Separator()
}

// unitPrice derives the per-unit display price from the line total.
func unitPrice(total int64, quantity int) int64 {
	if quantity > 0 {
		return total / int64(quantity)
	}
	return total
}

func printTotals(p *escpos.Printer, r *receiptdata.Receipt) error {
	if err := p.RowAuto("小計", FormatYen(r.Subtotal)); err != nil {
		return err
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

	// The grand total prints as a reverse-video stamp across the full
	// line, with full-width digits for visual weight.
	total := "合計 " + FullWidthDigits(FormatYen(r.Total))
	return p.PaddedTextln(total, escpos.Stamp())
}

func printPayments(p *escpos.Printer, r *receiptdata.Receipt) error {
	for _, pay := range r.Payments {
		if err := p.RowAuto(pay.Method, FormatYen(pay.Amount)); err != nil {
			return err
		}
	}

	if change, ok := ChangeDue(r); ok && change > 0 {
		if err := p.RowAuto("お釣り", FormatYen(change)); err != nil {
			return err
		}
	}
	return nil
}

// ChangeDue computes the change for the cash tender: cash amount minus
// the grand total, never negative. The second return reports whether a
// cash payment exists at all; a zero change row is suppressed by the
// caller either way.
func ChangeDue(r *receiptdata.Receipt) (int64, bool) {
	label := r.CashLabel
	if label == "" {
		label = defaultCashLabel
	}

	for _, pay := range r.Payments {
		if pay.Method == label {
			change := pay.Amount - r.Total
			if change < 0 {
				change = 0
			}
			return change, true
		}
	}
	return 0, false
}

func printVouchers(p *escpos.Printer, r *receiptdata.Receipt) error {
	if len(r.Vouchers) == 0 {
		return nil
	}

	if err := p.Separator(); err != nil {
		return err
	}
	for _, v := range r.Vouchers {
		if err := p.RowAuto(v.Label, FormatYen(v.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func printCardSlip(p *escpos.Printer, slip *receiptdata.CardSlip) error {
	if slip == nil {
		return nil
	}

	if err := p.Textln(""); err != nil {
		return err
	}
	if err := p.Separator(); err != nil {
		return err
	}
	heading := escpos.TextStyle{Bold: true, Align: escpos.AlignCenter}
	if err := p.StyledTextln("カード売上票", heading); err != nil {
		return err
	}
	if err := p.RowAuto("カード会社", slip.Brand); err != nil {
		return err
	}
	if err := p.RowAuto("カード番号", slip.MaskedPAN); err != nil {
		return err
	}
	if slip.ApprovalCode != "" {
		if err := p.RowAuto("承認番号", slip.ApprovalCode); err != nil {
			return err
		}
	}
	if slip.TransactionID != "" {
		if err := p.RowAuto("伝票番号", slip.TransactionID); err != nil {
			return err
		}
	}
	return p.RowAuto("金額", FormatYen(slip.Amount))
}

func printTrailer(p *escpos.Printer, r *receiptdata.Receipt) error {
	if r.FooterMessage != "" {
		if err := p.Textln(""); err != nil {
			return err
		}
		if err := p.StyledTextln(r.FooterMessage, escpos.TextStyle{Align: escpos.AlignCenter}); err != nil {
			return err
		}
	}

	if r.QRData != "" {
		if err := p.Feed(1); err != nil {
			return err
		}
		if err := p.QRCodeCentered(r.QRData, escpos.DefaultQRSize, escpos.QRErrorM); err != nil {
			return err
		}
	}

	if r.BarcodeData != "" {
		if err := p.Feed(1); err != nil {
			return err
		}
		if err := p.BarcodeCentered(r.BarcodeData, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

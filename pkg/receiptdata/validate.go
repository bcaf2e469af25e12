package receiptdata

import "fmt"

func validVersion(v string) error {
	if v == "" {
		return fmt.Errorf("version is required")
	}
	if v != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected 1.0)", v)
	}
	return nil
}

func validPaperWidth(mm int) error {
	switch mm {
	case 0, 58, 80:
		return nil
	}
	return fmt.Errorf("invalid paper_width: %d (must be 58 or 80)", mm)
}

// Validate checks structural requirements of a receipt record. Amounts
// are validated for shape only; arithmetic consistency is the caller's
// business.
func (r *Receipt) Validate() error {
	if err := validVersion(r.Version); err != nil {
		return err
	}
	if err := validPaperWidth(r.PaperWidth); err != nil {
		return err
	}

	if r.StoreName == "" {
		return fmt.Errorf("store_name is required")
	}
	if r.ReceiptNo == "" {
		return fmt.Errorf("receipt_no is required")
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}

	for i, item := range r.Items {
		if item.Name == "" {
			return fmt.Errorf("item[%d]: name is required", i)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("item[%d] '%s': negative quantity", i, item.Name)
		}
		if item.Price < 0 {
			return fmt.Errorf("item[%d] '%s': negative price", i, item.Name)
		}
	}

	if r.Subtotal < 0 || r.Total < 0 {
		return fmt.Errorf("negative subtotal or total")
	}

	for i, pay := range r.Payments {
		if pay.Method == "" {
			return fmt.Errorf("payment[%d]: method is required", i)
		}
		if pay.Amount < 0 {
			return fmt.Errorf("payment[%d] '%s': negative amount", i, pay.Method)
		}
	}

	for i, tl := range r.TaxLines {
		if tl.Rate < 0 || tl.Rate > 100 {
			return fmt.Errorf("tax_line[%d]: invalid rate %d", i, tl.Rate)
		}
	}

	if r.CardSlip != nil {
		if r.CardSlip.Brand == "" {
			return fmt.Errorf("card_slip: brand is required")
		}
		if r.CardSlip.MaskedPAN == "" {
			return fmt.Errorf("card_slip: masked_pan is required")
		}
	}

	return nil
}

// Validate checks structural requirements of a report record.
func (r *Report) Validate() error {
	if err := validVersion(r.Version); err != nil {
		return err
	}
	if err := validPaperWidth(r.PaperWidth); err != nil {
		return err
	}

	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	if r.GrossSales < 0 {
		return fmt.Errorf("negative gross_sales")
	}
	if r.ReceiptCount < 0 {
		return fmt.Errorf("negative receipt_count")
	}

	for i, d := range r.Denominations {
		if d.Value <= 0 {
			return fmt.Errorf("denomination[%d]: value must be positive", i)
		}
		if d.Count < 0 {
			return fmt.Errorf("denomination[%d]: negative count", i)
		}
	}

	return nil
}

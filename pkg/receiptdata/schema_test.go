package receiptdata

import (
	"strings"
	"testing"
)

func validReceiptJSON() string {
	return `{
		"version": "1.0",
		"store_name": "書店テスト店",
		"timestamp": "2026-08-30T14:05:00+09:00",
		"receipt_no": "R-000123",
		"items": [
			{"name": "コーヒー", "code": "4912345678904", "quantity": 2, "price": 600}
		],
		"subtotal": 600,
		"total": 660,
		"tax_lines": [{"rate": 10, "taxable": 600, "tax": 60}],
		"payments": [{"method": "現金", "amount": 1000}]
	}`
}

func TestParseReceipt_Valid(t *testing.T) {
	r, err := ParseReceipt([]byte(validReceiptJSON()))
	if err != nil {
		t.Fatalf("ParseReceipt failed: %v", err)
	}

	if r.StoreName != "書店テスト店" {
		t.Errorf("store name = %q", r.StoreName)
	}
	if len(r.Items) != 1 || r.Items[0].Quantity != 2 {
		t.Errorf("items not parsed: %+v", r.Items)
	}
	if r.Total != 660 {
		t.Errorf("total = %d, want 660", r.Total)
	}
}

func TestParseReceipt_InvalidJSON(t *testing.T) {
	if _, err := ParseReceipt([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestValidateReceipt_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Receipt)
		wantSub string
	}{
		{"missing version", func(r *Receipt) { r.Version = "" }, "version"},
		{"bad version", func(r *Receipt) { r.Version = "2.0" }, "unsupported version"},
		{"bad paper width", func(r *Receipt) { r.PaperWidth = 76 }, "paper_width"},
		{"missing store", func(r *Receipt) { r.StoreName = "" }, "store_name"},
		{"missing receipt no", func(r *Receipt) { r.ReceiptNo = "" }, "receipt_no"},
		{"no items", func(r *Receipt) { r.Items = nil }, "item"},
		{"negative price", func(r *Receipt) { r.Items[0].Price = -1 }, "negative price"},
		{"negative quantity", func(r *Receipt) { r.Items[0].Quantity = -1 }, "negative quantity"},
		{"unnamed item", func(r *Receipt) { r.Items[0].Name = "" }, "name is required"},
		{"payment without method", func(r *Receipt) { r.Payments[0].Method = "" }, "method"},
		{"bad tax rate", func(r *Receipt) { r.TaxLines[0].Rate = 300 }, "rate"},
		{"card slip without brand", func(r *Receipt) { r.CardSlip = &CardSlip{MaskedPAN: "****1234"} }, "brand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseReceipt([]byte(validReceiptJSON()))
			if err != nil {
				t.Fatalf("baseline parse failed: %v", err)
			}
			tt.mutate(r)

			err = r.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestValidateReceipt_PaperWidths(t *testing.T) {
	for _, mm := range []int{0, 58, 80} {
		r, _ := ParseReceipt([]byte(validReceiptJSON()))
		r.PaperWidth = mm
		if err := r.Validate(); err != nil {
			t.Errorf("paper width %d rejected: %v", mm, err)
		}
	}
}

func TestParseReport_Valid(t *testing.T) {
	data := `{
		"version": "1.0",
		"date": "2026-08-30",
		"terminal_id": "T-01",
		"gross_sales": 123400,
		"receipt_count": 57,
		"method_totals": [{"method": "現金", "amount": 83400}, {"method": "カード", "amount": 40000}],
		"denominations": [{"value": 10000, "count": 5}, {"value": 1000, "count": 30}],
		"expected_cash": 83400,
		"counted_cash": 83000
	}`

	r, err := ParseReport([]byte(data))
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}
	if r.GrossSales != 123400 || r.ReceiptCount != 57 {
		t.Errorf("totals not parsed: %+v", r)
	}
	if len(r.Denominations) != 2 {
		t.Errorf("denominations not parsed: %+v", r.Denominations)
	}
}

func TestValidateReport_Errors(t *testing.T) {
	base := Report{Version: "1.0", Date: "2026-08-30"}

	r := base
	r.Date = ""
	if err := r.Validate(); err == nil {
		t.Error("expected error for missing date")
	}

	r = base
	r.GrossSales = -1
	if err := r.Validate(); err == nil {
		t.Error("expected error for negative gross sales")
	}

	r = base
	r.Denominations = []Denomination{{Value: 0, Count: 1}}
	if err := r.Validate(); err == nil {
		t.Error("expected error for zero denomination value")
	}
}

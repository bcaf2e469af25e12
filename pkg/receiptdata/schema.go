// Package receiptdata defines the value records a caller submits for
// printing. Records arrive fully populated over the JSON boundary and
// are never mutated by the engine.
package receiptdata

// Receipt is a single sales receipt.
type Receipt struct {
	Version       string    `json:"version"`
	StoreName     string    `json:"store_name"`
	VenueName     string    `json:"venue_name,omitempty"`
	Address       string    `json:"address,omitempty"`
	Timestamp     string    `json:"timestamp"`
	ReceiptNo     string    `json:"receipt_no"`
	TerminalID    string    `json:"terminal_id,omitempty"`
	Items         []Item    `json:"items"`
	Subtotal      int64     `json:"subtotal"`
	TaxLines      []TaxLine `json:"tax_lines,omitempty"`
	Total         int64     `json:"total"`
	Payments      []Payment `json:"payments"`
	CashLabel     string    `json:"cash_label,omitempty"` // defaults to 現金
	Vouchers      []Voucher `json:"vouchers,omitempty"`
	CardSlip      *CardSlip `json:"card_slip,omitempty"`
	FooterMessage string    `json:"footer_message,omitempty"`
	QRData        string    `json:"qr_data,omitempty"`
	BarcodeData   string    `json:"barcode_data,omitempty"`
	PaperWidth    int       `json:"paper_width,omitempty"` // 58 or 80
}

// Item is one receipt line item. Price is the total for the line in
// yen, not the unit price.
type Item struct {
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	JANCode  string `json:"jan_code,omitempty"` // secondary book barcode, 13 digits
	IsBook   bool   `json:"is_book,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Payment is one tender line. Method carries the display label; a
// method equal to the receipt's cash label participates in change-due
// computation.
type Payment struct {
	Method string `json:"method"`
	Amount int64  `json:"amount"`
}

// TaxLine is one consumption-tax breakdown entry.
type TaxLine struct {
	Rate    int   `json:"rate"` // percent
	Taxable int64 `json:"taxable"`
	Tax     int64 `json:"tax"`
}

// Voucher is a coupon or gift certificate applied to the sale.
type Voucher struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// CardSlip is the customer copy of a card transaction. The engine only
// prints these fields; authentication and signing happen upstream.
type CardSlip struct {
	Brand         string `json:"brand"`
	MaskedPAN     string `json:"masked_pan"`
	ApprovalCode  string `json:"approval_code,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	Amount        int64  `json:"amount"`
}

// Report is an end-of-day settlement report.
type Report struct {
	Version       string         `json:"version"`
	Title         string         `json:"title,omitempty"`
	Date          string         `json:"date"`
	TerminalID    string         `json:"terminal_id,omitempty"`
	GrossSales    int64          `json:"gross_sales"`
	ReceiptCount  int            `json:"receipt_count"`
	MethodTotals  []Payment      `json:"method_totals,omitempty"`
	TaxLines      []TaxLine      `json:"tax_lines,omitempty"`
	Denominations []Denomination `json:"denominations,omitempty"`
	ExpectedCash  int64          `json:"expected_cash"`
	CountedCash   int64          `json:"counted_cash"`
	PaperWidth    int            `json:"paper_width,omitempty"`
}

// Denomination is one cash-drawer count row.
type Denomination struct {
	Value int64 `json:"value"`
	Count int   `json:"count"`
}

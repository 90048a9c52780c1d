package entity

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	BranchName   string `json:"branch_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string   `json:"name"`
	Quantity  float64  `json:"quantity"`
	Unit      string   `json:"unit"`
	UnitPrice float64  `json:"unit_price"`
	Modifiers []string `json:"modifiers,omitempty"`
	Total     float64  `json:"total"`
}

// Receipt is a value object representing a printable receipt. It is not
// stored; it is composed from order data at generation time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	ReceiptNumber string        `json:"receipt_number"`
	OrderNumber   string        `json:"order_number"`
	Date          string        `json:"date"`
	Operator      string        `json:"operator,omitempty"`
	Client        string        `json:"client"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	Expedite      float64       `json:"expedite"`
	Total         float64       `json:"total"`
	Prepaid       float64       `json:"prepaid"`
	Balance       float64       `json:"balance"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	CompletionDue string        `json:"completion_due,omitempty"`
	SignatureNote string        `json:"signature_note,omitempty"`
}

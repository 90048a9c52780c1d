package enum

// PaymentMethod is how the client pays at the counter.
type PaymentMethod string

const (
	PaymentTerminal     PaymentMethod = "TERMINAL"
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// IsValid reports whether the value is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentTerminal, PaymentCash, PaymentBankTransfer:
		return true
	}
	return false
}

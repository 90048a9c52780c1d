package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus is derived from the prepayment relative to the total.
// Refunded is only ever set by an explicit external event.
type PaymentStatus int

const (
	PaymentStatusPending  PaymentStatus = 0
	PaymentStatusPartial  PaymentStatus = 1
	PaymentStatusPaid     PaymentStatus = 2
	PaymentStatusRefunded PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	return [...]string{"PENDING", "PARTIAL", "PAID", "REFUNDED"}[s]
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "PENDING":
		*s = PaymentStatusPending
	case "PARTIAL":
		*s = PaymentStatusPartial
	case "PAID":
		*s = PaymentStatusPaid
	case "REFUNDED":
		*s = PaymentStatusRefunded
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}

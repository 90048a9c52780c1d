package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderNumber generates a unique order number, e.g. "ORD-3F2A91BC"
func GenerateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateReceiptNumber generates a unique receipt reference, e.g. "R-7C01AD5E"
func GenerateReceiptNumber() string {
	return "R-" + strings.ToUpper(uuid.New().String()[:8])
}

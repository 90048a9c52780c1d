package repository

import (
	"context"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
)

// ReceiptRenderer turns a receipt into a PDF. Implemented by the external
// rendering gateway.
type ReceiptRenderer interface {
	RenderPDF(ctx context.Context, receipt *entity.Receipt) ([]byte, error)
}

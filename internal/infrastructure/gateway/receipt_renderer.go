package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	domainRepo "github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/go-resty/resty/v2"
)

// receiptRenderer renders receipt PDFs through an external rendering
// service. The service accepts the receipt JSON and returns the PDF bytes.
type receiptRenderer struct {
	client *resty.Client
}

// NewReceiptRenderer creates a renderer client for the given base URL.
func NewReceiptRenderer(baseURL string) domainRepo.ReceiptRenderer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &receiptRenderer{client: client}
}

func (r *receiptRenderer) RenderPDF(ctx context.Context, receipt *entity.Receipt) ([]byte, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(receipt).
		Post("/render/receipt")
	if err != nil {
		return nil, fmt.Errorf("receipt renderer: request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("receipt renderer: unexpected status %d: %s",
			resp.StatusCode(), resp.String())
	}

	return resp.Body(), nil
}

package handler

import (
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt generation, emailing and printing.
// Each action is independent; failure of one never blocks the others.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetReceipt returns the composed receipt data
// @Summary Get receipt
// @Tags receipts
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/receipt [get]
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt composed successfully", gin.H{"receipt": receipt})
}

// DownloadPDF streams the rendered receipt PDF
// @Summary Download receipt PDF
// @Tags receipts
// @Security BearerAuth
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /orders/{id}/receipt/pdf [get]
func (h *ReceiptHandler) DownloadPDF(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	pdf, err := h.receiptService.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=receipt.pdf")
	c.Data(200, "application/pdf", pdf)
}

// EmailReceipt sends the receipt to the client's email address
// @Summary Email receipt
// @Tags receipts
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/receipt/email [post]
func (h *ReceiptHandler) EmailReceipt(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.receiptService.EmailReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt emailed successfully", nil)
}

// PrintReceipt prints the receipt on the thermal printer
// @Summary Print receipt
// @Tags receipts
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/receipt/print [post]
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.receiptService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", nil)
}

package handler

import (
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/infrastructure/pricelist"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles price list and catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
	importer       *pricelist.Importer
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService, importer *pricelist.Importer) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, importer: importer}
}

// ListCategories lists active service categories
// @Summary List categories
// @Tags catalog
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", gin.H{"categories": categories})
}

// ListItems lists the priced positions of a category
// @Summary List catalog items
// @Tags catalog
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /catalog/categories/{code}/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Items retrieved successfully", gin.H{"items": items})
}

// ListModifiers lists the price modifiers applicable to a category
// @Summary List modifiers
// @Tags catalog
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /catalog/categories/{code}/modifiers [get]
func (h *CatalogHandler) ListModifiers(c *gin.Context) {
	modifiers, err := h.catalogService.ListModifiers(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Modifiers retrieved successfully", gin.H{"modifiers": modifiers})
}

// ListDiscountRules lists the active discount rules
// @Summary List discount rules
// @Tags catalog
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /catalog/discounts [get]
func (h *CatalogHandler) ListDiscountRules(c *gin.Context) {
	rules, err := h.catalogService.ListDiscountRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount rules retrieved successfully", gin.H{"discount_rules": rules})
}

// ListExpediteRules lists the active expedite rules
// @Summary List expedite rules
// @Tags catalog
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /catalog/expedite [get]
func (h *CatalogHandler) ListExpediteRules(c *gin.Context) {
	rules, err := h.catalogService.ListExpediteRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expedite rules retrieved successfully", gin.H{"expedite_rules": rules})
}

// ImportPriceList imports an Excel price list workbook
// @Summary Import price list
// @Tags catalog
// @Security BearerAuth
// @Accept multipart/form-data
// @Param file formData file true "Price list workbook (.xlsx)"
// @Success 200 {object} response.APIResponse
// @Router /catalog/import [post]
func (h *CatalogHandler) ImportPriceList(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A price list file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price list imported successfully", gin.H{"result": result})
}

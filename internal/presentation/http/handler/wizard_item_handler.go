package handler

import (
	"strconv"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/request"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StartItem opens a fresh item draft
// @Summary Start item draft
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items [post]
func (h *WizardHandler) StartItem(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.wizardService.StartItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item draft opened", sessionPayload(session, nil))
}

// StartItemEdit opens a draft copying the item at the given position
// @Summary Edit item
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/{index}/edit [post]
func (h *WizardHandler) StartItemEdit(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid item index")
		return
	}

	session, err := h.wizardService.StartItemEdit(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item draft opened for editing", sessionPayload(session, nil))
}

// SetItemBasicInfo fills the draft's basic info sub-step
// @Summary Set item basic info
// @Tags wizard-items
// @Security BearerAuth
// @Param request body request.ItemBasicInfoRequest true "Basic info"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/basic-info [put]
func (h *WizardHandler) SetItemBasicInfo(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ItemBasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.ItemBasicInfoInput{
		CategoryCode: req.CategoryCode,
		Name:         req.Name,
		Quantity:     req.Quantity,
		Unit:         enum.UnitOfMeasure(req.Unit),
	}
	if req.CatalogItemID != nil {
		itemID, err := uuid.Parse(*req.CatalogItemID)
		if err != nil {
			response.BadRequest(c, "Invalid catalog item ID")
			return
		}
		input.CatalogItemID = &itemID
	}

	session, err := h.wizardService.SetItemBasicInfo(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Basic info applied", sessionPayload(session, nil))
}

// SetItemProperties fills the draft's properties sub-step
// @Summary Set item properties
// @Tags wizard-items
// @Security BearerAuth
// @Param request body request.ItemPropertiesRequest true "Properties"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/properties [put]
func (h *WizardHandler) SetItemProperties(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ItemPropertiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.wizardService.SetItemProperties(c.Request.Context(), id, &entity.ItemCharacteristics{
		Material:        enum.MaterialType(req.Material),
		Color:           req.Color,
		Filler:          req.Filler,
		FillerCondition: enum.FillerCondition(req.FillerCondition),
		WearLevel:       enum.WearLevel(req.WearLevel),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Properties applied", sessionPayload(session, nil))
}

// SetItemDefects fills the draft's defects and stains sub-step
// @Summary Set item defects
// @Tags wizard-items
// @Security BearerAuth
// @Param request body request.ItemDefectsRequest true "Defects and stains"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/defects [put]
func (h *WizardHandler) SetItemDefects(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ItemDefectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stains := make([]entity.Stain, 0, len(req.Stains))
	for _, s := range req.Stains {
		stains = append(stains, entity.Stain{
			Type:        enum.StainType(s.Type),
			Description: s.Description,
		})
	}
	defects := make([]entity.Defect, 0, len(req.Defects))
	for _, d := range req.Defects {
		defects = append(defects, entity.Defect{
			Type:        enum.DefectType(d.Type),
			Description: d.Description,
		})
	}

	session, err := h.wizardService.SetItemDefects(c.Request.Context(), id, &service.ItemDefectsInput{
		Stains:            stains,
		Defects:           defects,
		NoGuarantee:       req.NoGuarantee,
		NoGuaranteeReason: req.NoGuaranteeReason,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Defects applied", sessionPayload(session, nil))
}

// SetItemPricing resolves the catalog price and applies modifiers
// @Summary Set item pricing
// @Tags wizard-items
// @Security BearerAuth
// @Param request body request.ItemPricingRequest true "Pricing"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/pricing [put]
func (h *WizardHandler) SetItemPricing(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ItemPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	catalogItemID, err := uuid.Parse(req.CatalogItemID)
	if err != nil {
		response.BadRequest(c, "Invalid catalog item ID")
		return
	}

	session, err := h.wizardService.SetItemPricing(c.Request.Context(), id, &service.ItemPricingInput{
		CatalogItemID: catalogItemID,
		ModifierCodes: req.ModifierCodes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing applied", sessionPayload(session, nil))
}

// ItemNavigateForward advances the item draft to its next sub-step
// @Summary Item draft next step
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/next [post]
func (h *WizardHandler) ItemNavigateForward(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, violations, err := h.wizardService.ItemNavigateForward(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Navigation processed", sessionPayload(session, violations))
}

// ItemNavigateBack returns the item draft to its previous sub-step
// @Summary Item draft previous step
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/back [post]
func (h *WizardHandler) ItemNavigateBack(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.wizardService.ItemNavigateBack(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Navigation processed", sessionPayload(session, nil))
}

// CompleteItem validates the whole draft and commits it to the order
// @Summary Complete item draft
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft/complete [post]
func (h *WizardHandler) CompleteItem(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, violations, err := h.wizardService.CompleteItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item draft processed", sessionPayload(session, violations))
}

// CancelItem discards the open draft without touching the order
// @Summary Cancel item draft
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/draft [delete]
func (h *WizardHandler) CancelItem(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.wizardService.CancelItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item draft cancelled", sessionPayload(session, nil))
}

// RemoveItem deletes the item at the given position and recalculates
// @Summary Remove item
// @Tags wizard-items
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/items/{index} [delete]
func (h *WizardHandler) RemoveItem(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid item index")
		return
	}

	session, err := h.wizardService.RemoveItem(c.Request.Context(), id, index)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", sessionPayload(session, nil))
}

package handler

import (
	"context"
	"encoding/base64"
	"math"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/wizard"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/request"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WizardHandler handles the order wizard HTTP requests
type WizardHandler struct {
	wizardService *service.WizardService
	errors        *service.ErrorCoordinator
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizardService *service.WizardService, errors *service.ErrorCoordinator) *WizardHandler {
	return &WizardHandler{wizardService: wizardService, errors: errors}
}

// recordFailure registers a failed operation with the error coordinator so
// the client's error panel can show it and offer a retry, then responds.
func (h *WizardHandler) recordFailure(c *gin.Context, id uuid.UUID, err error, op service.Operation) {
	step := enum.WizardStep("")
	if s, gerr := h.wizardService.GetSession(c.Request.Context(), id); gerr == nil && s != nil {
		step = s.CurrentStep
	}
	h.errors.Record(id, step, err, op)
	response.Error(c, err)
}

// sessionPayload packs the session together with the step violations the
// last operation produced, so the client can render both at once.
func sessionPayload(session *wizard.Session, violations []wizard.RuleViolation) gin.H {
	if violations == nil {
		violations = []wizard.RuleViolation{}
	}
	return gin.H{
		"session":    session,
		"violations": violations,
		"progress":   session.Progress(),
	}
}

// StartSession resumes the operator's active session or starts a new one
// @Summary Start wizard session
// @Tags wizard
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions [post]
func (h *WizardHandler) StartSession(c *gin.Context) {
	operatorID := GetOperatorID(c)
	if operatorID == nil {
		response.Unauthorized(c, "Operator not authenticated")
		return
	}

	session, err := h.wizardService.StartSession(c.Request.Context(), *operatorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Wizard session started", sessionPayload(session, nil))
}

// GetSession returns a wizard session
// @Summary Get wizard session
// @Tags wizard
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id} [get]
func (h *WizardHandler) GetSession(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.wizardService.GetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session retrieved", sessionPayload(session, nil))
}

// NavigateForward advances to the next wizard step when the current step
// validates cleanly; otherwise the violations are returned and the cursor
// stays put.
// @Summary Navigate forward
// @Tags wizard
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/next [post]
func (h *WizardHandler) NavigateForward(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, violations, err := h.wizardService.NavigateForward(c.Request.Context(), id)
	if err != nil {
		h.recordFailure(c, id, err, func(ctx context.Context) error {
			_, _, rerr := h.wizardService.NavigateForward(ctx, id)
			return rerr
		})
		return
	}

	response.OK(c, "Navigation processed", sessionPayload(session, violations))
}

// NavigateBack returns to the previous wizard step
// @Summary Navigate back
// @Tags wizard
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/back [post]
func (h *WizardHandler) NavigateBack(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.wizardService.NavigateBack(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Navigation processed", sessionPayload(session, nil))
}

// ResetSession discards all collected data and returns to the first step
// @Summary Reset wizard session
// @Tags wizard
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/reset [post]
func (h *WizardHandler) ResetSession(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.wizardService.ResetSession(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session reset", sessionPayload(session, nil))
}

// SelectClient records the client choice on the first step
// @Summary Select client
// @Tags wizard
// @Security BearerAuth
// @Param request body request.SelectClientRequest true "Client selection"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/client [put]
func (h *WizardHandler) SelectClient(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.SelectClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.ClientSelectionInput{Mode: enum.ClientMode(req.Mode)}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		input.ClientID = &clientID
	}

	if req.Client != nil {
		channels := make([]enum.ContactChannel, 0, len(req.Client.ContactChannels))
		for _, ch := range req.Client.ContactChannels {
			channels = append(channels, enum.ContactChannel(ch))
		}
		input.Draft = &wizard.ClientDraft{
			FirstName:       req.Client.FirstName,
			LastName:        req.Client.LastName,
			Phone:           req.Client.Phone,
			Email:           req.Client.Email,
			Address:         req.Client.Address,
			ContactChannels: channels,
			Source:          enum.ClientSource(req.Client.Source),
			DiscountCardNo:  req.Client.DiscountCardNo,
		}
	}

	session, err := h.wizardService.SelectClient(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client selected", sessionPayload(session, nil))
}

// SelectBranch records the branch choice
// @Summary Select branch
// @Tags wizard
// @Security BearerAuth
// @Param request body request.SelectBranchRequest true "Branch selection"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/branch [put]
func (h *WizardHandler) SelectBranch(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.SelectBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	session, err := h.wizardService.SelectBranch(c.Request.Context(), id, branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch selected", sessionPayload(session, nil))
}

// SetOrderParams applies order-level parameters and recomputes financials
// @Summary Set order parameters
// @Tags wizard
// @Security BearerAuth
// @Param request body request.OrderParamsRequest true "Order parameters"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/params [put]
func (h *WizardHandler) SetOrderParams(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.OrderParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.OrderParamsInput{
		DiscountType:          enum.DiscountType(req.DiscountType),
		CustomDiscountPercent: req.CustomDiscountPercent,
		ExpediteType:          enum.ExpediteType(req.ExpediteType),
		PaymentMethod:         enum.PaymentMethod(req.PaymentMethod),
		PrepaymentAmount:      toKopecks(req.PrepaymentAmount),
		Comments:              req.Comments,
	}

	session, err := h.wizardService.SetOrderParams(c.Request.Context(), id, input)
	if err != nil {
		h.recordFailure(c, id, err, func(ctx context.Context) error {
			_, rerr := h.wizardService.SetOrderParams(ctx, id, input)
			return rerr
		})
		return
	}

	response.OK(c, "Order parameters applied", sessionPayload(session, nil))
}

// SetConfirmation stores the terms acceptance and signature
// @Summary Set confirmation
// @Tags wizard
// @Security BearerAuth
// @Param request body request.ConfirmationRequest true "Confirmation"
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/confirmation [put]
func (h *WizardHandler) SetConfirmation(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	var req request.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var signature []byte
	if req.Signature != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Signature)
		if err != nil {
			response.BadRequest(c, "Signature must be base64 encoded")
			return
		}
		signature = decoded
	}

	session, err := h.wizardService.SetConfirmation(c.Request.Context(), id, req.TermsAccepted, signature)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Confirmation recorded", sessionPayload(session, nil))
}

// toKopecks converts a decimal UAH amount to kopecks
func toKopecks(v float64) int64 {
	return int64(math.Round(v * 100))
}

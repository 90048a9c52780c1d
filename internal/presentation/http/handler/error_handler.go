package handler

import (
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListErrors returns the error panel for a wizard session. Transient
// errors past their TTL are already pruned.
// @Summary List session errors
// @Tags wizard-errors
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/errors [get]
func (h *WizardHandler) ListErrors(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	response.OK(c, "Errors retrieved", gin.H{
		"errors":   h.errors.Errors(id),
		"critical": h.errors.HasCriticalError(id),
	})
}

// ClearError dismisses a single error
// @Summary Clear session error
// @Tags wizard-errors
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/errors/{errorId} [delete]
func (h *WizardHandler) ClearError(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	errorID := parseUUIDParam(c, "errorId")
	if id == uuid.Nil || errorID == uuid.Nil {
		response.BadRequest(c, "Invalid session or error ID")
		return
	}

	h.errors.Clear(id, errorID)
	response.OK(c, "Error cleared", nil)
}

// ClearAllErrors dismisses every error of a session
// @Summary Clear all session errors
// @Tags wizard-errors
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/errors [delete]
func (h *WizardHandler) ClearAllErrors(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	h.errors.ClearAll(id)
	response.OK(c, "Errors cleared", nil)
}

// RetryLastOperation re-runs the last failed operation. On success every
// recorded error of the session is cleared.
// @Summary Retry last failed operation
// @Tags wizard-errors
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/errors/retry [post]
func (h *WizardHandler) RetryLastOperation(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.errors.RetryLastOperation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Operation retried successfully", gin.H{
		"errors": h.errors.Errors(id),
	})
}

package handler

import (
	"strconv"
	"time"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService  *service.OrderService
	wizardService *service.WizardService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, wizardService *service.WizardService) *OrderHandler {
	return &OrderHandler{orderService: orderService, wizardService: wizardService}
}

// CanFinalize reports whether the session is ready to be finalized,
// listing the blocking reasons when it is not.
// @Summary Check finalize readiness
// @Tags orders
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /wizard/sessions/{id}/can-finalize [get]
func (h *OrderHandler) CanFinalize(c *gin.Context) {
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

	ok, reasons := h.orderService.CanFinalize(session)
	if reasons == nil {
		reasons = []string{}
	}

	response.OK(c, "Finalize readiness checked", gin.H{
		"can_finalize": ok,
		"reasons":      reasons,
	})
}

// FinalizeOrder converts the wizard session into a persistent order.
// Calling it again for the same session returns the already created order.
// @Summary Finalize order
// @Tags orders
// @Security BearerAuth
// @Success 201 {object} response.APIResponse
// @Router /wizard/sessions/{id}/finalize [post]
func (h *OrderHandler) FinalizeOrder(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid session ID")
		return
	}

	order, err := h.orderService.FinalizeOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order finalized successfully", gin.H{"order": order})
}

// ListOrders lists orders with filters and pagination
// @Summary List orders
// @Tags orders
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := &repository.OrderFilterParams{
		Pagination: params,
		Search:     c.Query("q"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if v, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(v)
			filter.Status = &status
		}
	}
	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		if clientID, err := uuid.Parse(clientIDStr); err == nil {
			filter.ClientID = &clientID
		}
	}
	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		if branchID, err := uuid.Parse(branchIDStr); err == nil {
			filter.BranchID = &branchID
		}
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse("2006-01-02", startStr); err == nil {
			filter.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse("2006-01-02", endStr); err == nil {
			filter.EndDate = &end
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// GetOrder returns a single order with full details
// @Summary Get order
// @Tags orders
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", gin.H{"order": order})
}

// CancelOrder cancels an order
// @Summary Cancel order
// @Tags orders
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

// MarkRefunded marks an order as refunded. Refunds are always an explicit
// action, never derived from amounts.
// @Summary Mark order refunded
// @Tags orders
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /orders/{id}/refund [post]
func (h *OrderHandler) MarkRefunded(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.MarkRefunded(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order marked as refunded", gin.H{"order": order})
}

package handler

import (
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/request"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchHandler handles branch-related HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// ListBranches lists branches; by default only active ones
// @Summary List branches
// @Tags branches
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /branches [get]
func (h *BranchHandler) ListBranches(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	branches, err := h.branchService.ListBranches(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branches retrieved successfully", gin.H{"branches": branches})
}

// GetBranch returns a single branch
// @Summary Get branch
// @Tags branches
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /branches/{id} [get]
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid branch ID")
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", gin.H{"branch": branch})
}

// CreateBranch creates a new branch
// @Summary Create branch
// @Tags branches
// @Security BearerAuth
// @Param request body request.CreateBranchRequest true "Branch data"
// @Success 201 {object} response.APIResponse
// @Router /branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req request.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), &service.CreateBranchInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", gin.H{"branch": branch})
}

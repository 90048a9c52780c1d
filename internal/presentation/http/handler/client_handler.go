package handler

import (
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/request"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/dto/response"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func toClientInput(req *request.ClientRequest) *service.ClientInput {
	channels := make([]enum.ContactChannel, 0, len(req.ContactChannels))
	for _, ch := range req.ContactChannels {
		channels = append(channels, enum.ContactChannel(ch))
	}
	return &service.ClientInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		ContactChannels: channels,
		Source:          enum.ClientSource(req.Source),
		DiscountCardNo:  req.DiscountCardNo,
	}
}

// SearchClients searches clients by name, phone or discount card
// @Summary Search clients
// @Tags clients
// @Security BearerAuth
// @Param q query string false "Search query"
// @Success 200 {object} response.APIResponse
// @Router /clients [get]
func (h *ClientHandler) SearchClients(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.clientService.SearchClients(c.Request.Context(), c.Query("q"), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// GetClient returns a single client
// @Summary Get client
// @Tags clients
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", gin.H{"client": client})
}

// CreateClient creates a new client
// @Summary Create client
// @Tags clients
// @Security BearerAuth
// @Param request body request.ClientRequest true "Client data"
// @Success 201 {object} response.APIResponse
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), toClientInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", gin.H{"client": client})
}

// UpdateClient updates an existing client
// @Summary Update client
// @Tags clients
// @Security BearerAuth
// @Param request body request.ClientRequest true "Client data"
// @Success 200 {object} response.APIResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := parseUUIDParam(c, "id")
	if id == uuid.Nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, toClientInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", gin.H{"client": client})
}

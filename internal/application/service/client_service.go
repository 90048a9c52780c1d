package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/validation"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// ClientInput represents the create/update client input
type ClientInput struct {
	FirstName       string
	LastName        string
	Phone           string
	Email           *string
	Address         *string
	ContactChannels []enum.ContactChannel
	Source          enum.ClientSource
	DiscountCardNo  *string
}

func validateClientInput(input *ClientInput) error {
	var fieldErrors []apperror.FieldError
	if input.FirstName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "first_name", Message: "first name is required"})
	}
	if input.LastName == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "last_name", Message: "last name is required"})
	}
	if !validation.ValidPhone(input.Phone) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "phone", Message: "a valid phone number is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateClient creates a new client. The phone number must be unique.
func (s *ClientService) CreateClient(ctx context.Context, input *ClientInput) (*entity.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	existing, err := s.clientRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A client with this phone number already exists")
	}

	client := &entity.Client{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		Email:           input.Email,
		Address:         input.Address,
		ContactChannels: input.ContactChannels,
		Source:          input.Source,
		DiscountCardNo:  input.DiscountCardNo,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient returns a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// UpdateClient updates a client's details
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *ClientInput) (*entity.Client, error) {
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	client.FirstName = input.FirstName
	client.LastName = input.LastName
	client.Phone = input.Phone
	client.Email = input.Email
	client.Address = input.Address
	client.ContactChannels = input.ContactChannels
	if input.Source != "" {
		client.Source = input.Source
	}
	client.DiscountCardNo = input.DiscountCardNo

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// SearchClients returns clients matching the query with pagination
func (s *ClientService) SearchClients(ctx context.Context, query string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Client], error) {
	params.Validate()

	clients, total, err := s.clientRepo.Search(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(clients, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

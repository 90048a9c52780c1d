package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
)

// BranchService handles branch-related operations
type BranchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository) *BranchService {
	return &BranchService{branchRepo: branchRepo}
}

// ListBranches returns branches, optionally only active ones
func (s *BranchService) ListBranches(ctx context.Context, activeOnly bool) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx, activeOnly)
}

// GetBranch returns a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// CreateBranchInput represents the create branch input
type CreateBranchInput struct {
	Name    string
	Address string
	Phone   *string
}

// CreateBranch creates a new branch
func (s *BranchService) CreateBranch(ctx context.Context, input *CreateBranchInput) (*entity.Branch, error) {
	if input.Name == "" || input.Address == "" {
		return nil, apperror.NewBadRequestError("Branch name and address are required")
	}

	branch := &entity.Branch{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Active:  true,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Search matches the query against name, phone and discount card number.
	Search(ctx context.Context, query string, params *pagination.PaginationParams) ([]entity.Client, int64, error)
}

// BranchRepository defines the interface for branch data operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	List(ctx context.Context, activeOnly bool) ([]entity.Branch, error)
}

// OperatorRepository defines the interface for operator account operations
type OperatorRepository interface {
	Create(ctx context.Context, operator *entity.Operator) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error)
	GetByEmail(ctx context.Context, email string) (*entity.Operator, error)
	Update(ctx context.Context, operator *entity.Operator) error
}

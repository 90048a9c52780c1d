package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order together with its items in one transaction.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithDetails preloads client, branch, items and photos.
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	MarkPrinted(ctx context.Context, id uuid.UUID) error
	MarkEmailed(ctx context.Context, id uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	ClientID   *uuid.UUID
	BranchID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// PhotoRepository defines the interface for item photo metadata
type PhotoRepository interface {
	Create(ctx context.Context, photo *entity.ItemPhoto) error
	ListByItem(ctx context.Context, orderItemID uuid.UUID) ([]entity.ItemPhoto, error)
	CountByItem(ctx context.Context, orderItemID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

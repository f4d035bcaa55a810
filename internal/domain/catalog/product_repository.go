package catalog

import (
	"context"

	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate loads a product and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountBelowQuantity counts products whose aggregate quantity is below threshold
	CountBelowQuantity(ctx context.Context, threshold int64) (int64, error)

	// ExistsBySKU reports whether a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// IsReferenced reports whether any stock move or order line points at the product
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// UpdateQuantity persists only the aggregate quantity of a product
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

package inventory

import (
	"context"

	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID, with its warehouse
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByIDs finds multiple locations by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Location, error)

	// FindAll finds locations; filter keys: warehouse_id, type
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, error)

	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// IsReferenced reports whether any quant or move points at the location
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)

	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuantFilter narrows stock quant queries
type QuantFilter struct {
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
}

// StockQuantRepository defines the interface for the per-location ledger
type StockQuantRepository interface {
	// FindOrCreateForUpdate returns the quant for the pair, inserting an empty
	// row first if none exists, and locks it until the transaction ends
	FindOrCreateForUpdate(ctx context.Context, productID, locationID uuid.UUID) (*StockQuant, error)

	// Find returns the quant for the pair or a NOT_FOUND error
	Find(ctx context.Context, productID, locationID uuid.UUID) (*StockQuant, error)

	// FindAll returns quants with product and location, ordered by product id
	FindAll(ctx context.Context, filter QuantFilter) ([]StockQuant, error)

	// SumByProduct totals a product's quantity across all locations
	SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// UpdateQuantity persists only the quantity of a quant
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64) error
}

// MoveFilter narrows stock move listings
type MoveFilter struct {
	Type     *OperationType
	Status   *OperationStatus
	Page     int
	PageSize int
}

// StockMoveRepository defines the interface for stock move persistence
type StockMoveRepository interface {
	// Create inserts the move header only
	Create(ctx context.Context, move *StockMove) error

	// CreateOrderLine inserts one line of a move
	CreateOrderLine(ctx context.Context, line *OrderLine) error

	// UpdateStatus persists the header status
	UpdateStatus(ctx context.Context, id uuid.UUID, status OperationStatus) error

	// FindByID finds a move with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*StockMove, error)

	// FindDetailByID finds a move with product, locations and lines with products
	FindDetailByID(ctx context.Context, id uuid.UUID) (*StockMove, error)

	// FindAll lists moves with details, newest first
	FindAll(ctx context.Context, filter MoveFilter) ([]StockMove, error)

	// Count counts moves matching the filter
	Count(ctx context.Context, filter MoveFilter) (int64, error)

	// FindRecent returns the latest moves with details
	FindRecent(ctx context.Context, limit int) ([]StockMove, error)
}

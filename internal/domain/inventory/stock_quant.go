package inventory

import (
	"time"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// StockQuant is the on-hand quantity of one product at one location.
// Quantity never goes below zero.
type StockQuant struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	LocationID uuid.UUID
	Quantity   int64

	// Populated only when loaded with details
	Product  *catalog.Product
	Location *Location
}

// NewStockQuant creates an empty quant for a product/location pair
func NewStockQuant(productID, locationID uuid.UUID) *StockQuant {
	return &StockQuant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		LocationID: locationID,
	}
}

// ApplyDelta adds delta to the quant, flooring at zero.
// It reports whether the floor was hit.
func (q *StockQuant) ApplyDelta(delta int64) bool {
	next, clamped := valueobject.ApplyClampedDelta(q.Quantity, delta)
	q.Quantity = next
	q.UpdatedAt = time.Now()
	return clamped
}

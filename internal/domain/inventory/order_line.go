package inventory

import (
	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one product entry of a stock move. Immutable once created.
type OrderLine struct {
	shared.BaseEntity
	StockMoveID uuid.UUID
	ProductID   uuid.UUID
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal

	// Product is populated only when loaded with details
	Product *catalog.Product
}

// NewOrderLine creates a line and computes its subtotal
func NewOrderLine(stockMoveID uuid.UUID, item LineItem) *OrderLine {
	price := item.UnitPrice.Round(2)
	return &OrderLine{
		BaseEntity:  shared.NewBaseEntity(),
		StockMoveID: stockMoveID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		UnitPrice:   price,
		Subtotal:    price.Mul(decimal.NewFromInt(item.Quantity)),
	}
}

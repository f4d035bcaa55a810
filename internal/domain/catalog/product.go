package catalog

import (
	"strings"
	"time"

	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DefaultUOM is the unit of measure assigned when none is given
const DefaultUOM = "Unit"

// Product represents a stocked item in the catalog.
// Quantity is the aggregate on-hand count across all locations and is only
// changed by stock operations.
type Product struct {
	shared.BaseEntity
	SKU         string
	Name        string
	Category    string
	UOM         string
	Quantity    int64
	UnitCost    decimal.Decimal
	Description string
}

// NewProduct creates a new product with zero stock
func NewProduct(sku, name string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        sku,
		Name:       name,
		UOM:        DefaultUOM,
		UnitCost:   decimal.Zero,
	}, nil
}

// ProductDetails holds the editable attributes of a product.
// Nil fields are left unchanged.
type ProductDetails struct {
	SKU         *string
	Name        *string
	Category    *string
	UOM         *string
	Description *string
	UnitCost    *decimal.Decimal
}

// Update applies catalog edits. Quantity is never touched here.
func (p *Product) Update(d ProductDetails) error {
	if d.SKU != nil {
		sku := strings.TrimSpace(*d.SKU)
		if err := validateSKU(sku); err != nil {
			return err
		}
		p.SKU = sku
	}
	if d.Name != nil {
		if err := validateProductName(*d.Name); err != nil {
			return err
		}
		p.Name = *d.Name
	}
	if d.Category != nil {
		p.Category = *d.Category
	}
	if d.UOM != nil {
		uom := strings.TrimSpace(*d.UOM)
		if uom == "" {
			uom = DefaultUOM
		}
		if len(uom) > 20 {
			return shared.NewDomainError(shared.CodeInvalidInput, "Unit of measure cannot exceed 20 characters")
		}
		p.UOM = uom
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.UnitCost != nil {
		if d.UnitCost.IsNegative() {
			return shared.NewDomainError(shared.CodeInvalidInput, "Unit cost cannot be negative")
		}
		p.UnitCost = d.UnitCost.Round(2)
	}
	p.UpdatedAt = time.Now()
	return nil
}

// AdjustQuantity applies a signed delta to the aggregate, flooring at zero.
// It reports whether the floor was hit.
func (p *Product) AdjustQuantity(delta int64) bool {
	next, clamped := valueobject.ApplyClampedDelta(p.Quantity, delta)
	p.Quantity = next
	p.UpdatedAt = time.Now()
	return clamped
}

// IsLowStock reports whether the aggregate is below threshold
func (p *Product) IsLowStock(threshold int64) bool {
	return p.Quantity < threshold
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewDomainError(shared.CodeInvalidInput, "SKU cannot exceed 64 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot exceed 200 characters")
	}
	return nil
}

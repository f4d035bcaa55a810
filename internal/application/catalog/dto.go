package catalog

import (
	"time"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU         string           `json:"sku" binding:"required,min=1,max=64"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Category    string           `json:"category" binding:"max=100"`
	UOM         string           `json:"uom" binding:"max=20"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Description string           `json:"description"`
}

// UpdateProductRequest represents a request to update a product.
// Quantity is not editable here; it only moves through stock operations.
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" binding:"omitempty,min=1,max=64"`
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	UOM         *string          `json:"uom" binding:"omitempty,max=20"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Description *string          `json:"description"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=sku name quantity created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	UOM         string          `json:"uom"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Description string          `json:"description,omitempty"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product, lowStockThreshold int64) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		UOM:         p.UOM,
		Quantity:    p.Quantity,
		UnitCost:    p.UnitCost,
		Description: p.Description,
		LowStock:    p.IsLowStock(lowStockThreshold),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product, lowStockThreshold int64) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i], lowStockThreshold)
	}
	return out
}

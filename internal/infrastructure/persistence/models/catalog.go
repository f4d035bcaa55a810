package models

import (
	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	SKU         string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_sku"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100)"`
	UOM         string          `gorm:"column:uom;type:varchar(20);not null;default:'Unit'"`
	Quantity    int64           `gorm:"not null;default:0"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		SKU:         m.SKU,
		Name:        m.Name,
		Category:    m.Category,
		UOM:         m.UOM,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Category = p.Category
	m.UOM = p.UOM
	m.Quantity = p.Quantity
	m.UnitCost = p.UnitCost
	m.Description = p.Description
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

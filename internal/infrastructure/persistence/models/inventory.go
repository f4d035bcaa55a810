package models

import (
	"time"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseModel is the persistence model for the Warehouse entity.
type WarehouseModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse.
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Address:    m.Address,
	}
}

// WarehouseModelFromDomain creates a new persistence model from a domain Warehouse.
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{Name: w.Name, Address: w.Address}
	m.FromDomainBaseEntity(w.BaseEntity)
	return m
}

// LocationModel is the persistence model for the Location entity.
type LocationModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null"`
	Type        string          `gorm:"type:varchar(20);not null;default:'Internal'"`
	WarehouseID *uuid.UUID      `gorm:"type:uuid;index"`
	Warehouse   *WarehouseModel `gorm:"foreignKey:WarehouseID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (LocationModel) TableName() string {
	return "locations"
}

// ToDomain converts the persistence model to a domain Location.
func (m *LocationModel) ToDomain() *inventory.Location {
	loc := &inventory.Location{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Type:        inventory.LocationType(m.Type),
		WarehouseID: m.WarehouseID,
	}
	if m.Warehouse != nil {
		loc.Warehouse = m.Warehouse.ToDomain()
	}
	return loc
}

// LocationModelFromDomain creates a new persistence model from a domain Location.
func LocationModelFromDomain(l *inventory.Location) *LocationModel {
	m := &LocationModel{
		Name:        l.Name,
		Type:        l.Type.String(),
		WarehouseID: l.WarehouseID,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// StockQuantModel is the persistence model for the per-location ledger.
// (product_id, location_id) is unique.
type StockQuantModel struct {
	BaseModel
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_stock_quants_product_location,priority:1"`
	LocationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_stock_quants_product_location,priority:2;index"`
	Quantity   int64          `gorm:"not null;default:0"`
	Product    *ProductModel  `gorm:"foreignKey:ProductID;references:ID"`
	Location   *LocationModel `gorm:"foreignKey:LocationID;references:ID"`
}

// TableName returns the table name for GORM
func (StockQuantModel) TableName() string {
	return "stock_quants"
}

// ToDomain converts the persistence model to a domain StockQuant.
func (m *StockQuantModel) ToDomain() *inventory.StockQuant {
	q := &inventory.StockQuant{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		LocationID: m.LocationID,
		Quantity:   m.Quantity,
	}
	if m.Product != nil {
		q.Product = m.Product.ToDomain()
	}
	if m.Location != nil {
		q.Location = m.Location.ToDomain()
	}
	return q
}

// StockQuantModelFromDomain creates a new persistence model from a domain StockQuant.
func StockQuantModelFromDomain(q *inventory.StockQuant) *StockQuantModel {
	m := &StockQuantModel{
		ProductID:  q.ProductID,
		LocationID: q.LocationID,
		Quantity:   q.Quantity,
	}
	m.FromDomainBaseEntity(q.BaseEntity)
	return m
}

// StockMoveModel is the persistence model for a stock operation header.
type StockMoveModel struct {
	BaseModel
	Type             string           `gorm:"type:varchar(3);not null;index"`
	Status           string           `gorm:"type:varchar(20);not null;default:'Draft';index"`
	SourceLocationID *uuid.UUID       `gorm:"type:uuid;index"`
	DestLocationID   *uuid.UUID       `gorm:"type:uuid;index"`
	ProductID        *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity         *int64           `gorm:"type:bigint"`
	Reference        string           `gorm:"type:varchar(100);not null"`
	Responsible      string           `gorm:"type:varchar(100)"`
	ScheduleDate     *time.Time       `gorm:"index"`
	DeliveryAddress  string           `gorm:"type:text"`
	ContactPerson    string           `gorm:"type:varchar(100)"`
	Product          *ProductModel    `gorm:"foreignKey:ProductID;references:ID"`
	SourceLocation   *LocationModel   `gorm:"foreignKey:SourceLocationID;references:ID"`
	DestLocation     *LocationModel   `gorm:"foreignKey:DestLocationID;references:ID"`
	OrderLines       []OrderLineModel `gorm:"foreignKey:StockMoveID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StockMoveModel) TableName() string {
	return "stock_moves"
}

// ToDomain converts the persistence model to a domain StockMove.
func (m *StockMoveModel) ToDomain() *inventory.StockMove {
	move := &inventory.StockMove{
		BaseEntity:       m.BaseModel.ToDomain(),
		Type:             inventory.OperationType(m.Type),
		Status:           inventory.OperationStatus(m.Status),
		SourceLocationID: m.SourceLocationID,
		DestLocationID:   m.DestLocationID,
		ProductID:        m.ProductID,
		Quantity:         m.Quantity,
		MoveMetadata: inventory.MoveMetadata{
			Reference:       m.Reference,
			Responsible:     m.Responsible,
			ScheduleDate:    m.ScheduleDate,
			DeliveryAddress: m.DeliveryAddress,
			ContactPerson:   m.ContactPerson,
		},
		OrderLines: make([]inventory.OrderLine, len(m.OrderLines)),
	}
	for i := range m.OrderLines {
		move.OrderLines[i] = *m.OrderLines[i].ToDomain()
	}
	if m.Product != nil {
		move.Product = m.Product.ToDomain()
	}
	if m.SourceLocation != nil {
		move.SourceLocation = m.SourceLocation.ToDomain()
	}
	if m.DestLocation != nil {
		move.DestLocation = m.DestLocation.ToDomain()
	}
	return move
}

// StockMoveModelFromDomain creates a header-only persistence model from a domain StockMove.
func StockMoveModelFromDomain(s *inventory.StockMove) *StockMoveModel {
	m := &StockMoveModel{
		Type:             s.Type.String(),
		Status:           s.Status.String(),
		SourceLocationID: s.SourceLocationID,
		DestLocationID:   s.DestLocationID,
		ProductID:        s.ProductID,
		Quantity:         s.Quantity,
		Reference:        s.Reference,
		Responsible:      s.Responsible,
		ScheduleDate:     s.ScheduleDate,
		DeliveryAddress:  s.DeliveryAddress,
		ContactPerson:    s.ContactPerson,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// OrderLineModel is the persistence model for one line of a stock move.
type OrderLineModel struct {
	BaseModel
	StockMoveID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Product     *ProductModel   `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine.
func (m *OrderLineModel) ToDomain() *inventory.OrderLine {
	line := &inventory.OrderLine{
		BaseEntity:  m.BaseModel.ToDomain(),
		StockMoveID: m.StockMoveID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
	}
	if m.Product != nil {
		line.Product = m.Product.ToDomain()
	}
	return line
}

// OrderLineModelFromDomain creates a new persistence model from a domain OrderLine.
func OrderLineModelFromDomain(l *inventory.OrderLine) *OrderLineModel {
	m := &OrderLineModel{
		StockMoveID: l.StockMoveID,
		ProductID:   l.ProductID,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

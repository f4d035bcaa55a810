// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by every table
// - catalog.go: ProductModel
// - inventory.go: warehouses, locations, stock quants, stock moves and order lines
package models

// All returns every persistence model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&ProductModel{},
		&WarehouseModel{},
		&LocationModel{},
		&StockQuantModel{},
		&StockMoveModel{},
		&OrderLineModel{},
	}
}

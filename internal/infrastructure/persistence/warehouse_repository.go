package persistence

import (
	"context"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists warehouses
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Warehouse, error) {
	var ms []models.WarehouseModel
	query := applyPagination(r.db.WithContext(ctx).Model(&models.WarehouseModel{}),
		ValidateSortField(filter.OrderBy, WarehouseSortFields, "name"),
		filter.OrderDir, filter.Page, filter.PageSize)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.Warehouse, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// Count counts warehouses
func (r *GormWarehouseRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.WarehouseModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Save(models.WarehouseModelFromDomain(warehouse)).Error
}

// Delete removes a warehouse and detaches its locations
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LocationModel{}).
			Where("warehouse_id = ?", id).
			Update("warehouse_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.WarehouseModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ inventory.WarehouseRepository = (*GormWarehouseRepository)(nil)

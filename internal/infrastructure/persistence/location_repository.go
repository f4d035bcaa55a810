package persistence

import (
	"context"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID, with its warehouse
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	var model models.LocationModel
	if err := r.db.WithContext(ctx).
		Preload("Warehouse").
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple locations by their IDs
func (r *GormLocationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Location, error) {
	if len(ids) == 0 {
		return []inventory.Location{}, nil
	}
	var ms []models.LocationModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}
	return locationsToDomain(ms), nil
}

// FindAll lists locations with their warehouse
func (r *GormLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Location, error) {
	var ms []models.LocationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LocationModel{}).Preload("Warehouse"), filter)
	query = applyPagination(query,
		ValidateSortField(filter.OrderBy, LocationSortFields, "name"),
		filter.OrderDir, filter.Page, filter.PageSize)
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return locationsToDomain(ms), nil
}

// Count counts locations matching the filter
func (r *GormLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LocationModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// IsReferenced reports whether any quant or move points at the location
func (r *GormLocationRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockQuantModel{}).
		Where("location_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.StockMoveModel{}).
		Where("source_location_id = ? OR dest_location_id = ?", id, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *inventory.Location) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(models.LocationModelFromDomain(location)).Error
}

// Delete deletes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LocationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter keys: warehouse_id, type
func (r *GormLocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}
	return query
}

func locationsToDomain(ms []models.LocationModel) []inventory.Location {
	out := make([]inventory.Location, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

var _ inventory.LocationRepository = (*GormLocationRepository)(nil)

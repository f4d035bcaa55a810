package persistence

import (
	"context"
	"time"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockQuantRepository implements StockQuantRepository using GORM
type GormStockQuantRepository struct {
	db *gorm.DB
}

// NewGormStockQuantRepository creates a new GormStockQuantRepository
func NewGormStockQuantRepository(db *gorm.DB) *GormStockQuantRepository {
	return &GormStockQuantRepository{db: db}
}

// FindOrCreateForUpdate inserts an empty quant if the pair has none, then
// reads it back with a row lock. Concurrent creators collapse on the unique
// (product_id, location_id) index.
func (r *GormStockQuantRepository) FindOrCreateForUpdate(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockQuant, error) {
	db := r.db.WithContext(ctx)

	seed := models.StockQuantModelFromDomain(inventory.NewStockQuant(productID, locationID))
	if err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_id"}},
			DoNothing: true,
		}).
		Create(seed).Error; err != nil {
		return nil, err
	}

	var model models.StockQuantModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// Find returns the quant for the pair
func (r *GormStockQuantRepository) Find(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockQuant, error) {
	var model models.StockQuantModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns quants with product and location, ordered by product id
func (r *GormStockQuantRepository) FindAll(ctx context.Context, filter inventory.QuantFilter) ([]inventory.StockQuant, error) {
	query := r.db.WithContext(ctx).
		Model(&models.StockQuantModel{}).
		Preload("Product").
		Preload("Location.Warehouse")
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}

	var ms []models.StockQuantModel
	if err := query.Order("product_id ASC").Order("location_id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]inventory.StockQuant, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out, nil
}

// SumByProduct totals a product's quantity across all locations
func (r *GormStockQuantRepository) SumByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockQuantModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateQuantity persists only the quantity of a quant
func (r *GormStockQuantRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockQuantModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ inventory.StockQuantRepository = (*GormStockQuantRepository)(nil)

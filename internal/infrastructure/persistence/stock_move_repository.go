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

// GormStockMoveRepository implements StockMoveRepository using GORM
type GormStockMoveRepository struct {
	db *gorm.DB
}

// NewGormStockMoveRepository creates a new GormStockMoveRepository
func NewGormStockMoveRepository(db *gorm.DB) *GormStockMoveRepository {
	return &GormStockMoveRepository{db: db}
}

// Create inserts the move header only
func (r *GormStockMoveRepository) Create(ctx context.Context, move *inventory.StockMove) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.StockMoveModelFromDomain(move)).Error
}

// CreateOrderLine inserts one line of a move
func (r *GormStockMoveRepository) CreateOrderLine(ctx context.Context, line *inventory.OrderLine) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(models.OrderLineModelFromDomain(line)).Error
}

// UpdateStatus persists the header status
func (r *GormStockMoveRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status inventory.OperationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockMoveModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status.String(),
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

// FindByID finds a move with its lines
func (r *GormStockMoveRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMove, error) {
	var model models.StockMoveModel
	if err := r.db.WithContext(ctx).
		Preload("OrderLines", orderLinesOrdered).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindDetailByID finds a move with product, locations and lines with products
func (r *GormStockMoveRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*inventory.StockMove, error) {
	var model models.StockMoveModel
	if err := r.withDetails(r.db.WithContext(ctx)).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists moves with details, newest first
func (r *GormStockMoveRepository) FindAll(ctx context.Context, filter inventory.MoveFilter) ([]inventory.StockMove, error) {
	query := r.withDetails(r.applyFilter(r.db.WithContext(ctx).Model(&models.StockMoveModel{}), filter))
	query = query.Order("created_at DESC").Order("id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var ms []models.StockMoveModel
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}
	return movesToDomain(ms), nil
}

// Count counts moves matching the filter
func (r *GormStockMoveRepository) Count(ctx context.Context, filter inventory.MoveFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockMoveModel{}), filter).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRecent returns the latest moves with details
func (r *GormStockMoveRepository) FindRecent(ctx context.Context, limit int) ([]inventory.StockMove, error) {
	if limit <= 0 {
		return []inventory.StockMove{}, nil
	}
	var ms []models.StockMoveModel
	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return movesToDomain(ms), nil
}

func (r *GormStockMoveRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Product").
		Preload("SourceLocation").
		Preload("DestLocation").
		Preload("OrderLines", orderLinesOrdered).
		Preload("OrderLines.Product")
}

func (r *GormStockMoveRepository) applyFilter(query *gorm.DB, filter inventory.MoveFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	return query
}

func orderLinesOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func movesToDomain(ms []models.StockMoveModel) []inventory.StockMove {
	out := make([]inventory.StockMove, len(ms))
	for i := range ms {
		out[i] = *ms[i].ToDomain()
	}
	return out
}

var _ inventory.StockMoveRepository = (*GormStockMoveRepository)(nil)

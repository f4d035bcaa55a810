package inventory

import (
	"context"
	"time"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold marks products with fewer units as low on stock
const DefaultLowStockThreshold int64 = 10

// KPICache stores computed dashboard counters
type KPICache interface {
	Get(ctx context.Context) (*DashboardKPIs, bool, error)
	Set(ctx context.Context, kpis *DashboardKPIs, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// DashboardConfig tunes the dashboard queries
type DashboardConfig struct {
	LowStockThreshold int64
	RecentLimit       int
	CacheTTL          time.Duration
}

// DashboardService computes dashboard counters and recent activity
type DashboardService struct {
	productRepo catalog.ProductRepository
	moveRepo    inventory.StockMoveRepository
	cache       KPICache
	cfg         DashboardConfig
	logger      *zap.Logger
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(
	productRepo catalog.ProductRepository,
	moveRepo inventory.StockMoveRepository,
	cache KPICache,
	cfg DashboardConfig,
	logger *zap.Logger,
) *DashboardService {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = DefaultLowStockThreshold
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		productRepo: productRepo,
		moveRepo:    moveRepo,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetKPIs returns product count, draft receipts, draft deliveries and low stock count
func (s *DashboardService) GetKPIs(ctx context.Context) (*DashboardKPIs, error) {
	if s.cache != nil {
		kpis, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if ok {
			return kpis, nil
		}
	}

	kpis, err := s.computeKPIs(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cfg.CacheTTL > 0 {
		if err := s.cache.Set(ctx, kpis, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return kpis, nil
}

func (s *DashboardService) computeKPIs(ctx context.Context) (*DashboardKPIs, error) {
	totalProducts, err := s.productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	receipt, delivery := inventory.OperationTypeReceipt, inventory.OperationTypeDelivery
	draft := inventory.OperationStatusDraft
	pendingReceipts, err := s.moveRepo.Count(ctx, inventory.MoveFilter{Type: &receipt, Status: &draft})
	if err != nil {
		return nil, err
	}
	pendingDeliveries, err := s.moveRepo.Count(ctx, inventory.MoveFilter{Type: &delivery, Status: &draft})
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.CountBelowQuantity(ctx, s.cfg.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardKPIs{
		TotalProducts:     totalProducts,
		PendingReceipts:   pendingReceipts,
		PendingDeliveries: pendingDeliveries,
		LowStock:          lowStock,
	}, nil
}

// RecentActivity returns the latest stock moves
func (s *DashboardService) RecentActivity(ctx context.Context) ([]OperationResponse, error) {
	moves, err := s.moveRepo.FindRecent(ctx, s.cfg.RecentLimit)
	if err != nil {
		return nil, err
	}
	return ToOperationResponses(moves), nil
}

// InvalidateKPIs drops cached counters
func (s *DashboardService) InvalidateKPIs(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx)
}

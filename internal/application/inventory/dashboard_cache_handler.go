package inventory

import (
	"context"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"go.uber.org/zap"
)

// DashboardCacheHandler drops cached dashboard counters whenever an event
// changes what they count
type DashboardCacheHandler struct {
	dashboard *DashboardService
	logger    *zap.Logger
}

// NewDashboardCacheHandler creates a new DashboardCacheHandler
func NewDashboardCacheHandler(dashboard *DashboardService, logger *zap.Logger) *DashboardCacheHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardCacheHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DashboardCacheHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeStockOperationCompleted,
		inventory.EventTypeStockMoveStatusChanged,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductDeleted,
	}
}

// Handle invalidates the KPI cache
func (h *DashboardCacheHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.dashboard.InvalidateKPIs(ctx); err != nil {
		return err
	}
	h.logger.Debug("dashboard KPIs invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	)
	return nil
}

var _ shared.EventHandler = (*DashboardCacheHandler)(nil)

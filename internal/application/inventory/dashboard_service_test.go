package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKPICache struct {
	mu          sync.Mutex
	value       *appinv.DashboardKPIs
	sets        int
	invalidated int
}

func (c *fakeKPICache) Get(context.Context) (*appinv.DashboardKPIs, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil {
		return nil, false, nil
	}
	v := *c.value
	return &v, true, nil
}

func (c *fakeKPICache) Set(_ context.Context, kpis *appinv.DashboardKPIs, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := *kpis
	c.value = &v
	c.sets++
	return nil
}

func (c *fakeKPICache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.invalidated++
	return nil
}

func TestDashboardService_GetKPIs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	low := h.product(t, "LOW")
	high := h.product(t, "HIGH")
	h.product(t, "EMPTY")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)

	h.single(t, inventory.OperationTypeReceipt, low, 9, nil, l1)
	h.single(t, inventory.OperationTypeReceipt, high, 10, nil, l1)

	draftIn := inventory.NewStockMove(inventory.NormalizedOperation{Type: inventory.OperationTypeReceipt, DestLocationID: &l1.ID})
	require.NoError(t, h.moves.Create(ctx, draftIn))
	draftOut := inventory.NewStockMove(inventory.NormalizedOperation{Type: inventory.OperationTypeDelivery, SourceLocationID: &l1.ID})
	require.NoError(t, h.moves.Create(ctx, draftOut))
	readyOut := inventory.NewStockMove(inventory.NormalizedOperation{Type: inventory.OperationTypeDelivery, SourceLocationID: &l1.ID})
	require.NoError(t, h.moves.Create(ctx, readyOut))
	require.NoError(t, h.moves.UpdateStatus(ctx, readyOut.ID, inventory.OperationStatusReady))

	svc := appinv.NewDashboardService(h.products, h.moves, nil, appinv.DashboardConfig{}, nil)
	kpis, err := svc.GetKPIs(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), kpis.TotalProducts)
	assert.Equal(t, int64(1), kpis.PendingReceipts)
	assert.Equal(t, int64(1), kpis.PendingDeliveries)
	assert.Equal(t, int64(2), kpis.LowStock, "9 and 0 are below 10, exactly 10 is not")
}

func TestDashboardService_UsesCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.product(t, "A")
	cache := &fakeKPICache{}

	svc := appinv.NewDashboardService(h.products, h.moves, cache, appinv.DashboardConfig{CacheTTL: time.Minute}, nil)

	first, err := svc.GetKPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalProducts)
	assert.Equal(t, 1, cache.sets)

	h.product(t, "B")
	cached, err := svc.GetKPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.TotalProducts, "served from cache")

	handler := appinv.NewDashboardCacheHandler(svc, nil)
	assert.Contains(t, handler.EventTypes(), inventory.EventTypeStockOperationCompleted)
	require.NoError(t, handler.Handle(ctx, testutil.NewTestEvent(inventory.EventTypeStockOperationCompleted)))
	assert.Equal(t, 1, cache.invalidated)

	fresh, err := svc.GetKPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.TotalProducts)
}

func TestDashboardService_RecentActivity(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "A")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	for i := 0; i < 7; i++ {
		h.single(t, inventory.OperationTypeReceipt, p, 1, nil, l1)
	}

	svc := appinv.NewDashboardService(h.products, h.moves, nil, appinv.DashboardConfig{}, nil)
	recent, err := svc.RecentActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, recent, 5)
	require.NotNil(t, recent[0].Product)
	assert.Equal(t, "A", recent[0].Product.SKU)
}

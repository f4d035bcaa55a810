package inventory_test

import (
	"context"
	"errors"
	"testing"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWorkbook struct {
	rows []appinv.StockQuantResponse
	err  error
}

func (w *stubWorkbook) WriteStock(rows []appinv.StockQuantResponse) ([]byte, error) {
	w.rows = rows
	if w.err != nil {
		return nil, w.err
	}
	return []byte("xlsx"), nil
}

func TestStockService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.product(t, "A")
	other := h.product(t, "B")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	l2 := h.location(t, "L2", inventory.LocationTypeInternal)
	h.single(t, inventory.OperationTypeReceipt, p, 4, nil, l1)
	h.single(t, inventory.OperationTypeReceipt, p, 6, nil, l2)
	h.single(t, inventory.OperationTypeReceipt, other, 1, nil, l1)

	wb := &stubWorkbook{}
	svc := appinv.NewStockService(h.quants, h.products, wb)

	t.Run("per product breakdown", func(t *testing.T) {
		stock, err := svc.GetProductStock(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), stock.TotalQuantity)
		assert.Len(t, stock.ByLocation, 2)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.GetProductStock(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list by location", func(t *testing.T) {
		rows, err := svc.ListStock(ctx, appinv.StockFilter{LocationID: &l1.ID})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		for _, r := range rows {
			assert.Equal(t, l1.ID, r.LocationID)
			require.NotNil(t, r.Product)
		}
	})

	t.Run("export renders listing", func(t *testing.T) {
		data, err := svc.ExportStock(ctx, appinv.StockFilter{ProductID: &p.ID})
		require.NoError(t, err)
		assert.Equal(t, []byte("xlsx"), data)
		assert.Len(t, wb.rows, 2)
	})

	t.Run("export failure is wrapped", func(t *testing.T) {
		failing := appinv.NewStockService(h.quants, h.products, &stubWorkbook{err: errors.New("boom")})
		_, err := failing.ExportStock(ctx, appinv.StockFilter{})
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("export not configured", func(t *testing.T) {
		bare := appinv.NewStockService(h.quants, h.products, nil)
		_, err := bare.ExportStock(ctx, appinv.StockFilter{})
		assert.Error(t, err)
	})
}

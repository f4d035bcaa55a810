package inventory_test

import (
	"context"
	"testing"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc := appinv.NewWarehouseService(persistence.NewGormWarehouseRepository(h.db))

	created, err := svc.Create(ctx, appinv.WarehouseRequest{Name: "Main", Address: "1 Dock Rd"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, appinv.WarehouseRequest{Name: "Annex"})
	require.NoError(t, err)

	list, total, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Annex", list[0].Name)

	updated, err := svc.Update(ctx, created.ID, appinv.WarehouseRequest{Name: "Main WH", Address: "2 Dock Rd"})
	require.NoError(t, err)
	assert.Equal(t, "Main WH", updated.Name)

	_, err = svc.Create(ctx, appinv.WarehouseRequest{Name: "  "})
	requireCode(t, err, shared.CodeInvalidInput)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, appinv.ErrWarehouseNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), appinv.ErrWarehouseNotFound)
}

func TestLocationService(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	whRepo := persistence.NewGormWarehouseRepository(h.db)
	whSvc := appinv.NewWarehouseService(whRepo)
	svc := appinv.NewLocationService(h.locations, whRepo)

	wh, err := whSvc.Create(ctx, appinv.WarehouseRequest{Name: "Main"})
	require.NoError(t, err)

	t.Run("create defaults to internal and loads warehouse", func(t *testing.T) {
		loc, err := svc.Create(ctx, appinv.LocationRequest{Name: "WH/Stock", WarehouseID: &wh.ID})
		require.NoError(t, err)
		assert.Equal(t, "Internal", loc.Type)
		require.NotNil(t, loc.Warehouse)
		assert.Equal(t, "Main", loc.Warehouse.Name)
	})

	t.Run("unknown warehouse", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.Create(ctx, appinv.LocationRequest{Name: "X", WarehouseID: &missing})
		assert.ErrorIs(t, err, appinv.ErrWarehouseNotFound)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Create(ctx, appinv.LocationRequest{Name: "X", Type: "Moon"})
		requireCode(t, err, shared.CodeInvalidInput)
	})

	t.Run("list by type", func(t *testing.T) {
		_, err := svc.Create(ctx, appinv.LocationRequest{Name: "Customers", Type: "Customer"})
		require.NoError(t, err)
		list, total, err := svc.List(ctx, appinv.LocationListFilter{Type: "Customer"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Customers", list[0].Name)
	})

	t.Run("update keeps type when omitted", func(t *testing.T) {
		loc, err := svc.Create(ctx, appinv.LocationRequest{Name: "Vendors", Type: "Vendor"})
		require.NoError(t, err)
		updated, err := svc.Update(ctx, loc.ID, appinv.LocationRequest{Name: "Suppliers"})
		require.NoError(t, err)
		assert.Equal(t, "Suppliers", updated.Name)
		assert.Equal(t, "Vendor", updated.Type)
	})

	t.Run("referenced location cannot be deleted", func(t *testing.T) {
		loc, err := svc.Create(ctx, appinv.LocationRequest{Name: "Bin"})
		require.NoError(t, err)
		p := h.product(t, "BIN-P")
		dest, err := h.locations.FindByID(ctx, loc.ID)
		require.NoError(t, err)
		h.single(t, inventory.OperationTypeReceipt, p, 1, nil, dest)

		requireCode(t, svc.Delete(ctx, loc.ID), shared.CodeInvalidState)
	})

	t.Run("unused location is deleted", func(t *testing.T) {
		loc, err := svc.Create(ctx, appinv.LocationRequest{Name: "Spare"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, loc.ID))
		assert.ErrorIs(t, svc.Delete(ctx, loc.ID), appinv.ErrLocationNotFound)
	})
}

package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/erp/inventory/internal/application/catalog"
	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/infrastructure/export"
	"github.com/erp/inventory/internal/infrastructure/persistence"
	"github.com/erp/inventory/internal/infrastructure/printing"
	"github.com/erp/inventory/internal/interfaces/http/middleware"
	"github.com/erp/inventory/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// apiHarness serves every handler against a private SQLite database
type apiHarness struct {
	engine *gin.Engine
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	log := zaptest.NewLogger(t)

	products := persistence.NewGormProductRepository(db)
	locations := persistence.NewGormLocationRepository(db)
	warehouses := persistence.NewGormWarehouseRepository(db)
	quants := persistence.NewGormStockQuantRepository(db)
	moves := persistence.NewGormStockMoveRepository(db)

	operationService := inventoryapp.NewOperationService(
		persistence.NewGormTransactionScope(db),
		inventory.NewOperationValidator(products, locations),
		moves,
		inventoryapp.WithSlipRenderer(printing.NewSlipRenderer("Test Warehouse Co")),
		inventoryapp.WithLogger(log),
	)

	operations := NewOperationHandler(operationService)
	stock := NewStockHandler(inventoryapp.NewStockService(quants, products, export.NewStockWorkbook()))
	dashboard := NewDashboardHandler(inventoryapp.NewDashboardService(products, moves, nil, inventoryapp.DashboardConfig{}, log))
	productHandler := NewProductHandler(catalogapp.NewProductService(products, nil, 10, log))
	warehouseHandler := NewWarehouseHandler(inventoryapp.NewWarehouseService(warehouses))
	locationHandler := NewLocationHandler(inventoryapp.NewLocationService(locations, warehouses))

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	api := engine.Group("/api/v1")
	api.POST("/operations", operations.Create)
	api.GET("/operations", operations.List)
	api.GET("/operations/:id", operations.GetByID)
	api.PUT("/operations/:id/status", operations.UpdateStatus)
	api.GET("/operations/:id/slip", operations.Slip)

	api.GET("/stock", stock.List)
	api.GET("/stock/export", stock.Export)
	api.GET("/stock/products/:id", stock.GetProductStock)

	api.GET("/dashboard/kpis", dashboard.KPIs)
	api.GET("/dashboard/activity", dashboard.Activity)

	api.POST("/products", productHandler.Create)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.GetByID)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)

	api.POST("/warehouses", warehouseHandler.Create)
	api.GET("/warehouses", warehouseHandler.List)
	api.GET("/warehouses/:id", warehouseHandler.GetByID)
	api.PUT("/warehouses/:id", warehouseHandler.Update)
	api.DELETE("/warehouses/:id", warehouseHandler.Delete)

	api.POST("/locations", locationHandler.Create)
	api.GET("/locations", locationHandler.List)
	api.GET("/locations/:id", locationHandler.GetByID)
	api.PUT("/locations/:id", locationHandler.Update)
	api.DELETE("/locations/:id", locationHandler.Delete)

	return &apiHarness{engine: engine}
}

func (h *apiHarness) createProduct(t *testing.T, sku string) catalogapp.ProductResponse {
	t.Helper()
	w := testutil.PerformJSON(t, h.engine, http.MethodPost, "/api/v1/products", map[string]any{
		"sku":  sku,
		"name": "Product " + sku,
		"uom":  "pcs",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[catalogapp.ProductResponse](t, w)
}

func (h *apiHarness) createLocation(t *testing.T, name, locType string) inventoryapp.LocationResponse {
	t.Helper()
	w := testutil.PerformJSON(t, h.engine, http.MethodPost, "/api/v1/locations", map[string]any{
		"name": name,
		"type": locType,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[inventoryapp.LocationResponse](t, w)
}

func (h *apiHarness) createOperation(t *testing.T, body map[string]any) inventoryapp.OperationResponse {
	t.Helper()
	w := testutil.PerformJSON(t, h.engine, http.MethodPost, "/api/v1/operations", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DecodeData[inventoryapp.OperationResponse](t, w)
}

func (h *apiHarness) productQuantity(t *testing.T, id string) int64 {
	t.Helper()
	w := testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/products/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return testutil.DecodeData[catalogapp.ProductResponse](t, w).Quantity
}

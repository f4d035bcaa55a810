package router

import (
	"net/http"

	"github.com/erp/inventory/internal/infrastructure/logger"
	"github.com/erp/inventory/internal/infrastructure/telemetry"
	"github.com/erp/inventory/internal/interfaces/http/dto"
	"github.com/erp/inventory/internal/interfaces/http/handler"
	"github.com/erp/inventory/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultMaxBodySize caps request bodies when EngineConfig leaves it unset
const DefaultMaxBodySize int64 = 1 << 20

// Handlers bundles the HTTP handlers served by the engine
type Handlers struct {
	Health     *handler.HealthHandler
	Operation  *handler.OperationHandler
	Stock      *handler.StockHandler
	Dashboard  *handler.DashboardHandler
	Product    *handler.ProductHandler
	Warehouse  *handler.WarehouseHandler
	Location   *handler.LocationHandler
	Prometheus *telemetry.ScrapeRegistry
}

// EngineConfig controls the middleware chain
type EngineConfig struct {
	Logger         *zap.Logger
	ServiceName    string
	TracingEnabled bool
	MeterProvider  *telemetry.MeterProvider
	CORSOrigins    []string
	TrustedProxies []string
	MaxBodySize    int64
}

// NewEngine builds the gin engine with middleware and all inventory routes
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			cfg.Logger.Warn("Invalid trusted proxies, ignoring", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.ServiceName,
		Enabled:     cfg.TracingEnabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: cfg.MeterProvider,
		Enabled:       cfg.MeterProvider != nil,
		Logger:        cfg.Logger,
	}))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.MaxBodySize))

	if h.Health != nil {
		engine.GET("/health", h.Health.Live)
		engine.GET("/health/ready", h.Health.Ready)
	}
	if h.Prometheus != nil {
		engine.GET("/metrics", gin.WrapH(h.Prometheus.Handler()))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, group := range domainGroups(h) {
		r.Register(group)
	}
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c),
		))
	})

	return engine
}

func domainGroups(h Handlers) []*DomainGroup {
	var groups []*DomainGroup

	if h.Operation != nil {
		operations := NewDomainGroup("operations", "/operations")
		operations.POST("", h.Operation.Create)
		operations.GET("", h.Operation.List)
		operations.GET("/:id", h.Operation.GetByID)
		operations.PUT("/:id/status", h.Operation.UpdateStatus)
		operations.GET("/:id/slip", h.Operation.Slip)
		groups = append(groups, operations)
	}

	if h.Stock != nil {
		stock := NewDomainGroup("stock", "/stock")
		stock.GET("", h.Stock.List)
		stock.GET("/export", h.Stock.Export)
		stock.GET("/products/:id", h.Stock.GetProductStock)
		groups = append(groups, stock)
	}

	if h.Dashboard != nil {
		dashboard := NewDomainGroup("dashboard", "/dashboard")
		dashboard.GET("/kpis", h.Dashboard.KPIs)
		dashboard.GET("/activity", h.Dashboard.Activity)
		groups = append(groups, dashboard)
	}

	if h.Product != nil {
		groups = append(groups, crudGroup("products", "/products", h.Product))
	}
	if h.Warehouse != nil {
		groups = append(groups, crudGroup("warehouses", "/warehouses", h.Warehouse))
	}
	if h.Location != nil {
		groups = append(groups, crudGroup("locations", "/locations", h.Location))
	}

	return groups
}

type crudHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func crudGroup(name, prefix string, h crudHandler) *DomainGroup {
	return NewDomainGroup(name, prefix).
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/inventory/internal/infrastructure/telemetry"
	"github.com/erp/inventory/internal/interfaces/http/handler"
	"github.com/erp/inventory/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("things", "/things").
		GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
		POST("", func(c *gin.Context) { c.String(http.StatusCreated, "created") }).
		PUT("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
		DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.Register(group).Setup()

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/api/v1/things", http.StatusOK, "list"},
		{http.MethodPost, "/api/v1/things", http.StatusCreated, "created"},
		{http.MethodPut, "/api/v1/things/42", http.StatusOK, "42"},
		{http.MethodDelete, "/api/v1/things/42", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestRouterUse_AppliesToVersionedRoutes(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-Scoped", "yes")
		c.Next()
	})
	r.Register(NewDomainGroup("ping", "/ping").GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	}))
	r.Setup()
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, "yes", w.Header().Get("X-Scoped"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/outside", nil))
	assert.Empty(t, w.Header().Get("X-Scoped"))
}

func TestDomainGroup_Middleware(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("guarded", "/guarded").
		Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusTeapot)
		}).
		GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, "guarded", group.Name())
	assert.Equal(t, "/guarded", group.Prefix())

	group.RegisterRoutes(engine.Group("/api"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/guarded", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestNewEngine_HealthAndRequestID(t *testing.T) {
	engine := NewEngine(EngineConfig{}, Handlers{
		Health: handler.NewHealthHandler(stubPinger{}, "test"),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, w.Body.String(), `"version":"test"`)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestNewEngine_ReadinessFailure(t *testing.T) {
	engine := NewEngine(EngineConfig{}, Handlers{
		Health: handler.NewHealthHandler(stubPinger{err: errors.New("down")}, "test"),
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"error"`)
}

func TestNewEngine_MetricsEndpoint(t *testing.T) {
	reg, err := telemetry.NewScrapeRegistry(telemetry.ScrapeConfig{ServiceName: "inventory-service"})
	require.NoError(t, err)

	engine := NewEngine(EngineConfig{}, Handlers{Prometheus: reg})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestNewEngine_UnknownRoute(t *testing.T) {
	engine := NewEngine(EngineConfig{}, Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-404")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found","request_id":"req-404"}}`,
		w.Body.String())
}

func TestNewEngine_OversizedOperationRejected(t *testing.T) {
	engine := NewEngine(EngineConfig{MaxBodySize: 64}, Handlers{})

	body := `{"type":"IN","dest_location_id":"0a6b1f0c-2f57-4b8e-9a11-3c4d5e6f7a8b",` +
		`"order_lines":[{"product_id":"6f1c2a0e-8d3b-4c55-9a7e-0b1d2c3e4f50","quantity":5}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"REQUEST_TOO_LARGE"`)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

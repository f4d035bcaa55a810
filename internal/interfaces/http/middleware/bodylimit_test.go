package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// operationBody builds a receipt with n order lines, roughly 90 bytes per line
func operationBody(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = `{"product_id":"6f1c2a0e-8d3b-4c55-9a7e-0b1d2c3e4f50","quantity":5,"unit_price":"2.50"}`
	}
	return `{"type":"IN","dest_location_id":"0a6b1f0c-2f57-4b8e-9a11-3c4d5e6f7a8b","order_lines":[` +
		strings.Join(lines, ",") + `]}`
}

func newOperationsEngine(limit int64) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), BodyLimit(limit))
	engine.POST("/api/v1/operations", func(c *gin.Context) {
		var req struct {
			Type       string            `json:"type"`
			OrderLines []json.RawMessage `json:"order_lines"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			if IsBodyTooLarge(err) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"code": "REQUEST_TOO_LARGE"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"lines": len(req.OrderLines)})
	})
	engine.GET("/api/v1/operations", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestBodyLimit_OperationWithinLimit(t *testing.T) {
	engine := newOperationsEngine(4 << 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(operationBody(3)))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"lines":3}`, w.Body.String())
}

func TestBodyLimit_DeclaredLengthRejectedBeforeHandler(t *testing.T) {
	engine := newOperationsEngine(1 << 10)
	body := operationBody(50)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-big")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"REQUEST_TOO_LARGE",`+
		`"message":"`+BodyTooLargeMessage+`","request_id":"req-big"}}`, w.Body.String())
}

func TestBodyLimit_ChunkedOperationCutOffWhileBinding(t *testing.T) {
	engine := newOperationsEngine(1 << 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(operationBody(50)))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
}

func TestBodyLimit_MalformedSmallBodyIsNotTooLarge(t *testing.T) {
	engine := newOperationsEngine(1 << 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(`{"type":`))
	req.ContentLength = -1
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodyLimit_ListingWithoutBody(t *testing.T) {
	engine := newOperationsEngine(8)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/operations?type=IN", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsBodyTooLarge(t *testing.T) {
	assert.True(t, IsBodyTooLarge(&http.MaxBytesError{Limit: 8}))
	assert.False(t, IsBodyTooLarge(assert.AnError))
	assert.False(t, IsBodyTooLarge(nil))
}

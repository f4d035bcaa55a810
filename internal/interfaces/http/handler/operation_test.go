package handler

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/interfaces/http/dto"
	"github.com/erp/inventory/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationHandler_CreateReceiptAndDelivery(t *testing.T) {
	h := newAPIHarness(t)
	p := h.createProduct(t, "SKU-1")
	stock := h.createLocation(t, "WH/Stock", "Internal")

	in := h.createOperation(t, map[string]any{
		"type":             "IN",
		"product_id":       p.ID,
		"quantity":         50,
		"dest_location_id": stock.ID,
	})
	assert.Equal(t, "IN", in.Type)
	assert.Equal(t, "Done", in.Status)
	assert.True(t, strings.HasPrefix(in.Reference, "IN/"), in.Reference)
	assert.Equal(t, int64(50), h.productQuantity(t, p.ID.String()))

	out := h.createOperation(t, map[string]any{
		"type":               "OUT",
		"source_location_id": stock.ID,
		"order_lines": []map[string]any{
			{"product_id": p.ID, "quantity": 80, "unit_price": "2.50"},
		},
	})
	assert.Equal(t, "OUT", out.Type)
	require.Len(t, out.OrderLines, 1)
	assert.Equal(t, "200", out.OrderLines[0].Subtotal.String())
	assert.Equal(t, int64(0), h.productQuantity(t, p.ID.String()), "delivery clamps at zero")
}

func TestOperationHandler_CreateValidation(t *testing.T) {
	h := newAPIHarness(t)
	p := h.createProduct(t, "SKU-1")
	stock := h.createLocation(t, "WH/Stock", "Internal")

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{
			name:   "missing type",
			body:   map[string]any{"product_id": p.ID, "quantity": 1, "dest_location_id": stock.ID},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidType,
		},
		{
			name:   "unknown type",
			body:   map[string]any{"type": "MOVE", "product_id": p.ID, "quantity": 1},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidType,
		},
		{
			name:   "lowercase type",
			body:   map[string]any{"type": "in", "product_id": p.ID, "quantity": 1, "dest_location_id": stock.ID},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidType,
		},
		{
			name:   "receipt without destination",
			body:   map[string]any{"type": "IN", "product_id": p.ID, "quantity": 1},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeMissingDestination,
		},
		{
			name:   "delivery without source",
			body:   map[string]any{"type": "OUT", "product_id": p.ID, "quantity": 1},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeMissingSource,
		},
		{
			name:   "transfer without locations",
			body:   map[string]any{"type": "INT", "product_id": p.ID, "quantity": 1, "source_location_id": stock.ID},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeMissingLocations,
		},
		{
			name:   "non-positive receipt quantity",
			body:   map[string]any{"type": "IN", "product_id": p.ID, "quantity": 0, "dest_location_id": stock.ID},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidLineItem,
		},
		{
			name:   "unknown location",
			body:   map[string]any{"type": "IN", "product_id": p.ID, "quantity": 1, "dest_location_id": uuid.New()},
			status: http.StatusNotFound,
			code:   dto.ErrCodeNotFound,
		},
		{
			name:   "malformed json",
			body:   `{"type": "IN",`,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeBadRequest,
		},
		{
			name:   "bad schedule date",
			body:   map[string]any{"type": "IN", "product_id": p.ID, "quantity": 1, "dest_location_id": stock.ID, "schedule_date": "tomorrow"},
			status: http.StatusBadRequest,
			code:   dto.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.PerformJSON(t, h.engine, http.MethodPost, "/api/v1/operations", tt.body)
			testutil.AssertErrorResponse(t, w, tt.status, tt.code)
		})
	}

	assert.Zero(t, h.productQuantity(t, p.ID.String()), "rejected operations leave stock untouched")
}

func TestOperationHandler_ListAndGet(t *testing.T) {
	h := newAPIHarness(t)
	p := h.createProduct(t, "SKU-1")
	stock := h.createLocation(t, "WH/Stock", "Internal")

	for i := 0; i < 3; i++ {
		h.createOperation(t, map[string]any{
			"type": "IN", "product_id": p.ID, "quantity": 1, "dest_location_id": stock.ID,
		})
	}
	adj := h.createOperation(t, map[string]any{
		"type": "ADJ", "product_id": p.ID, "quantity": 7, "dest_location_id": stock.ID,
	})

	w := testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations?type=IN&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutil.JSONBody(t, w)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, float64(2), meta["total_pages"])
	assert.Len(t, body["data"], 2)

	w = testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations/"+adj.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := testutil.DecodeData[inventoryapp.OperationResponse](t, w)
	assert.Equal(t, "ADJ", got.Type)
	require.NotNil(t, got.Product)
	assert.Equal(t, "SKU-1", got.Product.SKU)

	w = testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations?status=Lost", nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations?page_size=500", nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)

	w = testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations/"+uuid.NewString(), nil)
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations/not-a-uuid", nil)
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
}

func TestOperationHandler_UpdateStatus(t *testing.T) {
	h := newAPIHarness(t)
	p := h.createProduct(t, "SKU-1")
	stock := h.createLocation(t, "WH/Stock", "Internal")
	op := h.createOperation(t, map[string]any{
		"type": "IN", "product_id": p.ID, "quantity": 4, "dest_location_id": stock.ID,
	})

	path := "/api/v1/operations/" + op.ID.String() + "/status"

	w := testutil.PerformJSON(t, h.engine, http.MethodPut, path, map[string]any{"status": "Ready"})
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeInvalidState)

	w = testutil.PerformJSON(t, h.engine, http.MethodPut, path, map[string]any{})
	testutil.AssertErrorResponse(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	details := testutil.JSONBody(t, w)["error"].(map[string]any)["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "status", details[0].(map[string]any)["field"])

	assert.Equal(t, int64(4), h.productQuantity(t, p.ID.String()))
}

func TestOperationHandler_Slip(t *testing.T) {
	h := newAPIHarness(t)
	p := h.createProduct(t, "SKU-1")
	stock := h.createLocation(t, "WH/Stock", "Internal")
	op := h.createOperation(t, map[string]any{
		"type": "IN", "product_id": p.ID, "quantity": 4, "dest_location_id": stock.ID,
		"reference": "IN/0001",
	})

	w := testutil.PerformJSON(t, h.engine, http.MethodGet, "/api/v1/operations/"+op.ID.String()+"/slip", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="IN-0001.pdf"`)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestSlipFilename(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "OUT-123.pdf", slipFilename(&inventoryapp.OperationResponse{Reference: "OUT/123"}))
	assert.Equal(t, "ADJ_fix.pdf", slipFilename(&inventoryapp.OperationResponse{Reference: "ADJ fix"}))
	assert.Equal(t, id.String()+".pdf", slipFilename(&inventoryapp.OperationResponse{ID: id}))
}

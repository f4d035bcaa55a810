package printing

import (
	"bytes"
	"testing"
	"time"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlipRenderer_RenderSlip(t *testing.T) {
	schedule := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	op := &appinv.OperationResponse{
		ID:             uuid.New(),
		Type:           "OUT",
		Status:         "Done",
		Reference:      "OUT/1709283600000",
		Responsible:    "Dock team",
		ScheduleDate:   &schedule,
		SourceLocation: &appinv.LocationSummary{Name: "WH/Stock"},
		DestLocation:   &appinv.LocationSummary{Name: "Customers"},
		OrderLines: []appinv.OrderLineResponse{
			{
				Quantity:  3,
				UnitPrice: decimal.RequireFromString("2.50"),
				Subtotal:  decimal.RequireFromString("7.50"),
				Product:   &appinv.ProductSummary{SKU: "BOLT", Name: "Bolt"},
			},
			{ProductID: uuid.New(), Quantity: 1},
		},
		TotalQuantity: 4,
		TotalValue:    decimal.RequireFromString("7.50"),
	}

	doc, err := NewSlipRenderer("Acme").RenderSlip(op)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
}

func TestSlipRenderer_LegacyAndEmpty(t *testing.T) {
	qty := int64(5)
	legacy := &appinv.OperationResponse{
		Type:      "IN",
		Status:    "Done",
		Reference: "IN/1",
		Product:   &appinv.ProductSummary{SKU: "NUT", Name: "Nut"},
		Quantity:  &qty,
	}
	doc, err := NewSlipRenderer("").RenderSlip(legacy)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)

	header := &appinv.OperationResponse{Type: "XYZ", Status: "Draft", Reference: "XYZ/1"}
	doc, err = NewSlipRenderer("").RenderSlip(header)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)

	_, err = NewSlipRenderer("").RenderSlip(nil)
	assert.Error(t, err)
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, "x", nonEmpty("", "x"))
	assert.Equal(t, "y", nonEmpty("y", "x"))
	assert.Equal(t, "", locationName(nil))
}

package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewProduct(t *testing.T) {
	t.Run("creates product with defaults", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Steel Bolt")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Steel Bolt", product.Name)
		assert.Equal(t, DefaultUOM, product.UOM)
		assert.Equal(t, int64(0), product.Quantity)
		assert.True(t, product.UnitCost.IsZero())
		assert.NotEmpty(t, product.ID)
	})

	t.Run("trims sku", func(t *testing.T) {
		product, err := NewProduct("  SKU-002 ", "Nut")
		require.NoError(t, err)
		assert.Equal(t, "SKU-002", product.SKU)
	})

	t.Run("fails with empty sku", func(t *testing.T) {
		_, err := NewProduct("", "Nut")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with blank name", func(t *testing.T) {
		_, err := NewProduct("SKU-003", "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestProduct_Update(t *testing.T) {
	t.Run("updates only provided fields", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Steel Bolt")
		require.NoError(t, err)
		product.Quantity = 12

		cost := decimal.NewFromFloat(3.456)
		err = product.Update(ProductDetails{
			Name:     strPtr("Zinc Bolt"),
			Category: strPtr("Hardware"),
			UnitCost: &cost,
		})
		require.NoError(t, err)

		assert.Equal(t, "Zinc Bolt", product.Name)
		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Hardware", product.Category)
		assert.Equal(t, "3.46", product.UnitCost.StringFixed(2))
		assert.Equal(t, int64(12), product.Quantity)
	})

	t.Run("empty uom falls back to default", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Steel Bolt")
		require.NoError(t, err)
		require.NoError(t, product.Update(ProductDetails{UOM: strPtr("kg")}))
		assert.Equal(t, "kg", product.UOM)

		require.NoError(t, product.Update(ProductDetails{UOM: strPtr("")}))
		assert.Equal(t, DefaultUOM, product.UOM)
	})

	t.Run("rejects negative unit cost", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Steel Bolt")
		require.NoError(t, err)
		cost := decimal.NewFromInt(-1)
		assert.Error(t, product.Update(ProductDetails{UnitCost: &cost}))
	})
}

func TestProduct_AdjustQuantity(t *testing.T) {
	product, err := NewProduct("SKU-001", "Steel Bolt")
	require.NoError(t, err)

	assert.False(t, product.AdjustQuantity(5))
	assert.Equal(t, int64(5), product.Quantity)

	assert.False(t, product.AdjustQuantity(-2))
	assert.Equal(t, int64(3), product.Quantity)

	assert.True(t, product.AdjustQuantity(-10))
	assert.Equal(t, int64(0), product.Quantity)
}

func TestProduct_IsLowStock(t *testing.T) {
	product, err := NewProduct("SKU-001", "Steel Bolt")
	require.NoError(t, err)

	product.Quantity = 9
	assert.True(t, product.IsLowStock(10))
	product.Quantity = 10
	assert.False(t, product.IsLowStock(10))
}

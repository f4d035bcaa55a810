package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestOperationRequest_Normalize(t *testing.T) {
	src, dst := uuid.New(), uuid.New()
	productA, productB := uuid.New(), uuid.New()

	t.Run("order lines", func(t *testing.T) {
		op := OperationRequest{
			Type:             OperationTypeInternal,
			SourceLocationID: &src,
			DestLocationID:   &dst,
			OrderLines: []LineItem{
				{ProductID: productA, Quantity: 2},
				{ProductID: productB, Quantity: 1},
				{ProductID: productA, Quantity: 4},
			},
		}.Normalize()

		assert.Equal(t, LineFormOrderLines, op.Form)
		assert.Len(t, op.Lines, 3)
		assert.Equal(t, []uuid.UUID{productA, productB}, op.ProductIDs())
		assert.Equal(t, []uuid.UUID{src, dst}, op.LocationIDs())
	})

	t.Run("order lines win over the single pair", func(t *testing.T) {
		op := OperationRequest{
			Type:       OperationTypeReceipt,
			ProductID:  &productB,
			Quantity:   int64Ptr(9),
			OrderLines: []LineItem{{ProductID: productA, Quantity: 2}},
		}.Normalize()

		assert.Equal(t, LineFormOrderLines, op.Form)
		require.Len(t, op.Lines, 1)
		assert.Equal(t, productA, op.Lines[0].ProductID)
	})

	t.Run("single pair becomes one line", func(t *testing.T) {
		op := OperationRequest{
			Type:           OperationTypeReceipt,
			DestLocationID: &dst,
			ProductID:      &productA,
			Quantity:       int64Ptr(5),
		}.Normalize()

		assert.Equal(t, LineFormSingle, op.Form)
		require.Len(t, op.Lines, 1)
		assert.Equal(t, productA, op.Lines[0].ProductID)
		assert.Equal(t, int64(5), op.Lines[0].Quantity)
	})

	t.Run("half a pair is kept so validation can reject it", func(t *testing.T) {
		op := OperationRequest{Type: OperationTypeReceipt, ProductID: &productA}.Normalize()

		assert.Equal(t, LineFormSingle, op.Form)
		require.Len(t, op.Lines, 1)
		assert.Equal(t, int64(-1), op.Lines[0].Quantity)
	})

	t.Run("nothing supplied is header only", func(t *testing.T) {
		op := OperationRequest{Type: OperationTypeReceipt, DestLocationID: &dst}.Normalize()
		assert.Equal(t, LineFormNone, op.Form)
		assert.Empty(t, op.Lines)
	})

	t.Run("nil uuid locations are treated as absent", func(t *testing.T) {
		zero := uuid.Nil
		op := OperationRequest{Type: OperationTypeDelivery, SourceLocationID: &zero}.Normalize()
		assert.Nil(t, op.SourceLocationID)
		assert.Empty(t, op.LocationIDs())
	})

	t.Run("same source and destination listed once", func(t *testing.T) {
		op := OperationRequest{Type: OperationTypeInternal, SourceLocationID: &src, DestLocationID: &src}.Normalize()
		assert.Equal(t, []uuid.UUID{src}, op.LocationIDs())
	})
}

package inventory

import (
	"context"
	"fmt"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LineEffect is one line of an operation as seen by the ledger
type LineEffect struct {
	Type             inventory.OperationType
	ProductID        uuid.UUID
	SourceLocationID *uuid.UUID
	DestLocationID   *uuid.UUID
	// Quantity is the moved amount, or the counted target for adjustments
	Quantity int64
}

// QuantChange records a quant before and after a line was applied
type QuantChange struct {
	LocationID uuid.UUID
	Before     int64
	After      int64
}

// LedgerResult is the state left behind by one applied line
type LedgerResult struct {
	ProductID     uuid.UUID
	ProductBefore int64
	ProductAfter  int64
	Quants        []QuantChange
	// Clamped is true when any quantity was floored at zero
	Clamped bool
}

// QuantityLedger keeps per-location quants and the product aggregate in step.
// It always runs inside the caller's transaction.
type QuantityLedger struct {
	logger *zap.Logger
}

// NewQuantityLedger creates a new QuantityLedger
func NewQuantityLedger(logger *zap.Logger) *QuantityLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuantityLedger{logger: logger}
}

// ApplyLine mutates the product aggregate and the affected quants for one line.
// Product and quant rows are locked for the rest of the transaction.
func (l *QuantityLedger) ApplyLine(ctx context.Context, repos TransactionalRepositories, e LineEffect) (*LedgerResult, error) {
	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, e.ProductID)
	if err != nil {
		return nil, err
	}

	result := &LedgerResult{
		ProductID:     product.ID,
		ProductBefore: product.Quantity,
	}

	var productDelta int64
	switch e.Type {
	case inventory.OperationTypeReceipt:
		if err := l.moveQuant(ctx, repos, result, e.ProductID, e.DestLocationID, e.Quantity); err != nil {
			return nil, err
		}
		productDelta = e.Quantity

	case inventory.OperationTypeDelivery:
		if err := l.moveQuant(ctx, repos, result, e.ProductID, e.SourceLocationID, -e.Quantity); err != nil {
			return nil, err
		}
		productDelta = -e.Quantity

	case inventory.OperationTypeInternal:
		if e.SourceLocationID != nil && e.DestLocationID != nil && *e.SourceLocationID == *e.DestLocationID {
			// moving stock onto itself: lock and record the quant untouched
			if err := l.moveQuant(ctx, repos, result, e.ProductID, e.DestLocationID, 0); err != nil {
				return nil, err
			}
			break
		}
		if err := l.moveQuant(ctx, repos, result, e.ProductID, e.SourceLocationID, -e.Quantity); err != nil {
			return nil, err
		}
		if err := l.moveQuant(ctx, repos, result, e.ProductID, e.DestLocationID, e.Quantity); err != nil {
			return nil, err
		}

	case inventory.OperationTypeAdjustment:
		if e.DestLocationID == nil {
			return nil, inventory.ErrMissingDestination
		}
		quant, err := repos.QuantRepo().FindOrCreateForUpdate(ctx, e.ProductID, *e.DestLocationID)
		if err != nil {
			return nil, err
		}
		productDelta = e.Quantity - quant.Quantity
		if err := l.applyToQuant(ctx, repos, result, quant, productDelta); err != nil {
			return nil, err
		}

	default:
		return nil, inventory.NewInvalidTypeError(e.Type)
	}

	if productDelta != 0 {
		if product.AdjustQuantity(productDelta) {
			result.Clamped = true
		}
		if err := repos.ProductRepo().UpdateQuantity(ctx, product.ID, product.Quantity); err != nil {
			return nil, fmt.Errorf("failed to update product quantity: %w", err)
		}
	}
	result.ProductAfter = product.Quantity

	if result.Clamped {
		l.logger.Info("stock quantity floored at zero",
			zap.String("type", e.Type.String()),
			zap.String("product_id", e.ProductID.String()),
			zap.Int64("requested", e.Quantity),
		)
	}
	l.logger.Debug("ledger line applied",
		zap.String("type", e.Type.String()),
		zap.String("product_id", e.ProductID.String()),
		zap.Int64("product_before", result.ProductBefore),
		zap.Int64("product_after", result.ProductAfter),
	)
	return result, nil
}

func (l *QuantityLedger) moveQuant(
	ctx context.Context,
	repos TransactionalRepositories,
	result *LedgerResult,
	productID uuid.UUID,
	locationID *uuid.UUID,
	delta int64,
) error {
	if locationID == nil {
		return fmt.Errorf("location required for %+d on product %s", delta, productID)
	}
	quant, err := repos.QuantRepo().FindOrCreateForUpdate(ctx, productID, *locationID)
	if err != nil {
		return err
	}
	return l.applyToQuant(ctx, repos, result, quant, delta)
}

func (l *QuantityLedger) applyToQuant(
	ctx context.Context,
	repos TransactionalRepositories,
	result *LedgerResult,
	quant *inventory.StockQuant,
	delta int64,
) error {
	before := quant.Quantity
	if quant.ApplyDelta(delta) {
		result.Clamped = true
	}
	if quant.Quantity != before {
		if err := repos.QuantRepo().UpdateQuantity(ctx, quant.ID, quant.Quantity); err != nil {
			return fmt.Errorf("failed to update stock quant: %w", err)
		}
	}
	result.Quants = append(result.Quants, QuantChange{
		LocationID: quant.LocationID,
		Before:     before,
		After:      quant.Quantity,
	})
	return nil
}

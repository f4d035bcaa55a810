package inventory

import (
	"context"
	"fmt"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/google/uuid"
)

// ProductFinder resolves products by id
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error)
}

// LocationFinder resolves locations by id
type LocationFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Location, error)
}

// OperationValidator checks an operation before any stock is touched.
// It never mutates state.
type OperationValidator struct {
	products  ProductFinder
	locations LocationFinder
}

// NewOperationValidator creates a validator backed by read-only lookups
func NewOperationValidator(products ProductFinder, locations LocationFinder) *OperationValidator {
	return &OperationValidator{
		products:  products,
		locations: locations,
	}
}

// Validate runs the shape checks and then confirms every referenced
// location and product exists.
func (v *OperationValidator) Validate(ctx context.Context, op NormalizedOperation) error {
	if err := ValidateShape(op); err != nil {
		return err
	}
	if err := v.checkLocations(ctx, op); err != nil {
		return err
	}
	return v.checkProducts(ctx, op)
}

// ValidateShape checks type, required locations and line quantities
func ValidateShape(op NormalizedOperation) error {
	if !op.Type.IsValid() {
		return NewInvalidTypeError(op.Type)
	}

	switch op.Type {
	case OperationTypeReceipt, OperationTypeAdjustment:
		if op.DestLocationID == nil {
			return ErrMissingDestination
		}
	case OperationTypeDelivery:
		if op.SourceLocationID == nil {
			return ErrMissingSource
		}
	case OperationTypeInternal:
		if op.SourceLocationID == nil || op.DestLocationID == nil {
			return ErrMissingLocations
		}
	}

	for i, line := range op.Lines {
		if line.ProductID == uuid.Nil {
			return NewInvalidLineItemError(i, line.ProductID, "product is required")
		}
		if line.UnitPrice.IsNegative() {
			return NewInvalidLineItemError(i, line.ProductID, "unit price cannot be negative")
		}
		if op.Type.AllowsZeroQuantity() {
			if line.Quantity < 0 {
				return NewInvalidLineItemError(i, line.ProductID, "target quantity cannot be negative")
			}
		} else if line.Quantity <= 0 {
			return NewInvalidLineItemError(i, line.ProductID, "quantity must be greater than zero")
		}
	}
	return nil
}

func (v *OperationValidator) checkLocations(ctx context.Context, op NormalizedOperation) error {
	ids := op.LocationIDs()
	if len(ids) == 0 {
		return nil
	}
	found, err := v.locations.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to look up locations: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(found))
	for _, l := range found {
		known[l.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return NewNotFoundError("Location", id)
		}
	}
	return nil
}

func (v *OperationValidator) checkProducts(ctx context.Context, op NormalizedOperation) error {
	ids := op.ProductIDs()
	if len(ids) == 0 {
		return nil
	}
	found, err := v.products.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to look up products: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	for i, line := range op.Lines {
		if _, ok := known[line.ProductID]; !ok {
			return NewInvalidLineItemError(i, line.ProductID, "product does not exist")
		}
	}
	return nil
}

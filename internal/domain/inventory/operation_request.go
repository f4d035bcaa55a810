package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product/quantity pair to apply
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
}

// LineForm records which request shape the lines came from
type LineForm int

const (
	// LineFormNone means no lines were supplied; the move is header-only
	LineFormNone LineForm = iota
	// LineFormSingle is the top-level product_id/quantity pair
	LineFormSingle
	// LineFormOrderLines is the order_lines array
	LineFormOrderLines
)

// OperationRequest is an incoming stock operation. Exactly one of OrderLines
// or the ProductID/Quantity pair is honoured; OrderLines wins when both are set.
type OperationRequest struct {
	Type             OperationType
	SourceLocationID *uuid.UUID
	DestLocationID   *uuid.UUID
	OrderLines       []LineItem
	ProductID        *uuid.UUID
	Quantity         *int64
	Metadata         MoveMetadata
}

// NormalizedOperation is an operation reduced to a single canonical line list
type NormalizedOperation struct {
	Type             OperationType
	SourceLocationID *uuid.UUID
	DestLocationID   *uuid.UUID
	Form             LineForm
	Lines            []LineItem
	Metadata         MoveMetadata
}

// Normalize collapses both request shapes into one line list
func (r OperationRequest) Normalize() NormalizedOperation {
	op := NormalizedOperation{
		Type:             r.Type,
		SourceLocationID: nilIfZero(r.SourceLocationID),
		DestLocationID:   nilIfZero(r.DestLocationID),
		Metadata:         r.Metadata,
	}

	switch {
	case len(r.OrderLines) > 0:
		op.Form = LineFormOrderLines
		op.Lines = make([]LineItem, len(r.OrderLines))
		copy(op.Lines, r.OrderLines)
	case r.ProductID != nil || r.Quantity != nil:
		op.Form = LineFormSingle
		item := LineItem{UnitPrice: decimal.Zero}
		if r.ProductID != nil {
			item.ProductID = *r.ProductID
		}
		if r.Quantity != nil {
			item.Quantity = *r.Quantity
		} else {
			item.Quantity = -1
		}
		op.Lines = []LineItem{item}
	default:
		op.Form = LineFormNone
	}
	return op
}

// ProductIDs returns the distinct product ids referenced by the lines
func (o NormalizedOperation) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Lines))
	ids := make([]uuid.UUID, 0, len(o.Lines))
	for _, l := range o.Lines {
		if l.ProductID == uuid.Nil {
			continue
		}
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// LocationIDs returns the locations the operation touches
func (o NormalizedOperation) LocationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if o.SourceLocationID != nil {
		ids = append(ids, *o.SourceLocationID)
	}
	if o.DestLocationID != nil && (o.SourceLocationID == nil || *o.DestLocationID != *o.SourceLocationID) {
		ids = append(ids, *o.DestLocationID)
	}
	return ids
}

func nilIfZero(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}

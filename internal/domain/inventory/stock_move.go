package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType is the kind of stock operation
type OperationType string

const (
	// OperationTypeReceipt brings stock into a destination location
	OperationTypeReceipt OperationType = "IN"
	// OperationTypeDelivery takes stock out of a source location
	OperationTypeDelivery OperationType = "OUT"
	// OperationTypeInternal moves stock between two locations
	OperationTypeInternal OperationType = "INT"
	// OperationTypeAdjustment sets the counted quantity at a destination location
	OperationTypeAdjustment OperationType = "ADJ"
)

// String returns the string representation of OperationType
func (t OperationType) String() string {
	return string(t)
}

// IsValid returns true if the operation type is valid
func (t OperationType) IsValid() bool {
	switch t {
	case OperationTypeReceipt,
		OperationTypeDelivery,
		OperationTypeInternal,
		OperationTypeAdjustment:
		return true
	}
	return false
}

// AllowsZeroQuantity is true for adjustments, whose quantity is a target count
func (t OperationType) AllowsZeroQuantity() bool {
	return t == OperationTypeAdjustment
}

// OperationStatus is the workflow status of a stock move
type OperationStatus string

const (
	OperationStatusDraft     OperationStatus = "Draft"
	OperationStatusWaiting   OperationStatus = "Waiting"
	OperationStatusReady     OperationStatus = "Ready"
	OperationStatusDone      OperationStatus = "Done"
	OperationStatusCancelled OperationStatus = "Cancelled"
)

// String returns the string representation of OperationStatus
func (s OperationStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known OperationStatus
func (s OperationStatus) IsValid() bool {
	switch s {
	case OperationStatusDraft, OperationStatusWaiting, OperationStatusReady,
		OperationStatusDone, OperationStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for Done and Cancelled
func (s OperationStatus) IsTerminal() bool {
	return s == OperationStatusDone || s == OperationStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OperationStatus) CanTransitionTo(target OperationStatus) bool {
	switch s {
	case OperationStatusDraft:
		return target == OperationStatusWaiting || target == OperationStatusReady ||
			target == OperationStatusDone || target == OperationStatusCancelled
	case OperationStatusWaiting:
		return target == OperationStatusReady || target == OperationStatusDone ||
			target == OperationStatusCancelled
	case OperationStatusReady:
		return target == OperationStatusDone || target == OperationStatusCancelled
	}
	return false
}

// MoveMetadata is descriptive information carried by a move with no stock effect
type MoveMetadata struct {
	Reference       string
	Responsible     string
	ScheduleDate    *time.Time
	DeliveryAddress string
	ContactPerson   string
}

// StockMove is the header of a stock operation
type StockMove struct {
	shared.BaseEntity
	Type             OperationType
	Status           OperationStatus
	SourceLocationID *uuid.UUID
	DestLocationID   *uuid.UUID
	// ProductID and Quantity are set only for single-product operations
	ProductID *uuid.UUID
	Quantity  *int64
	MoveMetadata
	OrderLines []OrderLine

	// Populated only when loaded with details
	Product        *catalog.Product
	SourceLocation *Location
	DestLocation   *Location
}

// DefaultReference builds the reference used when none is supplied
func DefaultReference(t OperationType, at time.Time) string {
	return fmt.Sprintf("%s/%d", t, at.UnixMilli())
}

// NewStockMove creates a Draft move header from a normalized operation
func NewStockMove(op NormalizedOperation) *StockMove {
	move := &StockMove{
		BaseEntity:       shared.NewBaseEntity(),
		Type:             op.Type,
		Status:           OperationStatusDraft,
		SourceLocationID: op.SourceLocationID,
		DestLocationID:   op.DestLocationID,
		MoveMetadata:     op.Metadata,
	}
	if strings.TrimSpace(move.Reference) == "" {
		move.Reference = DefaultReference(op.Type, move.CreatedAt)
	}
	if op.Form == LineFormSingle && len(op.Lines) == 1 {
		productID := op.Lines[0].ProductID
		quantity := op.Lines[0].Quantity
		move.ProductID = &productID
		move.Quantity = &quantity
	}
	return move
}

// AddOrderLine attaches a new line built from item and returns it
func (m *StockMove) AddOrderLine(item LineItem) *OrderLine {
	line := NewOrderLine(m.ID, item)
	m.OrderLines = append(m.OrderLines, *line)
	return line
}

// TransitionTo moves the header to target if the workflow allows it.
// It has no effect on stock levels.
func (m *StockMove) TransitionTo(target OperationStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput,
			"Invalid status: must be one of Draft, Waiting, Ready, Done, Cancelled")
	}
	if !m.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot change status from %s to %s", m.Status, target))
	}
	m.Status = target
	m.UpdatedAt = time.Now()
	return nil
}

// Complete marks a freshly applied move as Done
func (m *StockMove) Complete() error {
	return m.TransitionTo(OperationStatusDone)
}

// TotalQuantity sums the quantities of all lines, or the single quantity
func (m *StockMove) TotalQuantity() int64 {
	if len(m.OrderLines) == 0 {
		if m.Quantity != nil {
			return *m.Quantity
		}
		return 0
	}
	var total int64
	for _, l := range m.OrderLines {
		total += l.Quantity
	}
	return total
}

// TotalValue sums the line subtotals
func (m *StockMove) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.OrderLines {
		total = total.Add(l.Subtotal)
	}
	return total
}

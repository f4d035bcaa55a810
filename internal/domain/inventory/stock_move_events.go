package inventory

import (
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeStockMove is the aggregate type carried by stock move events
const AggregateTypeStockMove = "StockMove"

// Event type constants
const (
	EventTypeStockOperationCompleted = "StockOperationCompleted"
	EventTypeStockMoveStatusChanged  = "StockMoveStatusChanged"
)

// StockOperationCompletedEvent is raised after an operation has been applied and committed
type StockOperationCompletedEvent struct {
	shared.BaseDomainEvent
	StockMoveID  uuid.UUID     `json:"stock_move_id"`
	Type         OperationType `json:"type"`
	Reference    string        `json:"reference"`
	ProductIDs   []uuid.UUID   `json:"product_ids"`
	LineCount    int           `json:"line_count"`
	ClampedLines int           `json:"clamped_lines"`
}

// NewStockOperationCompletedEvent creates a new StockOperationCompletedEvent
func NewStockOperationCompletedEvent(move *StockMove, op NormalizedOperation, clampedLines int) *StockOperationCompletedEvent {
	return &StockOperationCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockOperationCompleted, AggregateTypeStockMove, move.ID),
		StockMoveID:     move.ID,
		Type:            move.Type,
		Reference:       move.Reference,
		ProductIDs:      op.ProductIDs(),
		LineCount:       len(op.Lines),
		ClampedLines:    clampedLines,
	}
}

// StockMoveStatusChangedEvent is raised when the workflow status of a move changes
type StockMoveStatusChangedEvent struct {
	shared.BaseDomainEvent
	StockMoveID uuid.UUID       `json:"stock_move_id"`
	Type        OperationType   `json:"type"`
	FromStatus  OperationStatus `json:"from_status"`
	ToStatus    OperationStatus `json:"to_status"`
}

// NewStockMoveStatusChangedEvent creates a new StockMoveStatusChangedEvent
func NewStockMoveStatusChangedEvent(move *StockMove, from OperationStatus) *StockMoveStatusChangedEvent {
	return &StockMoveStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoveStatusChanged, AggregateTypeStockMove, move.ID),
		StockMoveID:     move.ID,
		Type:            move.Type,
		FromStatus:      from,
		ToStatus:        move.Status,
	}
}

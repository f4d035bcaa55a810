package inventory

import (
	"fmt"

	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// Error codes raised while validating or applying a stock operation
const (
	CodeInvalidType        = "INVALID_TYPE"
	CodeMissingDestination = "MISSING_DESTINATION"
	CodeMissingSource      = "MISSING_SOURCE"
	CodeMissingLocations   = "MISSING_LOCATIONS"
	CodeInvalidLineItem    = "INVALID_LINE_ITEM"
)

var (
	ErrInvalidType        = shared.NewDomainError(CodeInvalidType, "Invalid operation type")
	ErrMissingDestination = shared.NewDomainError(CodeMissingDestination, "Destination location is required")
	ErrMissingSource      = shared.NewDomainError(CodeMissingSource, "Source location is required")
	ErrMissingLocations   = shared.NewDomainError(CodeMissingLocations, "Source and destination locations are required")
	ErrInvalidLineItem    = shared.NewDomainError(CodeInvalidLineItem, "Invalid line item")
)

// NewInvalidTypeError reports an unrecognized operation type
func NewInvalidTypeError(t OperationType) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidType,
		fmt.Sprintf("Invalid operation type %q: must be one of IN, OUT, INT, ADJ", string(t)))
}

// NewInvalidLineItemError names the offending line item
func NewInvalidLineItemError(index int, productID uuid.UUID, reason string) *shared.DomainError {
	if productID == uuid.Nil {
		return shared.NewDomainError(CodeInvalidLineItem,
			fmt.Sprintf("Line item %d: %s", index+1, reason))
	}
	return shared.NewDomainError(CodeInvalidLineItem,
		fmt.Sprintf("Line item %d (product %s): %s", index+1, productID, reason))
}

// NewNotFoundError reports a missing record of the given kind
func NewNotFoundError(kind string, id uuid.UUID) *shared.DomainError {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("%s %s not found", kind, id))
}

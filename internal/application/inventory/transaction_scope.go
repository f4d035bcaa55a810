package inventory

import (
	"context"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a stock
// operation mutates. Everything done through the repositories handed to fn is
// committed or rolled back as one unit.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to one transaction
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// QuantRepo returns the stock quant repository scoped to the current transaction
	QuantRepo() inventory.StockQuantRepository
	// MoveRepo returns the stock move repository scoped to the current transaction
	MoveRepo() inventory.StockMoveRepository
}

// NoOpTransactionScope runs fn against plain repositories without a transaction.
// Used in tests and by callers that manage transactions themselves.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	quantRepo   inventory.StockQuantRepository
	moveRepo    inventory.StockMoveRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	quantRepo inventory.StockQuantRepository,
	moveRepo inventory.StockMoveRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		quantRepo:   quantRepo,
		moveRepo:    moveRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// QuantRepo returns the stock quant repository.
func (s *NoOpTransactionScope) QuantRepo() inventory.StockQuantRepository {
	return s.quantRepo
}

// MoveRepo returns the stock move repository.
func (s *NoOpTransactionScope) MoveRepo() inventory.StockMoveRepository {
	return s.moveRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OperationMetrics receives counters about applied and rejected operations
type OperationMetrics interface {
	RecordOperation(ctx context.Context, opType string, lines, clampedLines int)
	RecordRejected(ctx context.Context, opType, code string)
}

type noopOperationMetrics struct{}

func (noopOperationMetrics) RecordOperation(context.Context, string, int, int) {}
func (noopOperationMetrics) RecordRejected(context.Context, string, string)    {}

// OperationSlipRenderer renders a printable document for one operation
type OperationSlipRenderer interface {
	RenderSlip(op *OperationResponse) ([]byte, error)
}

// ErrOperationNotFound is returned when a stock move does not exist
var ErrOperationNotFound = shared.NewDomainError(shared.CodeNotFound, "Operation not found")

// OperationService creates stock operations and manages their workflow status
type OperationService struct {
	txScope        TransactionScope
	validator      *inventory.OperationValidator
	ledger         *QuantityLedger
	moveRepo       inventory.StockMoveRepository
	eventPublisher shared.EventPublisher
	slipRenderer   OperationSlipRenderer
	metrics        OperationMetrics
	logger         *zap.Logger
}

// OperationServiceOption configures an OperationService
type OperationServiceOption func(*OperationService)

// WithEventPublisher sets the publisher used after commit
func WithEventPublisher(p shared.EventPublisher) OperationServiceOption {
	return func(s *OperationService) {
		s.eventPublisher = p
	}
}

// WithSlipRenderer enables RenderSlip
func WithSlipRenderer(r OperationSlipRenderer) OperationServiceOption {
	return func(s *OperationService) {
		s.slipRenderer = r
	}
}

// WithOperationMetrics sets the metrics sink
func WithOperationMetrics(m OperationMetrics) OperationServiceOption {
	return func(s *OperationService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) OperationServiceOption {
	return func(s *OperationService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewOperationService creates a new OperationService
func NewOperationService(
	txScope TransactionScope,
	validator *inventory.OperationValidator,
	moveRepo inventory.StockMoveRepository,
	opts ...OperationServiceOption,
) *OperationService {
	s := &OperationService{
		txScope:   txScope,
		validator: validator,
		moveRepo:  moveRepo,
		metrics:   noopOperationMetrics{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ledger = NewQuantityLedger(s.logger)
	return s
}

// CreateOperation validates the request, applies every line to the ledger and
// marks the move Done, all in one transaction. On any failure nothing persists.
func (s *OperationService) CreateOperation(ctx context.Context, req inventory.OperationRequest) (*OperationResponse, error) {
	op := req.Normalize()
	ctx, span := telemetry.StartServiceSpan(ctx, "stock_operation", "create",
		telemetry.SpanAttrOperationType, op.Type.String(),
		telemetry.SpanAttrLineCount, len(op.Lines),
	)
	defer span.End()

	if err := s.validator.Validate(ctx, op); err != nil {
		telemetry.RecordError(span, err)
		s.recordRejected(ctx, op.Type, err)
		return nil, err
	}

	var (
		move    *inventory.StockMove
		clamped int
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		clamped = 0
		move = inventory.NewStockMove(op)
		if err := repos.MoveRepo().Create(ctx, move); err != nil {
			return fmt.Errorf("failed to create stock move: %w", err)
		}

		if err := lockProducts(ctx, repos, op); err != nil {
			return err
		}

		for i, item := range op.Lines {
			if op.Form == inventory.LineFormOrderLines {
				line := move.AddOrderLine(item)
				if err := repos.MoveRepo().CreateOrderLine(ctx, line); err != nil {
					return fmt.Errorf("failed to create order line %d: %w", i+1, err)
				}
			}

			res, err := s.ledger.ApplyLine(ctx, repos, LineEffect{
				Type:             op.Type,
				ProductID:        item.ProductID,
				SourceLocationID: op.SourceLocationID,
				DestLocationID:   op.DestLocationID,
				Quantity:         item.Quantity,
			})
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return inventory.NewInvalidLineItemError(i, item.ProductID, "product does not exist")
				}
				return fmt.Errorf("failed to apply line %d: %w", i+1, err)
			}
			if res.Clamped {
				clamped++
			}
		}

		if err := move.Complete(); err != nil {
			return err
		}
		return repos.MoveRepo().UpdateStatus(ctx, move.ID, move.Status)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.recordRejected(ctx, op.Type, err)
		if _, ok := shared.AsDomainError(err); ok {
			return nil, err
		}
		s.logger.Error("stock operation rolled back",
			zap.String("type", op.Type.String()),
			zap.Error(err),
		)
		return nil, shared.WrapDomainError(shared.CodeTransactionFailure,
			"Failed to create operation: "+err.Error(), err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrStockMoveID, move.ID.String(),
		telemetry.SpanAttrReference, move.Reference,
		telemetry.SpanAttrClampedLines, clamped,
	)
	s.metrics.RecordOperation(ctx, op.Type.String(), len(op.Lines), clamped)
	s.publish(ctx, inventory.NewStockOperationCompletedEvent(move, op, clamped))
	s.logger.Info("stock operation applied",
		zap.String("stock_move_id", move.ID.String()),
		zap.String("type", op.Type.String()),
		zap.String("reference", move.Reference),
		zap.Int("lines", len(op.Lines)),
		zap.Int("clamped_lines", clamped),
	)

	// the operation is committed at this point, so a failed reload falls back
	// to the in-memory move without its product and location summaries
	detail, err := s.moveRepo.FindDetailByID(ctx, move.ID)
	if err != nil {
		s.logger.Warn("failed to reload completed operation",
			zap.String("stock_move_id", move.ID.String()),
			zap.Error(err),
		)
		detail = move
	}
	resp := ToOperationResponse(detail)
	return &resp, nil
}

// GetOperation returns one operation with its details
func (s *OperationService) GetOperation(ctx context.Context, id uuid.UUID) (*OperationResponse, error) {
	move, err := s.moveRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}
	resp := ToOperationResponse(move)
	return &resp, nil
}

// ListOperations lists operations newest first, optionally filtered by type and status
func (s *OperationService) ListOperations(ctx context.Context, filter OperationListFilter) ([]OperationResponse, int64, error) {
	mf, err := toMoveFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.moveRepo.Count(ctx, mf)
	if err != nil {
		return nil, 0, err
	}
	moves, err := s.moveRepo.FindAll(ctx, mf)
	if err != nil {
		return nil, 0, err
	}
	return ToOperationResponses(moves), total, nil
}

// UpdateOperationStatus changes the workflow status of a move.
// Stock levels are never touched here.
func (s *OperationService) UpdateOperationStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OperationResponse, error) {
	move, err := s.moveRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}

	from := move.Status
	if err := move.TransitionTo(inventory.OperationStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.moveRepo.UpdateStatus(ctx, move.ID, move.Status); err != nil {
		return nil, err
	}
	s.publish(ctx, inventory.NewStockMoveStatusChangedEvent(move, from))

	return s.GetOperation(ctx, id)
}

// RenderSlip renders the printable slip of an operation
func (s *OperationService) RenderSlip(ctx context.Context, id uuid.UUID) (*OperationResponse, []byte, error) {
	if s.slipRenderer == nil {
		return nil, nil, errors.New("operation slips are not configured")
	}
	op, err := s.GetOperation(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.slipRenderer.RenderSlip(op)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render operation slip: %w", err)
	}
	return op, doc, nil
}

// RecentActivity returns the latest operations with their details
func (s *OperationService) RecentActivity(ctx context.Context, limit int) ([]OperationResponse, error) {
	if limit <= 0 {
		limit = 5
	}
	moves, err := s.moveRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToOperationResponses(moves), nil
}

func (s *OperationService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

func (s *OperationService) recordRejected(ctx context.Context, t inventory.OperationType, err error) {
	code := shared.CodeTransactionFailure
	if de, ok := shared.AsDomainError(err); ok {
		code = de.Code
	}
	s.metrics.RecordRejected(ctx, t.String(), code)
}

// lockProducts takes row locks on every product of the operation in id order
// so that concurrent multi-line operations acquire them in the same sequence.
func lockProducts(ctx context.Context, repos TransactionalRepositories, op inventory.NormalizedOperation) error {
	ids := op.ProductIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		if _, err := repos.ProductRepo().FindByIDForUpdate(ctx, id); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				for i, line := range op.Lines {
					if line.ProductID == id {
						return inventory.NewInvalidLineItemError(i, id, "product does not exist")
					}
				}
			}
			return err
		}
	}
	return nil
}

func toMoveFilter(f OperationListFilter) (inventory.MoveFilter, error) {
	mf := inventory.MoveFilter{Page: f.Page, PageSize: f.PageSize}
	if mf.Page < 1 {
		mf.Page = 1
	}
	if mf.PageSize < 1 {
		mf.PageSize = 20
	}
	if f.Type != "" {
		t := inventory.OperationType(f.Type)
		if !t.IsValid() {
			return mf, inventory.NewInvalidTypeError(t)
		}
		mf.Type = &t
	}
	if f.Status != "" {
		st := inventory.OperationStatus(f.Status)
		if !st.IsValid() {
			return mf, shared.NewDomainError(shared.CodeInvalidInput, "Invalid status filter")
		}
		mf.Status = &st
	}
	return mf, nil
}

package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	appinv "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/erp/inventory/internal/infrastructure/persistence"
	"github.com/erp/inventory/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type recordingMetrics struct {
	mu       sync.Mutex
	applied  []string
	clamped  int
	rejected []string
}

func (m *recordingMetrics) RecordOperation(_ context.Context, opType string, _, clampedLines int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = append(m.applied, opType)
	m.clamped += clampedLines
}

func (m *recordingMetrics) RecordRejected(_ context.Context, opType, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, opType+":"+code)
}

type harness struct {
	db        *gorm.DB
	products  *persistence.GormProductRepository
	locations *persistence.GormLocationRepository
	quants    *persistence.GormStockQuantRepository
	moves     *persistence.GormStockMoveRepository
	events    *testutil.RecordingPublisher
	metrics   *recordingMetrics
	svc       *appinv.OperationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	h := &harness{
		db:        db,
		products:  persistence.NewGormProductRepository(db),
		locations: persistence.NewGormLocationRepository(db),
		quants:    persistence.NewGormStockQuantRepository(db),
		moves:     persistence.NewGormStockMoveRepository(db),
		events:    &testutil.RecordingPublisher{},
		metrics:   &recordingMetrics{},
	}
	h.svc = h.newService(persistence.NewGormTransactionScope(db), t)
	return h
}

func (h *harness) newService(scope appinv.TransactionScope, t *testing.T) *appinv.OperationService {
	return appinv.NewOperationService(
		scope,
		inventory.NewOperationValidator(h.products, h.locations),
		h.moves,
		appinv.WithEventPublisher(h.events),
		appinv.WithOperationMetrics(h.metrics),
		appinv.WithLogger(zaptest.NewLogger(t)),
	)
}

func (h *harness) product(t *testing.T, sku string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, "Product "+sku)
	require.NoError(t, err)
	require.NoError(t, h.products.Save(context.Background(), p))
	return p
}

func (h *harness) location(t *testing.T, name string, lt inventory.LocationType) *inventory.Location {
	t.Helper()
	l, err := inventory.NewLocation(name, lt, nil)
	require.NoError(t, err)
	require.NoError(t, h.locations.Save(context.Background(), l))
	return l
}

func (h *harness) productQty(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	p, err := h.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func (h *harness) quantQty(t *testing.T, productID, locationID uuid.UUID) int64 {
	t.Helper()
	q, err := h.quants.Find(context.Background(), productID, locationID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0
	}
	require.NoError(t, err)
	return q.Quantity
}

func (h *harness) single(t *testing.T, opType inventory.OperationType, p *catalog.Product, qty int64, src, dst *inventory.Location) *appinv.OperationResponse {
	t.Helper()
	req := inventory.OperationRequest{Type: opType, ProductID: &p.ID, Quantity: &qty}
	if src != nil {
		req.SourceLocationID = &src.ID
	}
	if dst != nil {
		req.DestLocationID = &dst.ID
	}
	resp, err := h.svc.CreateOperation(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestCreateOperation_Receipt(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)

	resp := h.single(t, inventory.OperationTypeReceipt, p, 5, nil, l1)

	assert.Equal(t, "Done", resp.Status)
	assert.Equal(t, "IN", resp.Type)
	assert.Equal(t, int64(5), h.productQty(t, p.ID))
	assert.Equal(t, int64(5), h.quantQty(t, p.ID, l1.ID))
	require.NotNil(t, resp.Product)
	assert.Equal(t, "P-1", resp.Product.SKU)
	require.NotNil(t, resp.DestLocation)
	assert.Equal(t, "L1", resp.DestLocation.Name)
	assert.NotEmpty(t, resp.Reference, "a default reference is generated")
	assert.Equal(t, []string{inventory.EventTypeStockOperationCompleted}, h.events.Types())
	assert.Equal(t, []string{"IN"}, h.metrics.applied)
}

func TestCreateOperation_DeliveryClampsAtZero(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	vendor := h.location(t, "Vendor", inventory.LocationTypeVendor)
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	h.single(t, inventory.OperationTypeReceipt, p, 3, vendor, l1)

	resp := h.single(t, inventory.OperationTypeDelivery, p, 5, l1, nil)

	assert.Equal(t, "Done", resp.Status)
	assert.Equal(t, int64(0), h.quantQty(t, p.ID, l1.ID))
	assert.Equal(t, int64(0), h.productQty(t, p.ID))
	assert.Equal(t, 1, h.metrics.clamped)
}

func TestCreateOperation_DeliveryWithinStock(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	h.single(t, inventory.OperationTypeReceipt, p, 10, nil, l1)

	h.single(t, inventory.OperationTypeDelivery, p, 4, l1, nil)

	assert.Equal(t, int64(6), h.quantQty(t, p.ID, l1.ID))
	assert.Equal(t, int64(6), h.productQty(t, p.ID))
	assert.Zero(t, h.metrics.clamped)
}

func TestCreateOperation_InternalTransferKeepsAggregate(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	l2 := h.location(t, "L2", inventory.LocationTypeInternal)
	h.single(t, inventory.OperationTypeReceipt, p, 8, nil, l1)

	h.single(t, inventory.OperationTypeInternal, p, 3, l1, l2)

	assert.Equal(t, int64(5), h.quantQty(t, p.ID, l1.ID))
	assert.Equal(t, int64(3), h.quantQty(t, p.ID, l2.ID))
	assert.Equal(t, int64(8), h.productQty(t, p.ID))
}

func TestCreateOperation_InternalTransferSameLocation(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	h.single(t, inventory.OperationTypeReceipt, p, 4, nil, l1)

	for _, qty := range []int64{3, 4, 10} {
		h.single(t, inventory.OperationTypeInternal, p, qty, l1, l1)

		assert.Equal(t, int64(4), h.quantQty(t, p.ID, l1.ID), "transfer of %d", qty)
		assert.Equal(t, int64(4), h.productQty(t, p.ID), "transfer of %d", qty)
	}
	assert.Zero(t, h.metrics.clamped, "a transfer onto itself never floors stock")
}

func TestCreateOperation_AdjustmentSetsTarget(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	l2 := h.location(t, "L2", inventory.LocationTypeInternal)
	h.single(t, inventory.OperationTypeReceipt, p, 7, nil, l1)
	h.single(t, inventory.OperationTypeReceipt, p, 2, nil, l2)

	h.single(t, inventory.OperationTypeAdjustment, p, 4, nil, l1)

	assert.Equal(t, int64(4), h.quantQty(t, p.ID, l1.ID))
	assert.Equal(t, int64(6), h.productQty(t, p.ID), "aggregate drops by 3")

	t.Run("adjust to zero", func(t *testing.T) {
		h.single(t, inventory.OperationTypeAdjustment, p, 0, nil, l2)
		assert.Equal(t, int64(0), h.quantQty(t, p.ID, l2.ID))
		assert.Equal(t, int64(4), h.productQty(t, p.ID))
	})

	t.Run("adjust a location with no quant yet", func(t *testing.T) {
		l3 := h.location(t, "L3", inventory.LocationTypeInternal)
		h.single(t, inventory.OperationTypeAdjustment, p, 9, nil, l3)
		assert.Equal(t, int64(9), h.quantQty(t, p.ID, l3.ID))
		assert.Equal(t, int64(13), h.productQty(t, p.ID))
	})
}

func TestCreateOperation_OrderLines(t *testing.T) {
	h := newHarness(t)
	a := h.product(t, "A")
	b := h.product(t, "B")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)

	resp, err := h.svc.CreateOperation(context.Background(), inventory.OperationRequest{
		Type:           inventory.OperationTypeReceipt,
		DestLocationID: &l1.ID,
		OrderLines: []inventory.LineItem{
			{ProductID: a.ID, Quantity: 2, UnitPrice: decimal.NewFromFloat(1.5)},
			{ProductID: b.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(2)},
			{ProductID: a.ID, Quantity: 1, UnitPrice: decimal.Zero},
		},
		Metadata: inventory.MoveMetadata{Reference: "PO-42"},
	})
	require.NoError(t, err)

	assert.Equal(t, "PO-42", resp.Reference)
	assert.Nil(t, resp.ProductID, "multi-line moves carry no header product")
	require.Len(t, resp.OrderLines, 3)
	assert.Equal(t, int64(6), resp.TotalQuantity)
	assert.True(t, decimal.NewFromInt(9).Equal(resp.TotalValue))
	assert.Equal(t, int64(3), h.productQty(t, a.ID))
	assert.Equal(t, int64(3), h.productQty(t, b.ID))
	assert.Equal(t, int64(3), h.quantQty(t, a.ID, l1.ID))
}

func TestCreateOperation_ValidationErrorsHaveNoSideEffects(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	ctx := context.Background()
	five := int64(5)
	zero := int64(0)
	missing := uuid.New()

	cases := []struct {
		name string
		req  inventory.OperationRequest
		code string
	}{
		{"unknown type", inventory.OperationRequest{Type: "XYZ", ProductID: &p.ID, Quantity: &five, DestLocationID: &l1.ID}, inventory.CodeInvalidType},
		{"receipt without destination", inventory.OperationRequest{Type: inventory.OperationTypeReceipt, ProductID: &p.ID, Quantity: &five}, inventory.CodeMissingDestination},
		{"delivery without source", inventory.OperationRequest{Type: inventory.OperationTypeDelivery, ProductID: &p.ID, Quantity: &five}, inventory.CodeMissingSource},
		{"internal without both", inventory.OperationRequest{Type: inventory.OperationTypeInternal, ProductID: &p.ID, Quantity: &five, SourceLocationID: &l1.ID}, inventory.CodeMissingLocations},
		{"zero receipt quantity", inventory.OperationRequest{Type: inventory.OperationTypeReceipt, ProductID: &p.ID, Quantity: &zero, DestLocationID: &l1.ID}, inventory.CodeInvalidLineItem},
		{"unknown product", inventory.OperationRequest{Type: inventory.OperationTypeReceipt, ProductID: &missing, Quantity: &five, DestLocationID: &l1.ID}, inventory.CodeInvalidLineItem},
		{"unknown location", inventory.OperationRequest{Type: inventory.OperationTypeReceipt, ProductID: &p.ID, Quantity: &five, DestLocationID: &missing}, shared.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.svc.CreateOperation(ctx, tc.req)
			requireCode(t, err, tc.code)
		})
	}

	count, err := h.moves.Count(ctx, inventory.MoveFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, h.productQty(t, p.ID))
	assert.Empty(t, h.events.Types())
	assert.Len(t, h.metrics.rejected, len(cases))
}

// failingScope wraps a real scope and fails the nth quant write
type failingScope struct {
	inner  appinv.TransactionScope
	failOn int
}

func (s *failingScope) Execute(ctx context.Context, fn func(appinv.TransactionalRepositories) error) error {
	return s.inner.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		return fn(&failingRepos{TransactionalRepositories: repos, failOn: s.failOn})
	})
}

type failingRepos struct {
	appinv.TransactionalRepositories
	failOn int
	calls  int
}

func (r *failingRepos) QuantRepo() inventory.StockQuantRepository {
	return &failingQuants{StockQuantRepository: r.TransactionalRepositories.QuantRepo(), repos: r}
}

type failingQuants struct {
	inventory.StockQuantRepository
	repos *failingRepos
}

func (q *failingQuants) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int64) error {
	q.repos.calls++
	if q.repos.calls == q.repos.failOn {
		return errors.New("disk full")
	}
	return q.StockQuantRepository.UpdateQuantity(ctx, id, quantity)
}

func TestCreateOperation_RollsBackEveryLineOnFailure(t *testing.T) {
	h := newHarness(t)
	a := h.product(t, "A")
	b := h.product(t, "B")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	svc := h.newService(&failingScope{inner: persistence.NewGormTransactionScope(h.db), failOn: 2}, t)

	_, err := svc.CreateOperation(context.Background(), inventory.OperationRequest{
		Type:           inventory.OperationTypeReceipt,
		DestLocationID: &l1.ID,
		OrderLines: []inventory.LineItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 3},
		},
	})

	requireCode(t, err, shared.CodeTransactionFailure)
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, h.productQty(t, a.ID))
	assert.Zero(t, h.productQty(t, b.ID))
	assert.Zero(t, h.quantQty(t, a.ID, l1.ID))
	count, err := h.moves.Count(context.Background(), inventory.MoveFilter{})
	require.NoError(t, err)
	assert.Zero(t, count, "no move header survives a rollback")
	assert.Empty(t, h.events.Types())
}

func TestCreateOperation_ResubmissionAppliesTwice(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)

	first := h.single(t, inventory.OperationTypeReceipt, p, 5, nil, l1)
	second := h.single(t, inventory.OperationTypeReceipt, p, 5, nil, l1)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(10), h.productQty(t, p.ID))
}

// unreadableMoves commits normally but cannot read operations back
type unreadableMoves struct {
	inventory.StockMoveRepository
}

func (unreadableMoves) FindDetailByID(context.Context, uuid.UUID) (*inventory.StockMove, error) {
	return nil, errors.New("connection reset by peer")
}

func TestCreateOperation_ReloadFailureStillReportsAppliedMove(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	svc := appinv.NewOperationService(
		persistence.NewGormTransactionScope(h.db),
		inventory.NewOperationValidator(h.products, h.locations),
		unreadableMoves{h.moves},
		appinv.WithLogger(zaptest.NewLogger(t)),
	)
	qty := int64(6)

	resp, err := svc.CreateOperation(context.Background(), inventory.OperationRequest{
		Type: inventory.OperationTypeReceipt, ProductID: &p.ID, Quantity: &qty, DestLocationID: &l1.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "IN", resp.Type)
	assert.Equal(t, "Done", resp.Status)
	assert.Equal(t, int64(6), resp.TotalQuantity)
	assert.Nil(t, resp.Product)
	assert.Equal(t, int64(6), h.productQty(t, p.ID))

	stored, err := h.moves.FindDetailByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Reference, stored.Reference)
}

func TestUpdateOperationStatus_IsHeaderOnly(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	ctx := context.Background()

	// A Draft header created outside the engine, as a planned receipt would be
	planned := inventory.NewStockMove(inventory.OperationRequest{
		Type:           inventory.OperationTypeReceipt,
		DestLocationID: &l1.ID,
		ProductID:      &p.ID,
		Quantity:       ptr(int64(5)),
	}.Normalize())
	require.NoError(t, h.moves.Create(ctx, planned))

	for _, next := range []string{"Waiting", "Ready", "Done"} {
		resp, err := h.svc.UpdateOperationStatus(ctx, planned.ID, appinv.UpdateStatusRequest{Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, resp.Status)
	}
	assert.Zero(t, h.productQty(t, p.ID), "status changes never touch stock")
	assert.Zero(t, h.quantQty(t, p.ID, l1.ID))

	t.Run("terminal states reject further changes", func(t *testing.T) {
		_, err := h.svc.UpdateOperationStatus(ctx, planned.ID, appinv.UpdateStatusRequest{Status: "Cancelled"})
		requireCode(t, err, shared.CodeInvalidState)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := h.svc.UpdateOperationStatus(ctx, planned.ID, appinv.UpdateStatusRequest{Status: "Shipped"})
		requireCode(t, err, shared.CodeInvalidInput)
	})

	t.Run("missing operation", func(t *testing.T) {
		_, err := h.svc.UpdateOperationStatus(ctx, uuid.New(), appinv.UpdateStatusRequest{Status: "Done"})
		assert.ErrorIs(t, err, appinv.ErrOperationNotFound)
	})
}

// Operations created through the engine are Done immediately, so the
// Draft/Waiting/Ready pipeline only applies to headers planned elsewhere.
func TestCreateOperation_LifecycleIsImmediateDone(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)

	resp := h.single(t, inventory.OperationTypeReceipt, p, 1, nil, l1)
	require.Equal(t, "Done", resp.Status)

	_, err := h.svc.UpdateOperationStatus(context.Background(), resp.ID, appinv.UpdateStatusRequest{Status: "Ready"})
	requireCode(t, err, shared.CodeInvalidState)
}

func TestListOperationsAndRecentActivity(t *testing.T) {
	h := newHarness(t)
	p := h.product(t, "P-1")
	l1 := h.location(t, "L1", inventory.LocationTypeInternal)
	ctx := context.Background()

	h.single(t, inventory.OperationTypeReceipt, p, 5, nil, l1)
	h.single(t, inventory.OperationTypeDelivery, p, 1, l1, nil)
	last := h.single(t, inventory.OperationTypeAdjustment, p, 2, nil, l1)

	all, total, err := h.svc.ListOperations(ctx, appinv.OperationListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	outs, total, err := h.svc.ListOperations(ctx, appinv.OperationListFilter{Type: "OUT", Status: "Done"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, outs, 1)
	assert.Equal(t, "OUT", outs[0].Type)

	_, _, err = h.svc.ListOperations(ctx, appinv.OperationListFilter{Type: "BAD"})
	requireCode(t, err, inventory.CodeInvalidType)
	_, _, err = h.svc.ListOperations(ctx, appinv.OperationListFilter{Status: "Lost"})
	requireCode(t, err, shared.CodeInvalidInput)

	recent, err := h.svc.RecentActivity(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, last.ID, recent[0].ID)

	got, err := h.svc.GetOperation(ctx, last.ID)
	require.NoError(t, err)
	assert.Equal(t, "ADJ", got.Type)
	_, err = h.svc.GetOperation(ctx, uuid.New())
	assert.ErrorIs(t, err, appinv.ErrOperationNotFound)
}

func ptr[T any](v T) *T { return &v }

type stubSlipRenderer struct {
	rendered []string
	err      error
}

func (r *stubSlipRenderer) RenderSlip(op *appinv.OperationResponse) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.rendered = append(r.rendered, op.Reference)
	return []byte("%PDF-" + op.Reference), nil
}

func TestRenderSlip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	p := h.product(t, "SLIP")
	stock := h.location(t, "WH/Stock", inventory.LocationTypeInternal)
	created := h.single(t, inventory.OperationTypeReceipt, p, 3, nil, stock)

	t.Run("not configured", func(t *testing.T) {
		_, _, err := h.svc.RenderSlip(ctx, created.ID)
		assert.ErrorContains(t, err, "not configured")
	})

	renderer := &stubSlipRenderer{}
	svc := appinv.NewOperationService(
		persistence.NewGormTransactionScope(h.db),
		inventory.NewOperationValidator(h.products, h.locations),
		h.moves,
		appinv.WithSlipRenderer(renderer),
	)

	t.Run("renders the stored snapshot", func(t *testing.T) {
		op, doc, err := svc.RenderSlip(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Reference, op.Reference)
		assert.Equal(t, "%PDF-"+created.Reference, string(doc))
		assert.Equal(t, []string{created.Reference}, renderer.rendered)
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, _, err := svc.RenderSlip(ctx, uuid.New())
		requireCode(t, err, shared.CodeNotFound)
	})

	t.Run("renderer failure", func(t *testing.T) {
		renderer.err = errors.New("font missing")
		_, _, err := svc.RenderSlip(ctx, created.ID)
		assert.ErrorContains(t, err, "font missing")
	})
}

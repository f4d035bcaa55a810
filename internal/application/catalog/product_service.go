package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold flags products with fewer units than this
const DefaultLowStockThreshold int64 = 10

// ErrProductNotFound is returned when a product does not exist
var ErrProductNotFound = shared.NewDomainError(shared.CodeNotFound, "Product not found")

// ProductService handles product catalog operations
type ProductService struct {
	productRepo       catalog.ProductRepository
	eventPublisher    shared.EventPublisher
	lowStockThreshold int64
	logger            *zap.Logger
}

// NewProductService creates a new ProductService.
// The publisher may be nil.
func NewProductService(
	productRepo catalog.ProductRepository,
	eventPublisher shared.EventPublisher,
	lowStockThreshold int64,
	logger *zap.Logger,
) *ProductService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:       productRepo,
		eventPublisher:    eventPublisher,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Create creates a new product with zero stock
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.ensureUniqueSKU(ctx, req.SKU); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name)
	if err != nil {
		return nil, err
	}
	details := catalog.ProductDetails{UnitCost: req.UnitCost}
	if req.Category != "" {
		details.Category = &req.Category
	}
	if req.UOM != "" {
		details.UOM = &req.UOM
	}
	if req.Description != "" {
		details.Description = &req.Description
	}
	if err := product.Update(details); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, catalog.NewProductCreatedEvent(product))

	resp := ToProductResponse(product, s.lowStockThreshold)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, s.lowStockThreshold)
	return &resp, nil
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = strings.TrimSpace(filter.Search)
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}
	if filter.LowStock {
		f.Filters["quantity_below"] = s.lowStockThreshold
	}

	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products, s.lowStockThreshold), total, nil
}

// Update updates catalog attributes of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SKU != nil && strings.TrimSpace(*req.SKU) != product.SKU {
		if err := s.ensureUniqueSKU(ctx, *req.SKU); err != nil {
			return nil, err
		}
	}

	err = product.Update(catalog.ProductDetails{
		SKU:         req.SKU,
		Name:        req.Name,
		Category:    req.Category,
		UOM:         req.UOM,
		Description: req.Description,
		UnitCost:    req.UnitCost,
	})
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product, s.lowStockThreshold)
	return &resp, nil
}

// Delete removes a product that has never been moved
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	used, err := s.productRepo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewDomainError(shared.CodeInvalidState, "Product has stock operations and cannot be deleted")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, catalog.NewProductDeletedEvent(id))
	return nil
}

func (s *ProductService) find(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ensureUniqueSKU(ctx context.Context, sku string) error {
	exists, err := s.productRepo.ExistsBySKU(ctx, strings.TrimSpace(sku))
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Product with this SKU already exists")
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}

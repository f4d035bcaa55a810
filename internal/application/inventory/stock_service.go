package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// StockWorkbookWriter renders stock rows into a spreadsheet document
type StockWorkbookWriter interface {
	WriteStock(rows []StockQuantResponse) ([]byte, error)
}

// StockService answers stock level queries
type StockService struct {
	quantRepo   inventory.StockQuantRepository
	productRepo catalog.ProductRepository
	workbook    StockWorkbookWriter
}

// NewStockService creates a new StockService
func NewStockService(
	quantRepo inventory.StockQuantRepository,
	productRepo catalog.ProductRepository,
	workbook StockWorkbookWriter,
) *StockService {
	return &StockService{
		quantRepo:   quantRepo,
		productRepo: productRepo,
		workbook:    workbook,
	}
}

// GetProductStock returns a product's quantity per location and in total
func (s *StockService) GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStockResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
		}
		return nil, err
	}

	quants, err := s.quantRepo.FindAll(ctx, inventory.QuantFilter{ProductID: &productID})
	if err != nil {
		return nil, err
	}

	resp := &ProductStockResponse{
		ProductID:  productID,
		ByLocation: make([]LocationStock, 0, len(quants)),
	}
	for _, q := range quants {
		name := ""
		if q.Location != nil {
			name = q.Location.Name
		}
		resp.TotalQuantity += q.Quantity
		resp.ByLocation = append(resp.ByLocation, LocationStock{
			LocationID:   q.LocationID,
			LocationName: name,
			Quantity:     q.Quantity,
		})
	}
	return resp, nil
}

// ListStock returns quants filtered by location and/or product, ordered by product
func (s *StockService) ListStock(ctx context.Context, filter StockFilter) ([]StockQuantResponse, error) {
	quants, err := s.quantRepo.FindAll(ctx, inventory.QuantFilter{
		ProductID:  filter.ProductID,
		LocationID: filter.LocationID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]StockQuantResponse, len(quants))
	for i := range quants {
		out[i] = ToStockQuantResponse(&quants[i])
	}
	return out, nil
}

// ExportStock renders the filtered stock listing as a spreadsheet
func (s *StockService) ExportStock(ctx context.Context, filter StockFilter) ([]byte, error) {
	if s.workbook == nil {
		return nil, errors.New("stock export is not configured")
	}
	rows, err := s.ListStock(ctx, filter)
	if err != nil {
		return nil, err
	}
	data, err := s.workbook.WriteStock(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to render stock workbook: %w", err)
	}
	return data, nil
}

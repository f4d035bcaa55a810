package inventory

import (
	"context"
	"errors"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrWarehouseNotFound is returned when a warehouse does not exist
var ErrWarehouseNotFound = shared.NewDomainError(shared.CodeNotFound, "Warehouse not found")

// WarehouseService manages warehouses
type WarehouseService struct {
	repo inventory.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(repo inventory.WarehouseRepository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// Create adds a warehouse
func (s *WarehouseService) Create(ctx context.Context, req WarehouseRequest) (*WarehouseResponse, error) {
	wh, err := inventory.NewWarehouse(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, wh); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(wh)
	return &resp, nil
}

// GetByID returns one warehouse
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	wh, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(wh)
	return &resp, nil
}

// List returns warehouses ordered by name
func (s *WarehouseService) List(ctx context.Context, page, pageSize int) ([]WarehouseResponse, int64, error) {
	filter := pageFilter(page, pageSize, "name", "asc")
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]WarehouseResponse, len(items))
	for i := range items {
		out[i] = ToWarehouseResponse(&items[i])
	}
	return out, total, nil
}

// Update changes a warehouse
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req WarehouseRequest) (*WarehouseResponse, error) {
	wh, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := wh.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, wh); err != nil {
		return nil, err
	}
	resp := ToWarehouseResponse(wh)
	return &resp, nil
}

// Delete removes a warehouse; its locations are detached
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *WarehouseService) find(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	wh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	return wh, nil
}

func pageFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}
	f.OrderBy = orderBy
	f.OrderDir = orderDir
	return f
}

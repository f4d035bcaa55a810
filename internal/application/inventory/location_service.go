package inventory

import (
	"context"
	"errors"

	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrLocationNotFound is returned when a location does not exist
var ErrLocationNotFound = shared.NewDomainError(shared.CodeNotFound, "Location not found")

// LocationService manages stock locations
type LocationService struct {
	repo          inventory.LocationRepository
	warehouseRepo inventory.WarehouseRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(repo inventory.LocationRepository, warehouseRepo inventory.WarehouseRepository) *LocationService {
	return &LocationService{
		repo:          repo,
		warehouseRepo: warehouseRepo,
	}
}

// Create adds a location
func (s *LocationService) Create(ctx context.Context, req LocationRequest) (*LocationResponse, error) {
	locType, err := inventory.ParseLocationType(req.Type)
	if err != nil {
		return nil, err
	}
	if err := s.checkWarehouse(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	loc, err := inventory.NewLocation(req.Name, locType, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, loc.ID)
}

// GetByID returns one location with its warehouse
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	loc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(loc)
	return &resp, nil
}

// List returns locations, optionally by warehouse or type
func (s *LocationService) List(ctx context.Context, filter LocationListFilter) ([]LocationResponse, int64, error) {
	f := pageFilter(filter.Page, filter.PageSize, "name", "asc")
	if filter.WarehouseID != nil {
		f.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.Type != "" {
		t, err := inventory.ParseLocationType(filter.Type)
		if err != nil {
			return nil, 0, err
		}
		f.Filters["type"] = t.String()
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]LocationResponse, len(items))
	for i := range items {
		out[i] = ToLocationResponse(&items[i])
	}
	return out, total, nil
}

// Update changes a location
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req LocationRequest) (*LocationResponse, error) {
	loc, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	var locType inventory.LocationType
	if req.Type != "" {
		if locType, err = inventory.ParseLocationType(req.Type); err != nil {
			return nil, err
		}
	}
	if err := s.checkWarehouse(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := loc.Update(req.Name, locType, req.WarehouseID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete removes a location that holds no stock history
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	used, err := s.repo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return shared.NewDomainError(shared.CodeInvalidState, "Location has stock or operations and cannot be deleted")
	}
	return s.repo.Delete(ctx, id)
}

func (s *LocationService) find(ctx context.Context, id uuid.UUID) (*inventory.Location, error) {
	loc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

func (s *LocationService) checkWarehouse(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := s.warehouseRepo.FindByID(ctx, *id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrWarehouseNotFound
		}
		return err
	}
	return nil
}

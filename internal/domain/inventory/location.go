package inventory

import (
	"strings"
	"time"

	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocationType classifies a location
type LocationType string

const (
	LocationTypeView          LocationType = "View"
	LocationTypeInternal      LocationType = "Internal"
	LocationTypeCustomer      LocationType = "Customer"
	LocationTypeVendor        LocationType = "Vendor"
	LocationTypeInventoryLoss LocationType = "Inventory Loss"
)

// String returns the string representation of LocationType
func (t LocationType) String() string {
	return string(t)
}

// IsValid returns true if the location type is valid
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeView,
		LocationTypeInternal,
		LocationTypeCustomer,
		LocationTypeVendor,
		LocationTypeInventoryLoss:
		return true
	}
	return false
}

// ParseLocationType accepts any casing and "_"/"-" separators,
// e.g. "inventory_loss" resolves to LocationTypeInventoryLoss.
// An empty value yields LocationTypeInternal.
func ParseLocationType(s string) (LocationType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LocationTypeInternal, nil
	}
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	t := LocationType(cases.Title(language.English).String(strings.Join(strings.Fields(s), " ")))
	if !t.IsValid() {
		return "", shared.NewDomainError(shared.CodeInvalidInput,
			"Invalid location type: must be one of View, Internal, Customer, Vendor, Inventory Loss")
	}
	return t, nil
}

// Location is a place stock can sit in, optionally inside a warehouse
type Location struct {
	shared.BaseEntity
	Name        string
	Type        LocationType
	WarehouseID *uuid.UUID

	// Warehouse is populated only when loaded with details
	Warehouse *Warehouse
}

// NewLocation creates a new location
func NewLocation(name string, locType LocationType, warehouseID *uuid.UUID) (*Location, error) {
	if err := validateName("Location", name); err != nil {
		return nil, err
	}
	if locType == "" {
		locType = LocationTypeInternal
	}
	if !locType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid location type")
	}
	return &Location{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Type:        locType,
		WarehouseID: warehouseID,
	}, nil
}

// Update changes the location attributes
func (l *Location) Update(name string, locType LocationType, warehouseID *uuid.UUID) error {
	if err := validateName("Location", name); err != nil {
		return err
	}
	if locType == "" {
		locType = l.Type
	}
	if !locType.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, "Invalid location type")
	}
	l.Name = strings.TrimSpace(name)
	l.Type = locType
	l.WarehouseID = warehouseID
	l.UpdatedAt = time.Now()
	return nil
}

package inventory

import (
	"strings"
	"time"

	"github.com/erp/inventory/internal/domain/shared"
)

// Warehouse groups locations under a physical site
type Warehouse struct {
	shared.BaseEntity
	Name    string
	Address string
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name, address string) (*Warehouse, error) {
	if err := validateName("Warehouse", name); err != nil {
		return nil, err
	}
	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Address:    address,
	}, nil
}

// Update changes the warehouse name and address
func (w *Warehouse) Update(name, address string) error {
	if err := validateName("Warehouse", name); err != nil {
		return err
	}
	w.Name = strings.TrimSpace(name)
	w.Address = address
	w.UpdatedAt = time.Now()
	return nil
}

func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, kind+" name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, kind+" name cannot exceed 200 characters")
	}
	return nil
}

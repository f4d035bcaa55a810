package inventory

import (
	"strings"
	"time"

	"github.com/erp/inventory/internal/domain/catalog"
	"github.com/erp/inventory/internal/domain/inventory"
	"github.com/erp/inventory/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one entry of order_lines
type OrderLineRequest struct {
	ProductID uuid.UUID        `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOperationRequest is the request body for creating a stock operation.
// Either order_lines or the product_id/quantity pair may be supplied.
type CreateOperationRequest struct {
	Type             string             `json:"type"`
	ProductID        *uuid.UUID         `json:"product_id"`
	Quantity         *int64             `json:"quantity"`
	OrderLines       []OrderLineRequest `json:"order_lines"`
	SourceLocationID *uuid.UUID         `json:"source_location_id"`
	DestLocationID   *uuid.UUID         `json:"dest_location_id"`
	Reference        string             `json:"reference" binding:"max=100"`
	Responsible      string             `json:"responsible" binding:"max=100"`
	ScheduleDate     string             `json:"schedule_date"`
	DeliveryAddress  string             `json:"delivery_address"`
	ContactPerson    string             `json:"contact_person" binding:"max=100"`
}

// ToDomain converts the request into a domain operation request
func (r CreateOperationRequest) ToDomain() (inventory.OperationRequest, error) {
	req := inventory.OperationRequest{
		Type:             inventory.OperationType(r.Type),
		SourceLocationID: r.SourceLocationID,
		DestLocationID:   r.DestLocationID,
		ProductID:        r.ProductID,
		Quantity:         r.Quantity,
		Metadata: inventory.MoveMetadata{
			Reference:       strings.TrimSpace(r.Reference),
			Responsible:     r.Responsible,
			DeliveryAddress: r.DeliveryAddress,
			ContactPerson:   r.ContactPerson,
		},
	}

	if r.ScheduleDate != "" {
		when, err := parseScheduleDate(r.ScheduleDate)
		if err != nil {
			return inventory.OperationRequest{}, err
		}
		req.Metadata.ScheduleDate = &when
	}

	if len(r.OrderLines) > 0 {
		req.OrderLines = make([]inventory.LineItem, len(r.OrderLines))
		for i, l := range r.OrderLines {
			price := decimal.Zero
			if l.UnitPrice != nil {
				price = *l.UnitPrice
			}
			req.OrderLines[i] = inventory.LineItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: price,
			}
		}
	}
	return req, nil
}

func parseScheduleDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, shared.NewDomainError(shared.CodeInvalidInput,
		"Invalid schedule_date: expected RFC3339 or YYYY-MM-DD")
}

// UpdateStatusRequest is the request body for changing a move's workflow status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OperationListFilter represents filter options for the operation list
type OperationListFilter struct {
	Type     string `form:"type"`
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductSummary is the embedded product of an operation or quant
type ProductSummary struct {
	ID       uuid.UUID       `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	UOM      string          `json:"uom"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// LocationSummary is the embedded location of an operation or quant
type LocationSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// OperationResponse is the composed snapshot of a stock move
type OperationResponse struct {
	ID               uuid.UUID           `json:"id"`
	Type             string              `json:"type"`
	Status           string              `json:"status"`
	Reference        string              `json:"reference"`
	Responsible      string              `json:"responsible,omitempty"`
	ScheduleDate     *time.Time          `json:"schedule_date,omitempty"`
	DeliveryAddress  string              `json:"delivery_address,omitempty"`
	ContactPerson    string              `json:"contact_person,omitempty"`
	ProductID        *uuid.UUID          `json:"product_id,omitempty"`
	Quantity         *int64              `json:"quantity,omitempty"`
	SourceLocationID *uuid.UUID          `json:"source_location_id,omitempty"`
	DestLocationID   *uuid.UUID          `json:"dest_location_id,omitempty"`
	Product          *ProductSummary     `json:"product,omitempty"`
	SourceLocation   *LocationSummary    `json:"source_location,omitempty"`
	DestLocation     *LocationSummary    `json:"dest_location,omitempty"`
	OrderLines       []OrderLineResponse `json:"order_lines"`
	TotalQuantity    int64               `json:"total_quantity"`
	TotalValue       decimal.Decimal     `json:"total_value"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ToProductSummary converts a product to its summary, nil-safe
func ToProductSummary(p *catalog.Product) *ProductSummary {
	if p == nil {
		return nil
	}
	return &ProductSummary{
		ID:       p.ID,
		SKU:      p.SKU,
		Name:     p.Name,
		UOM:      p.UOM,
		Quantity: p.Quantity,
		UnitCost: p.UnitCost,
	}
}

// ToLocationSummary converts a location to its summary, nil-safe
func ToLocationSummary(l *inventory.Location) *LocationSummary {
	if l == nil {
		return nil
	}
	return &LocationSummary{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type.String(),
		WarehouseID: l.WarehouseID,
	}
}

// ToOperationResponse converts a stock move to its response
func ToOperationResponse(m *inventory.StockMove) OperationResponse {
	lines := make([]OrderLineResponse, len(m.OrderLines))
	for i := range m.OrderLines {
		l := &m.OrderLines[i]
		lines[i] = OrderLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
			Product:   ToProductSummary(l.Product),
		}
	}
	return OperationResponse{
		ID:               m.ID,
		Type:             m.Type.String(),
		Status:           m.Status.String(),
		Reference:        m.Reference,
		Responsible:      m.Responsible,
		ScheduleDate:     m.ScheduleDate,
		DeliveryAddress:  m.DeliveryAddress,
		ContactPerson:    m.ContactPerson,
		ProductID:        m.ProductID,
		Quantity:         m.Quantity,
		SourceLocationID: m.SourceLocationID,
		DestLocationID:   m.DestLocationID,
		Product:          ToProductSummary(m.Product),
		SourceLocation:   ToLocationSummary(m.SourceLocation),
		DestLocation:     ToLocationSummary(m.DestLocation),
		OrderLines:       lines,
		TotalQuantity:    m.TotalQuantity(),
		TotalValue:       m.TotalValue(),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToOperationResponses converts a slice of stock moves
func ToOperationResponses(moves []inventory.StockMove) []OperationResponse {
	out := make([]OperationResponse, len(moves))
	for i := range moves {
		out[i] = ToOperationResponse(&moves[i])
	}
	return out
}

// StockFilter represents filter options for the stock listing
type StockFilter struct {
	LocationID *uuid.UUID `form:"location_id"`
	ProductID  *uuid.UUID `form:"product_id"`
}

// StockQuantResponse represents a stock quant in API responses
type StockQuantResponse struct {
	ID         uuid.UUID        `json:"id"`
	ProductID  uuid.UUID        `json:"product_id"`
	LocationID uuid.UUID        `json:"location_id"`
	Quantity   int64            `json:"quantity"`
	Product    *ProductSummary  `json:"product,omitempty"`
	Location   *LocationSummary `json:"location,omitempty"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ToStockQuantResponse converts a quant to its response
func ToStockQuantResponse(q *inventory.StockQuant) StockQuantResponse {
	return StockQuantResponse{
		ID:         q.ID,
		ProductID:  q.ProductID,
		LocationID: q.LocationID,
		Quantity:   q.Quantity,
		Product:    ToProductSummary(q.Product),
		Location:   ToLocationSummary(q.Location),
		UpdatedAt:  q.UpdatedAt,
	}
}

// LocationStock is a product's quantity at one location
type LocationStock struct {
	LocationID   uuid.UUID `json:"location_id"`
	LocationName string    `json:"location_name"`
	Quantity     int64     `json:"quantity"`
}

// ProductStockResponse is a product's stock broken down by location
type ProductStockResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	TotalQuantity int64           `json:"total_quantity"`
	ByLocation    []LocationStock `json:"by_location"`
}

// DashboardKPIs are the headline counters of the dashboard
type DashboardKPIs struct {
	TotalProducts     int64 `json:"total_products"`
	PendingReceipts   int64 `json:"pending_receipts"`
	PendingDeliveries int64 `json:"pending_deliveries"`
	LowStock          int64 `json:"low_stock"`
}

// WarehouseRequest is the request body for creating or updating a warehouse
type WarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a warehouse to its response
func ToWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// LocationRequest is the request body for creating or updating a location
type LocationRequest struct {
	Name        string     `json:"name" binding:"required,max=200"`
	Type        string     `json:"type"`
	WarehouseID *uuid.UUID `json:"warehouse_id"`
}

// LocationListFilter represents filter options for the location list
type LocationListFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Type        string     `form:"type"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	WarehouseID *uuid.UUID         `json:"warehouse_id,omitempty"`
	Warehouse   *WarehouseResponse `json:"warehouse,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToLocationResponse converts a location to its response
func ToLocationResponse(l *inventory.Location) LocationResponse {
	resp := LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Type:        l.Type.String(),
		WarehouseID: l.WarehouseID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Warehouse != nil {
		wh := ToWarehouseResponse(l.Warehouse)
		resp.Warehouse = &wh
	}
	return resp
}

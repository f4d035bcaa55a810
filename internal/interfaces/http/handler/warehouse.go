package handler

import (
	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles warehouse-related API endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *inventoryapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *inventoryapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService: warehouseService,
	}
}

// Create godoc
//
//	@Summary		Create a warehouse
//	@Tags			warehouses
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.WarehouseRequest	true	"Warehouse"
//	@Success		201		{object}	dto.Response{data=inventoryapp.WarehouseResponse}
//	@Failure		400		{object}	dto.Response
//	@Router			/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req inventoryapp.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, warehouse)
}

// GetByID godoc
//
//	@Summary		Get a warehouse
//	@Tags			warehouses
//	@Produce		json
//	@Param			id	path		string	true	"Warehouse ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=inventoryapp.WarehouseResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "warehouse")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// List godoc
//
//	@Summary		List warehouses
//	@Tags			warehouses
//	@Produce		json
//	@Param			page		query		int	false	"Page number"	default(1)
//	@Param			page_size	query		int	false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]inventoryapp.WarehouseResponse}
//	@Router			/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		h.HandleBindError(c, err)
		return
	}
	page = page.Normalize()

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, warehouses, total, page.Page, page.PageSize)
}

// Update godoc
//
//	@Summary		Update a warehouse
//	@Tags			warehouses
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Warehouse ID"	format(uuid)
//	@Param			request	body		inventoryapp.WarehouseRequest	true	"Warehouse"
//	@Success		200		{object}	dto.Response{data=inventoryapp.WarehouseResponse}
//	@Failure		404		{object}	dto.Response
//	@Router			/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "warehouse")
	if !ok {
		return
	}

	var req inventoryapp.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, warehouse)
}

// Delete godoc
//
//	@Summary		Delete a warehouse
//	@Description	Locations of the warehouse are kept and detached
//	@Tags			warehouses
//	@Param			id	path	string	true	"Warehouse ID"	format(uuid)
//	@Success		204
//	@Failure		404	{object}	dto.Response
//	@Router			/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "warehouse")
	if !ok {
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/erp/inventory/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// LocationHandler handles location-related API endpoints
type LocationHandler struct {
	BaseHandler
	locationService *inventoryapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *inventoryapp.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// Create godoc
//
//	@Summary		Create a location
//	@Description	Type defaults to Internal
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.LocationRequest	true	"Location"
//	@Success		201		{object}	dto.Response{data=inventoryapp.LocationResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Router			/locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req inventoryapp.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, location)
}

// GetByID godoc
//
//	@Summary		Get a location
//	@Tags			locations
//	@Produce		json
//	@Param			id	path		string	true	"Location ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=inventoryapp.LocationResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/locations/{id} [get]
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "location")
	if !ok {
		return
	}

	location, err := h.locationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// List godoc
//
//	@Summary		List locations
//	@Tags			locations
//	@Produce		json
//	@Param			warehouse_id	query		string	false	"Warehouse ID"	format(uuid)
//	@Param			type			query		string	false	"Internal, Vendor, Customer or Inventory Loss"
//	@Param			page			query		int		false	"Page number"	default(1)
//	@Param			page_size		query		int		false	"Page size"		default(20)
//	@Success		200				{object}	dto.Response{data=[]inventoryapp.LocationResponse}
//	@Failure		400				{object}	dto.Response
//	@Router			/locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		h.HandleBindError(c, err)
		return
	}
	page = page.Normalize()

	warehouseID, ok := h.parseUUIDQuery(c, "warehouse_id")
	if !ok {
		return
	}

	filter := inventoryapp.LocationListFilter{
		WarehouseID: warehouseID,
		Type:        c.Query("type"),
		Page:        page.Page,
		PageSize:    page.PageSize,
	}
	locations, total, err := h.locationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, locations, total, page.Page, page.PageSize)
}

// Update godoc
//
//	@Summary		Update a location
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Location ID"	format(uuid)
//	@Param			request	body		inventoryapp.LocationRequest	true	"Location"
//	@Success		200		{object}	dto.Response{data=inventoryapp.LocationResponse}
//	@Failure		404		{object}	dto.Response
//	@Router			/locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "location")
	if !ok {
		return
	}

	var req inventoryapp.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, location)
}

// Delete godoc
//
//	@Summary		Delete a location
//	@Description	Refused while the location holds stock or appears on an operation
//	@Tags			locations
//	@Param			id	path	string	true	"Location ID"	format(uuid)
//	@Success		204
//	@Failure		404	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Router			/locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "location")
	if !ok {
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

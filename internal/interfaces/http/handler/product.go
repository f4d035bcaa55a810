package handler

import (
	catalogapp "github.com/erp/inventory/internal/application/catalog"
	"github.com/erp/inventory/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// Create godoc
//
//	@Summary		Create a new product
//	@Description	Products start with zero stock; quantity only changes through operations
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapp.CreateProductRequest	true	"Product creation request"
//	@Success		201		{object}	dto.Response{data=catalogapp.ProductResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Router			/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID godoc
//
//	@Summary		Get a product
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=catalogapp.ProductResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List godoc
//
//	@Summary		List products
//	@Tags			products
//	@Produce		json
//	@Param			search		query		string	false	"Matches SKU or name"
//	@Param			category	query		string	false	"Category"
//	@Param			low_stock	query		bool	false	"Only products below the low stock threshold"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Param			order_by	query		string	false	"sku, name, quantity, created_at or updated_at"
//	@Param			order_dir	query		string	false	"asc or desc"
//	@Success		200			{object}	dto.Response{data=[]catalogapp.ProductResponse}
//	@Router			/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}
	page := dto.Pagination{Page: filter.Page, PageSize: filter.PageSize}.Normalize()
	filter.Page, filter.PageSize = page.Page, page.PageSize

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, page.Page, page.PageSize)
}

// Update godoc
//
//	@Summary		Update a product
//	@Description	Changes catalog attributes; the stock quantity is not editable
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Product ID"	format(uuid)
//	@Param			request	body		catalogapp.UpdateProductRequest	true	"Product update request"
//	@Success		200		{object}	dto.Response{data=catalogapp.ProductResponse}
//	@Failure		404		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Router			/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete godoc
//
//	@Summary		Delete a product
//	@Tags			products
//	@Param			id	path	string	true	"Product ID"	format(uuid)
//	@Success		204
//	@Failure		404	{object}	dto.Response
//	@Failure		422	{object}	dto.Response
//	@Router			/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

package handler

import (
	"fmt"
	"time"

	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// StockHandler handles stock level queries
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// List godoc
//
//	@Summary		List stock quants
//	@Tags			stock
//	@Produce		json
//	@Param			location_id	query		string	false	"Location ID"	format(uuid)
//	@Param			product_id	query		string	false	"Product ID"	format(uuid)
//	@Success		200			{object}	dto.Response{data=[]inventoryapp.StockQuantResponse}
//	@Failure		400			{object}	dto.Response
//	@Router			/stock [get]
func (h *StockHandler) List(c *gin.Context) {
	filter, ok := h.bindStockFilter(c)
	if !ok {
		return
	}

	quants, err := h.stockService.ListStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quants)
}

// Export godoc
//
//	@Summary		Download stock levels as a spreadsheet
//	@Tags			stock
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param			location_id	query	string	false	"Location ID"	format(uuid)
//	@Param			product_id	query	string	false	"Product ID"	format(uuid)
//	@Success		200			{file}	binary
//	@Router			/stock/export [get]
func (h *StockHandler) Export(c *gin.Context) {
	filter, ok := h.bindStockFilter(c)
	if !ok {
		return
	}

	doc, err := h.stockService.ExportStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	filename := fmt.Sprintf("stock-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	h.Attachment(c, ContentTypeXLSX, filename, doc)
}

// GetProductStock godoc
//
//	@Summary		Get a product's stock by location
//	@Tags			stock
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=inventoryapp.ProductStockResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/stock/products/{id} [get]
func (h *StockHandler) GetProductStock(c *gin.Context) {
	productID, ok := h.parseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	stock, err := h.stockService.GetProductStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stock)
}

func (h *StockHandler) bindStockFilter(c *gin.Context) (inventoryapp.StockFilter, bool) {
	var filter inventoryapp.StockFilter
	var ok bool
	if filter.LocationID, ok = h.parseUUIDQuery(c, "location_id"); !ok {
		return filter, false
	}
	if filter.ProductID, ok = h.parseUUIDQuery(c, "product_id"); !ok {
		return filter, false
	}
	return filter, true
}

package handler

import (
	"fmt"
	"strings"

	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// OperationHandler handles stock operation endpoints
type OperationHandler struct {
	BaseHandler
	operationService *inventoryapp.OperationService
}

// NewOperationHandler creates a new OperationHandler
func NewOperationHandler(operationService *inventoryapp.OperationService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
	}
}

// Create godoc
//
//	@Summary		Create a stock operation
//	@Description	Apply a receipt (IN), delivery (OUT), internal transfer (INT) or adjustment (ADJ)
//	@Tags			operations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.CreateOperationRequest	true	"Operation request"
//	@Success		201		{object}	dto.Response{data=inventoryapp.OperationResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Failure		500		{object}	dto.Response
//	@Router			/operations [post]
func (h *OperationHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	opReq, err := req.ToDomain()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	op, err := h.operationService.CreateOperation(c.Request.Context(), opReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, op)
}

// List godoc
//
//	@Summary		List stock operations
//	@Description	Newest first, optionally filtered by type and status
//	@Tags			operations
//	@Produce		json
//	@Param			type		query		string	false	"IN, OUT, INT or ADJ"
//	@Param			status		query		string	false	"Draft, Waiting, Ready, Done or Cancelled"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)
//	@Success		200			{object}	dto.Response{data=[]inventoryapp.OperationResponse}
//	@Failure		400			{object}	dto.Response
//	@Router			/operations [get]
func (h *OperationHandler) List(c *gin.Context) {
	var filter inventoryapp.OperationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindError(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	ops, total, err := h.operationService.ListOperations(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, ops, total, filter.Page, filter.PageSize)
}

// GetByID godoc
//
//	@Summary		Get a stock operation
//	@Tags			operations
//	@Produce		json
//	@Param			id	path		string	true	"Operation ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=inventoryapp.OperationResponse}
//	@Failure		404	{object}	dto.Response
//	@Router			/operations/{id} [get]
func (h *OperationHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "operation")
	if !ok {
		return
	}

	op, err := h.operationService.GetOperation(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, op)
}

// UpdateStatus godoc
//
//	@Summary		Change an operation's workflow status
//	@Description	Moves the header through Draft/Waiting/Ready/Done/Cancelled; quantities are untouched
//	@Tags			operations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Operation ID"	format(uuid)
//	@Param			request	body		inventoryapp.UpdateStatusRequest	true	"New status"
//	@Success		200		{object}	dto.Response{data=inventoryapp.OperationResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/operations/{id}/status [put]
func (h *OperationHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "operation")
	if !ok {
		return
	}

	var req inventoryapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	op, err := h.operationService.UpdateOperationStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, op)
}

// Slip godoc
//
//	@Summary		Download an operation slip
//	@Tags			operations
//	@Produce		application/pdf
//	@Param			id	path		string	true	"Operation ID"	format(uuid)
//	@Success		200	{file}		binary
//	@Failure		404	{object}	dto.Response
//	@Router			/operations/{id}/slip [get]
func (h *OperationHandler) Slip(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "operation")
	if !ok {
		return
	}

	op, doc, err := h.operationService.RenderSlip(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Attachment(c, ContentTypePDF, slipFilename(op), doc)
}

// slipFilename turns "OUT/1712345678901" into "OUT-1712345678901.pdf"
func slipFilename(op *inventoryapp.OperationResponse) string {
	name := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(op.Reference)
	if name == "" {
		name = op.ID.String()
	}
	return fmt.Sprintf("%s.pdf", name)
}

package handler

import (
	inventoryapp "github.com/erp/inventory/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard counters and activity feed
type DashboardHandler struct {
	BaseHandler
	dashboardService *inventoryapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *inventoryapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// KPIs godoc
//
//	@Summary		Dashboard counters
//	@Description	Total products, pending receipts and deliveries (Draft), low stock products
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=inventoryapp.DashboardKPIs}
//	@Router			/dashboard/kpis [get]
func (h *DashboardHandler) KPIs(c *gin.Context) {
	kpis, err := h.dashboardService.GetKPIs(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, kpis)
}

// Activity godoc
//
//	@Summary		Latest stock operations
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=[]inventoryapp.OperationResponse}
//	@Router			/dashboard/activity [get]
func (h *DashboardHandler) Activity(c *gin.Context) {
	ops, err := h.dashboardService.RecentActivity(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, ops)
}

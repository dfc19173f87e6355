package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/partner"
)

// EmployeeHandler exposes employee endpoints.
type EmployeeHandler struct {
	BaseHandler
	service *partner.EmployeeService
}

func NewEmployeeHandler(service *partner.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employees := rg.Group("/employees")
	{
		employees.POST("", h.Create)
		employees.GET("", h.List)
		employees.GET("/:id", h.GetByID)
		employees.PUT("/:id", h.Update)
		employees.POST("/:id/terminate", h.Terminate)
	}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req partner.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	employee, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var filter partner.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page.Page, page.PageSize, page.Total, page.TotalPages))
}

func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	employee, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partner.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	employee, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

func (h *EmployeeHandler) Terminate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partner.TerminateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	employee, err := h.service.Terminate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, employee)
}

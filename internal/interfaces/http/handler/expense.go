package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/billing"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

// ExpenseHandler exposes internal expense endpoints.
type ExpenseHandler struct {
	BaseHandler
	service *billing.ExpenseService
}

func NewExpenseHandler(service *billing.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/range", h.ListInRange)
		expenses.GET("/:id", h.GetByID)
		expenses.POST("/:id/reprice", h.Reprice)
		expenses.DELETE("/:id", h.Delete)
	}
}

type expenseListQuery struct {
	dto.ListRequest
	Category string `form:"category" binding:"omitempty,oneof=RENT UTILITIES PAYROLL OFFICE MAINTENANCE INSURANCE TAX OTHER"`
	EstateID string `form:"estate_id" binding:"omitempty,uuid"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req billing.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	expense, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	var q expenseListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := q.ToFilter()
	if q.EstateID != "" {
		filter.Filters["estate_id"] = q.EstateID
	}

	page, err := h.service.List(c.Request.Context(), filter, q.Category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page.Page, page.PageSize, page.Total, page.TotalPages))
}

func (h *ExpenseHandler) ListInRange(c *gin.Context) {
	var q billing.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	expenses, err := h.service.ListInRange(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

func (h *ExpenseHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	expense, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

func (h *ExpenseHandler) Reprice(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req billing.RepriceExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	expense, err := h.service.Reprice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

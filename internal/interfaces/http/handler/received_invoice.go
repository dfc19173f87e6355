package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/billing"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

// ReceivedInvoiceHandler exposes supplier invoice endpoints.
type ReceivedInvoiceHandler struct {
	BaseHandler
	service *billing.ReceivedInvoiceService
}

func NewReceivedInvoiceHandler(service *billing.ReceivedInvoiceService, logger *zap.Logger) *ReceivedInvoiceHandler {
	return &ReceivedInvoiceHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *ReceivedInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/received-invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/range", h.ListInRange)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("/:id/reprice", h.Reprice)
		invoices.POST("/:id/link-estate", h.LinkEstate)
		invoices.DELETE("/:id", h.Delete)
	}
}

type receivedInvoiceListQuery struct {
	dto.ListRequest
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	EstateID   string `form:"estate_id" binding:"omitempty,uuid"`
	Category   string `form:"category"`
	IsRefund   *bool  `form:"is_refund"`
}

type linkEstateRequest struct {
	EstateID uuid.UUID `json:"estate_id" binding:"required"`
}

func (h *ReceivedInvoiceHandler) Create(c *gin.Context) {
	var req billing.CreateReceivedInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

func (h *ReceivedInvoiceHandler) List(c *gin.Context) {
	var q receivedInvoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := q.ToFilter()
	if q.SupplierID != "" {
		filter.Filters["supplier_id"] = q.SupplierID
	}
	if q.EstateID != "" {
		filter.Filters["estate_id"] = q.EstateID
	}
	if q.Category != "" {
		filter.Filters["category"] = q.Category
	}
	if q.IsRefund != nil {
		filter.Filters["is_refund"] = *q.IsRefund
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page.Page, page.PageSize, page.Total, page.TotalPages))
}

// ListInRange returns every invoice accrued in [from, to), unpaged.
// The fiscal book generator uses the same window semantics.
func (h *ReceivedInvoiceHandler) ListInRange(c *gin.Context) {
	var q billing.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoices, err := h.service.ListInRange(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

func (h *ReceivedInvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

func (h *ReceivedInvoiceHandler) Reprice(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req billing.RepriceReceivedInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoice, err := h.service.Reprice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

func (h *ReceivedInvoiceHandler) LinkEstate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req linkEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoice, err := h.service.LinkEstate(c.Request.Context(), id, req.EstateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

func (h *ReceivedInvoiceHandler) Delete(c *gin.Context) {
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

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/billing"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

// IssuedInvoiceHandler exposes client invoice endpoints.
type IssuedInvoiceHandler struct {
	BaseHandler
	service *billing.IssuedInvoiceService
}

func NewIssuedInvoiceHandler(service *billing.IssuedInvoiceService, logger *zap.Logger) *IssuedInvoiceHandler {
	return &IssuedInvoiceHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *IssuedInvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/issued-invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/by-client/:client_id", h.ListByClient)
		invoices.GET("/:id", h.GetByID)
		invoices.POST("/:id/mark-paid", h.MarkPaid)
		invoices.POST("/:id/cancel", h.Cancel)
	}
}

type issuedInvoiceListQuery struct {
	dto.ListRequest
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
	EstateID string `form:"estate_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING PAID CANCELLED"`
	Category string `form:"category"`
	IsRefund *bool  `form:"is_refund"`
}

func (h *IssuedInvoiceHandler) Create(c *gin.Context) {
	var req billing.CreateIssuedInvoiceRequest
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

func (h *IssuedInvoiceHandler) List(c *gin.Context) {
	var q issuedInvoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := q.ToFilter()
	if q.ClientID != "" {
		filter.Filters["client_id"] = q.ClientID
	}
	if q.EstateID != "" {
		filter.Filters["estate_id"] = q.EstateID
	}
	if q.Status != "" {
		filter.Filters["status"] = q.Status
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

func (h *IssuedInvoiceHandler) ListByClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("client_id"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeBadRequest, "invalid client id")
		return
	}

	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoices, err := h.service.ListByClient(c.Request.Context(), clientID, q.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

func (h *IssuedInvoiceHandler) GetByID(c *gin.Context) {
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

func (h *IssuedInvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req billing.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoice, err := h.service.MarkPaid(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Cancel voids a pending invoice. Paid invoices cannot be cancelled; the
// service surfaces that as an invalid state error.
func (h *IssuedInvoiceHandler) Cancel(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	invoice, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

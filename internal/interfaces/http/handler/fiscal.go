package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/fiscal"
)

// FiscalHandler exposes the VAT book, liquidation and owner allocation
// reports.
type FiscalHandler struct {
	BaseHandler
	service *fiscal.ReportService
}

func NewFiscalHandler(service *fiscal.ReportService, logger *zap.Logger) *FiscalHandler {
	return &FiscalHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *FiscalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/fiscal")
	{
		reports.GET("/vat-book", h.VATBook)
		reports.GET("/liquidation", h.Liquidation)
		reports.GET("/owner-allocation", h.OwnerAllocation)
		reports.POST("/cache/invalidate", h.InvalidateCache)
	}
}

// VATBook returns the soportado or repercutido book for a period.
func (h *FiscalHandler) VATBook(c *gin.Context) {
	var q fiscal.BookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	book, err := h.service.GetVATBook(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// Liquidation returns the Modelo 303 style settlement for a period.
func (h *FiscalHandler) Liquidation(c *gin.Context) {
	var q fiscal.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	liquidation, err := h.service.GetLiquidation(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, liquidation)
}

// OwnerAllocation returns the per-owner redistribution of the period's
// results, cent-reconciled against the period totals.
func (h *FiscalHandler) OwnerAllocation(c *gin.Context) {
	var q fiscal.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	report, err := h.service.GetOwnerAllocation(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// InvalidateCache drops every cached book. Mutating endpoints already
// invalidate on write; this exists for manual recovery.
func (h *FiscalHandler) InvalidateCache(c *gin.Context) {
	h.service.InvalidateCache(c.Request.Context())
	h.NoContent(c)
}

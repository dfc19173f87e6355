package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/property"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

// EstateHandler exposes estate and ownership share endpoints.
type EstateHandler struct {
	BaseHandler
	service *property.EstateService
}

func NewEstateHandler(service *property.EstateService, logger *zap.Logger) *EstateHandler {
	return &EstateHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *EstateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	estates := rg.Group("/estates")
	{
		estates.POST("", h.Create)
		estates.GET("", h.List)
		estates.GET("/by-owner/:owner_id", h.ListByOwner)
		estates.GET("/:id", h.GetByID)
		estates.PUT("/:id", h.Update)
		estates.PUT("/:id/shares", h.ReplaceShares)
		estates.POST("/:id/deactivate", h.Deactivate)
		estates.POST("/:id/activate", h.Activate)
	}
}

type estateListQuery struct {
	dto.ListRequest
	Active *bool `form:"active"`
}

func (h *EstateHandler) Create(c *gin.Context) {
	var req property.CreateEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	estate, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, estate)
}

func (h *EstateHandler) List(c *gin.Context) {
	var q estateListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := q.ToFilter()
	if q.Active != nil {
		filter.Filters["active"] = *q.Active
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, paginatedMeta(page.Page, page.PageSize, page.Total, page.TotalPages))
}

func (h *EstateHandler) ListByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("owner_id"))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeBadRequest, "invalid owner id")
		return
	}

	estates, err := h.service.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, estates)
}

func (h *EstateHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	estate, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, estate)
}

func (h *EstateHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req property.UpdateEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	estate, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, estate)
}

// ReplaceShares swaps the full ownership table. Shares must sum to 100.
func (h *EstateHandler) ReplaceShares(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req property.ReplaceSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	estate, err := h.service.ReplaceShares(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, estate)
}

func (h *EstateHandler) Deactivate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *EstateHandler) Activate(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.Activate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

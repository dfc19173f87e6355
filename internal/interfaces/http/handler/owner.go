package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/partner"
)

// OwnerHandler exposes property owner endpoints.
type OwnerHandler struct {
	BaseHandler
	service *partner.OwnerService
}

func NewOwnerHandler(service *partner.OwnerService, logger *zap.Logger) *OwnerHandler {
	return &OwnerHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

func (h *OwnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	owners := rg.Group("/owners")
	{
		owners.POST("", h.Create)
		owners.GET("", h.List)
		owners.GET("/active", h.ListActive)
		owners.GET("/:id", h.GetByID)
		owners.PUT("/:id", h.Update)
		owners.POST("/:id/deactivate", h.Deactivate)
		owners.POST("/:id/activate", h.Activate)
	}
}

func (h *OwnerHandler) Create(c *gin.Context) {
	var req partner.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	owner, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, owner)
}

func (h *OwnerHandler) List(c *gin.Context) {
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

// ListActive returns every active owner, unpaged. Used by redistribution
// screens that need the full owner roster.
func (h *OwnerHandler) ListActive(c *gin.Context) {
	owners, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owners)
}

func (h *OwnerHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	owner, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

func (h *OwnerHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partner.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	owner, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

func (h *OwnerHandler) Deactivate(c *gin.Context) {
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

func (h *OwnerHandler) Activate(c *gin.Context) {
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

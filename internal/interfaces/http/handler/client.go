package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/application/partner"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

// ClientHandler exposes client management endpoints.
type ClientHandler struct {
	BaseHandler
	service *partner.ClientService
}

func NewClientHandler(service *partner.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{BaseHandler: NewBaseHandler(logger), service: service}
}

// RegisterRoutes mounts the client routes on the API group.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.GetByID)
		clients.PUT("/:id", h.Update)
		clients.POST("/:id/deactivate", h.Deactivate)
		clients.POST("/:id/activate", h.Activate)
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req partner.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	client, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

func (h *ClientHandler) List(c *gin.Context) {
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

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	client, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req partner.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	client, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
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

func (h *ClientHandler) Activate(c *gin.Context) {
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

// bindID parses the :id path parameter, writing the error response itself.
func (h *BaseHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func paginatedMeta(page, pageSize int, total int64, totalPages int) *dto.Meta {
	return &dto.Meta{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

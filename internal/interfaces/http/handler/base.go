package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
	"github.com/inmogest/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides response helpers shared by all handlers.
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler. A nil logger falls back to a no-op.
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, meta *dto.Meta) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, meta))
}

func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a binding failure, expanding validator errors into
// per-field details.
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)
	details := middleware.FormatValidationErrors(err)
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(details, requestID))
}

// ErrorWithCode writes an error response for an API error code.
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	requestID := middleware.GetRequestID(c)
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// HandleError resolves any error to an API response. Domain errors and
// coded errors keep their code; everything else becomes ERR_INTERNAL.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		code := dto.NormalizeErrorCode(coded.Code())
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, err.Error(), requestID))
		return
	}

	h.logger.Error("unhandled error",
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "internal server error", requestID))
}

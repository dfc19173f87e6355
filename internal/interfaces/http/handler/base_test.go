package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmogest/backend/internal/domain/fiscal"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.Success(c, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_Created(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.Created(c, map[string]string{"id": uuid.NewString()})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandler_HandleError_DomainNotFound(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.HandleError(c, shared.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestBaseHandler_HandleError_DomainConflict(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.HandleError(c, shared.NewDomainError("ALREADY_EXISTS", "tax id already registered"))

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeConflict, resp.Error.Code)
	assert.Equal(t, "tax id already registered", resp.Error.Message)
}

func TestBaseHandler_HandleError_CodedFiscalError(t *testing.T) {
	h := NewBaseHandler(nil)

	t.Run("invalid period maps to 400", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, &fiscal.InvalidPeriodError{Year: 2024, Reason: "quarter out of range"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeResponse(t, w).Error.Code)
	})

	quarter := 2
	t.Run("missing book maps to 422", func(t *testing.T) {
		c, w := newTestContext(t)
		period, err := fiscal.ResolvePeriod(2024, &quarter, nil)
		require.NoError(t, err)
		h.HandleError(c, &fiscal.MissingBookError{Book: fiscal.BookIVASoportado, Period: period})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeUnprocessable, decodeResponse(t, w).Error.Code)
	})

	t.Run("source fetch maps to 502", func(t *testing.T) {
		c, w := newTestContext(t)
		period, err := fiscal.ResolvePeriod(2024, &quarter, nil)
		require.NoError(t, err)
		h.HandleError(c, &fiscal.SourceFetchError{
			Source: fiscal.SourceReceivedInvoice,
			Period: period,
			Err:    assert.AnError,
		})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, dto.ErrCodeUpstream, decodeResponse(t, w).Error.Code)
	})
}

func TestBaseHandler_HandleError_Unknown(t *testing.T) {
	h := NewBaseHandler(nil)
	c, w := newTestContext(t)

	h.HandleError(c, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeInternal, resp.Error.Code)
	assert.Equal(t, "internal server error", resp.Error.Message)
}

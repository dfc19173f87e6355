package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appfiscal "github.com/inmogest/backend/internal/application/fiscal"
	"github.com/inmogest/backend/internal/domain/fiscal"
	"github.com/inmogest/backend/internal/infrastructure/cache"
	"github.com/inmogest/backend/internal/interfaces/http/dto"
	"github.com/inmogest/backend/internal/interfaces/http/router"
)

// stubFiscalSource serves canned rows, standing in for the gorm-backed
// source in HTTP-level tests.
type stubFiscalSource struct {
	received []fiscal.ReceivedInvoiceRow
	issued   []fiscal.IssuedInvoiceRow
	expenses []fiscal.InternalExpenseRow
	shares   map[uuid.UUID][]fiscal.OwnershipShare
}

func (s *stubFiscalSource) ReceivedInvoices(_ context.Context, _ fiscal.Period) ([]fiscal.ReceivedInvoiceRow, error) {
	return s.received, nil
}

func (s *stubFiscalSource) IssuedInvoices(_ context.Context, _ fiscal.Period) ([]fiscal.IssuedInvoiceRow, error) {
	return s.issued, nil
}

func (s *stubFiscalSource) InternalExpenses(_ context.Context, _ fiscal.Period) ([]fiscal.InternalExpenseRow, error) {
	return s.expenses, nil
}

func (s *stubFiscalSource) SharesForEstate(_ context.Context, estateID uuid.UUID) ([]fiscal.OwnershipShare, error) {
	return s.shares[estateID], nil
}

func newFiscalTestRouter(t *testing.T, source *stubFiscalSource) *gin.Engine {
	t.Helper()

	books := fiscal.NewBookService(source, source)
	reports := appfiscal.NewReportService(books, cache.NewInMemoryBookCache(time.Minute), nil, zap.NewNop())

	engine := gin.New()
	router.New(engine).Register(NewFiscalHandler(reports, nil)).Setup()
	return engine
}

func q2ReceivedInvoice() fiscal.ReceivedInvoiceRow {
	return fiscal.ReceivedInvoiceRow{
		ID:            uuid.New(),
		SupplierName:  "Fontaneria Ruiz SL",
		SupplierTaxID: "B12345678",
		IssueDate:     time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
		TaxBase:       decimal.RequireFromString("1000.00"),
		IVAPercentage: decimal.RequireFromString("21"),
		Category:      "MAINTENANCE",
	}
}

func TestFiscalHandler_VATBook(t *testing.T) {
	source := &stubFiscalSource{received: []fiscal.ReceivedInvoiceRow{q2ReceivedInvoice()}}
	engine := newFiscalTestRouter(t, source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fiscal/vat-book?book=soportado&year=2024&quarter=2", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool                 `json:"success"`
		Data    fiscal.VATBookResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, fiscal.BookIVASoportado, resp.Data.BookType)
	assert.Equal(t, 1, resp.Data.EntryCount)
	assert.True(t, resp.Data.Totals.CuotaIVA().Equal(decimal.RequireFromString("210.00")),
		"got %s", resp.Data.Totals.CuotaIVA())
}

func TestFiscalHandler_VATBook_MissingYear(t *testing.T) {
	engine := newFiscalTestRouter(t, &stubFiscalSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fiscal/vat-book?book=soportado", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestFiscalHandler_VATBook_UnknownBook(t *testing.T) {
	engine := newFiscalTestRouter(t, &stubFiscalSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fiscal/vat-book?book=intracomunitario&year=2024", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFiscalHandler_Liquidation(t *testing.T) {
	source := &stubFiscalSource{
		received: []fiscal.ReceivedInvoiceRow{q2ReceivedInvoice()},
		issued: []fiscal.IssuedInvoiceRow{{
			ID:            uuid.New(),
			ClientName:    "Comunidad Sol 5",
			ClientTaxID:   "H87654321",
			IssueDate:     time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
			TaxBase:       decimal.RequireFromString("2000.00"),
			IVAPercentage: decimal.RequireFromString("21"),
			Category:      "MANAGEMENT_FEE",
		}},
	}
	engine := newFiscalTestRouter(t, source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fiscal/liquidation?year=2024&quarter=2", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data fiscal.LiquidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 420.00 charged against 210.00 deductible.
	assert.True(t, resp.Data.ImporteResultado.Equal(decimal.RequireFromString("210.00")),
		"got %s", resp.Data.ImporteResultado)
}

func TestFiscalHandler_Liquidation_QuarterAndMonthRejected(t *testing.T) {
	engine := newFiscalTestRouter(t, &stubFiscalSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fiscal/liquidation?year=2024&quarter=2&month=5", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestFiscalHandler_OwnerAllocation(t *testing.T) {
	estateID := uuid.New()
	ownerA := uuid.New()
	ownerB := uuid.New()

	invoice := q2ReceivedInvoice()
	invoice.EstateID = &estateID

	source := &stubFiscalSource{
		received: []fiscal.ReceivedInvoiceRow{invoice},
		shares: map[uuid.UUID][]fiscal.OwnershipShare{
			estateID: {
				{OwnerID: ownerA, OwnerName: "Ana", Percentage: decimal.RequireFromString("60")},
				{OwnerID: ownerB, OwnerName: "Bruno", Percentage: decimal.RequireFromString("40")},
			},
		},
	}
	engine := newFiscalTestRouter(t, source)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fiscal/owner-allocation?year=2024&quarter=2", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data fiscal.OwnerAllocationReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Owners, 2)
}

func TestFiscalHandler_InvalidateCache(t *testing.T) {
	engine := newFiscalTestRouter(t, &stubFiscalSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fiscal/cache/invalidate", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

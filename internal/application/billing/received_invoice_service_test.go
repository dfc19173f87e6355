package billing

import (
	"context"
	"testing"
	"time"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockReceivedInvoiceRepository is a mock implementation of ReceivedInvoiceRepository
type MockReceivedInvoiceRepository struct {
	mock.Mock
}

func (m *MockReceivedInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ReceivedInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ReceivedInvoice), args.Error(1)
}

func (m *MockReceivedInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.ReceivedInvoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ReceivedInvoice), args.Error(1)
}

func (m *MockReceivedInvoiceRepository) Save(ctx context.Context, entity *billing.ReceivedInvoice) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockReceivedInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReceivedInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivedInvoiceRepository) FindByInvoiceNumber(ctx context.Context, supplierID uuid.UUID, invoiceNumber string) (*billing.ReceivedInvoice, error) {
	args := m.Called(ctx, supplierID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ReceivedInvoice), args.Error(1)
}

func (m *MockReceivedInvoiceRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]billing.ReceivedInvoice, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ReceivedInvoice), args.Error(1)
}

func (m *MockReceivedInvoiceRepository) FindInRange(ctx context.Context, r billing.DateRangeFilter) ([]billing.ReceivedInvoice, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ReceivedInvoice), args.Error(1)
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, entity *partner.Supplier) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) FindByTaxID(ctx context.Context, taxID string) (*partner.Supplier, error) {
	args := m.Called(ctx, taxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByCategory(ctx context.Context, category partner.SupplierCategory, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, category, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

// MockEstateRepository is a mock implementation of EstateRepository
type MockEstateRepository struct {
	mock.Mock
}

func (m *MockEstateRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Estate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Estate), args.Error(1)
}

func (m *MockEstateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Estate, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Estate), args.Error(1)
}

func (m *MockEstateRepository) Save(ctx context.Context, entity *property.Estate) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEstateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEstateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEstateRepository) FindByReference(ctx context.Context, reference string) (*property.Estate, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Estate), args.Error(1)
}

func (m *MockEstateRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]property.Estate, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.Estate), args.Error(1)
}

func (m *MockEstateRepository) SharesForEstate(ctx context.Context, estateID uuid.UUID) ([]property.OwnershipShare, error) {
	args := m.Called(ctx, estateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]property.OwnershipShare), args.Error(1)
}

type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) InvalidateCache(_ context.Context) { r.calls++ }

// =============================================================================
// Tests
// =============================================================================

func testSupplier(t *testing.T) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier("Electricidad Garcia SL", "B76543210", partner.SupplierCategoryMaintenance)
	require.NoError(t, err)
	return supplier
}

func TestReceivedInvoiceService_Create(t *testing.T) {
	invoiceRepo := new(MockReceivedInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	invalidator := &recordingInvalidator{}
	service := NewReceivedInvoiceService(invoiceRepo, supplierRepo, nil, invalidator)

	supplier := testSupplier(t)
	supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	invoiceRepo.On("FindByInvoiceNumber", mock.Anything, supplier.ID, "F-2024-001").Return(nil, shared.ErrNotFound)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.ReceivedInvoice")).Return(nil)

	resp, err := service.Create(context.Background(), CreateReceivedInvoiceRequest{
		InvoiceNumber: "F-2024-001",
		SupplierID:    supplier.ID,
		IssueDate:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		TaxBase:       decimal.RequireFromString("350.00"),
		VATRate:       decimal.NewFromInt(21),
		Category:      "repairs",
	})
	require.NoError(t, err)

	assert.Equal(t, "F-2024-001", resp.InvoiceNumber)
	assert.Equal(t, supplier.Name, resp.SupplierName)
	assert.Equal(t, supplier.TaxID, resp.SupplierTaxID)
	assert.True(t, resp.Amounts.VATAmount.Equal(decimal.RequireFromString("73.50")))
	assert.Equal(t, 1, invalidator.calls, "creating an invoice must flush the report cache")
	invoiceRepo.AssertExpectations(t)
}

func TestReceivedInvoiceService_Create_DuplicateNumber(t *testing.T) {
	invoiceRepo := new(MockReceivedInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	service := NewReceivedInvoiceService(invoiceRepo, supplierRepo, nil, nil)

	supplier := testSupplier(t)
	existing, err := billing.NewReceivedInvoice("F-2024-001", supplier.ID, supplier.Name, supplier.TaxID,
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100), decimal.NewFromInt(21), decimal.Zero, "repairs")
	require.NoError(t, err)

	supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	invoiceRepo.On("FindByInvoiceNumber", mock.Anything, supplier.ID, "F-2024-001").Return(existing, nil)

	_, err = service.Create(context.Background(), CreateReceivedInvoiceRequest{
		InvoiceNumber: "F-2024-001",
		SupplierID:    supplier.ID,
		IssueDate:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		TaxBase:       decimal.NewFromInt(100),
		VATRate:       decimal.NewFromInt(21),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceivedInvoiceService_Create_HalfOpenPeriodRejected(t *testing.T) {
	invoiceRepo := new(MockReceivedInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	service := NewReceivedInvoiceService(invoiceRepo, supplierRepo, nil, nil)

	supplier := testSupplier(t)
	supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	invoiceRepo.On("FindByInvoiceNumber", mock.Anything, supplier.ID, "F-2024-002").Return(nil, shared.ErrNotFound)

	start := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	_, err := service.Create(context.Background(), CreateReceivedInvoiceRequest{
		InvoiceNumber: "F-2024-002",
		SupplierID:    supplier.ID,
		IssueDate:     time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		TaxBase:       decimal.NewFromInt(100),
		VATRate:       decimal.NewFromInt(21),
		PeriodStart:   &start,
	})
	require.Error(t, err)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceivedInvoiceService_Create_UnknownEstate(t *testing.T) {
	invoiceRepo := new(MockReceivedInvoiceRepository)
	supplierRepo := new(MockSupplierRepository)
	estateRepo := new(MockEstateRepository)
	service := NewReceivedInvoiceService(invoiceRepo, supplierRepo, estateRepo, nil)

	supplier := testSupplier(t)
	estateID := uuid.New()
	supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	invoiceRepo.On("FindByInvoiceNumber", mock.Anything, supplier.ID, "F-2024-003").Return(nil, shared.ErrNotFound)
	estateRepo.On("FindByID", mock.Anything, estateID).Return(nil, shared.ErrNotFound)

	_, err := service.Create(context.Background(), CreateReceivedInvoiceRequest{
		InvoiceNumber: "F-2024-003",
		SupplierID:    supplier.ID,
		IssueDate:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		TaxBase:       decimal.NewFromInt(100),
		VATRate:       decimal.NewFromInt(21),
		EstateID:      &estateID,
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestReceivedInvoiceService_Reprice(t *testing.T) {
	invoiceRepo := new(MockReceivedInvoiceRepository)
	invalidator := &recordingInvalidator{}
	service := NewReceivedInvoiceService(invoiceRepo, nil, nil, invalidator)

	supplier := testSupplier(t)
	invoice, err := billing.NewReceivedInvoice("F-2024-004", supplier.ID, supplier.Name, supplier.TaxID,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100), decimal.NewFromInt(21), decimal.Zero, "repairs")
	require.NoError(t, err)

	invoiceRepo.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("Save", mock.Anything, invoice).Return(nil)

	resp, err := service.Reprice(context.Background(), invoice.ID, RepriceReceivedInvoiceRequest{
		TaxBase: decimal.NewFromInt(200),
		VATRate: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, resp.Amounts.VATAmount.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, 1, invalidator.calls)
}

func TestReceivedInvoiceService_ErrorsDoNotInvalidateCache(t *testing.T) {
	invoiceRepo := new(MockReceivedInvoiceRepository)
	invalidator := &recordingInvalidator{}
	service := NewReceivedInvoiceService(invoiceRepo, nil, nil, invalidator)

	id := uuid.New()
	invoiceRepo.On("Delete", mock.Anything, id).Return(shared.ErrNotFound)

	err := service.Delete(context.Background(), id)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 0, invalidator.calls)
}

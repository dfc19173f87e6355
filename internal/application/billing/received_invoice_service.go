package billing

import (
	"context"
	"errors"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CacheInvalidator drops derived fiscal report caches after a mutation.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// ReceivedInvoiceService handles supplier invoice operations. Every
// mutation invalidates the cached VAT books, since the books are derived
// from these records.
type ReceivedInvoiceService struct {
	invoiceRepo  billing.ReceivedInvoiceRepository
	supplierRepo partner.SupplierRepository
	estateRepo   property.EstateRepository
	invalidator  CacheInvalidator
}

// NewReceivedInvoiceService creates a new ReceivedInvoiceService
func NewReceivedInvoiceService(
	invoiceRepo billing.ReceivedInvoiceRepository,
	supplierRepo partner.SupplierRepository,
	estateRepo property.EstateRepository,
	invalidator CacheInvalidator,
) *ReceivedInvoiceService {
	return &ReceivedInvoiceService{
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		estateRepo:   estateRepo,
		invalidator:  invalidator,
	}
}

// Create registers a received invoice. Supplier name and tax ID are
// denormalized onto the invoice so the VAT book stays readable even if
// the supplier record changes later.
func (s *ReceivedInvoiceService) Create(ctx context.Context, req CreateReceivedInvoiceRequest) (*ReceivedInvoiceResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	if _, err := s.invoiceRepo.FindByInvoiceNumber(ctx, req.SupplierID, req.InvoiceNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Invoice with this number already registered for the supplier")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	invoice, err := billing.NewReceivedInvoice(
		req.InvoiceNumber,
		supplier.ID,
		supplier.Name, supplier.TaxID,
		req.IssueDate,
		req.TaxBase, req.VATRate, req.IRPFRate,
		req.Category,
	)
	if err != nil {
		return nil, err
	}
	invoice.DueDate = req.DueDate
	invoice.Notes = req.Notes
	if req.IsRefund {
		invoice.MarkRefund()
	}

	if req.EstateID != nil {
		if err := s.linkEstate(ctx, invoice, *req.EstateID); err != nil {
			return nil, err
		}
	}
	if req.PeriodStart != nil || req.PeriodEnd != nil {
		if req.PeriodStart == nil || req.PeriodEnd == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "period_start and period_end must be provided together")
		}
		if err := invoice.MarkProportional(*req.PeriodStart, *req.PeriodEnd); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToReceivedInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves a received invoice
func (s *ReceivedInvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*ReceivedInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToReceivedInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves received invoices with pagination
func (s *ReceivedInvoiceService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ReceivedInvoiceResponse], error) {
	filter = withListDefaults(filter)

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ReceivedInvoiceResponse]{}, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ReceivedInvoiceResponse]{}, err
	}

	return shared.NewPaginated(ToReceivedInvoiceResponses(invoices), total, filter.Page, filter.PageSize), nil
}

// ListInRange returns the invoices overlapping a date window
func (s *ReceivedInvoiceService) ListInRange(ctx context.Context, q RangeQuery) ([]ReceivedInvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindInRange(ctx, billing.DateRangeFilter{From: q.From, To: q.To})
	if err != nil {
		return nil, err
	}
	return ToReceivedInvoiceResponses(invoices), nil
}

// Reprice corrects the amounts of an invoice
func (s *ReceivedInvoiceService) Reprice(ctx context.Context, invoiceID uuid.UUID, req RepriceReceivedInvoiceRequest) (*ReceivedInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Reprice(req.TaxBase, req.VATRate, req.IRPFRate); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToReceivedInvoiceResponse(invoice)
	return &response, nil
}

// LinkEstate assigns the invoice to an estate for owner allocation
func (s *ReceivedInvoiceService) LinkEstate(ctx context.Context, invoiceID, estateID uuid.UUID) (*ReceivedInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := s.linkEstate(ctx, invoice, estateID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToReceivedInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes an invoice
func (s *ReceivedInvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ReceivedInvoiceService) linkEstate(ctx context.Context, invoice *billing.ReceivedInvoice, estateID uuid.UUID) error {
	// The estate must exist; a dangling link would break owner allocation.
	if _, err := s.estateRepo.FindByID(ctx, estateID); err != nil {
		return err
	}
	return invoice.LinkEstate(estateID)
}

func (s *ReceivedInvoiceService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
}

// withListDefaults fills missing pagination values
func withListDefaults(filter shared.Filter) shared.Filter {
	defaults := shared.DefaultFilter()
	if filter.Page <= 0 {
		filter.Page = defaults.Page
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaults.PageSize
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "issue_date"
		filter.OrderDir = "desc"
	}
	return filter
}

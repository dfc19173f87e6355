package billing

import (
	"context"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IssuedInvoiceService handles client invoice operations. Numbers come
// from the per-year sequence, so two invoices can never share one.
type IssuedInvoiceService struct {
	invoiceRepo billing.IssuedInvoiceRepository
	clientRepo  partner.ClientRepository
	estateRepo  property.EstateRepository
	invalidator CacheInvalidator
}

// NewIssuedInvoiceService creates a new IssuedInvoiceService
func NewIssuedInvoiceService(
	invoiceRepo billing.IssuedInvoiceRepository,
	clientRepo partner.ClientRepository,
	estateRepo property.EstateRepository,
	invalidator CacheInvalidator,
) *IssuedInvoiceService {
	return &IssuedInvoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		estateRepo:  estateRepo,
		invalidator: invalidator,
	}
}

// Create issues a new invoice, drawing the next number from the yearly
// sequence and denormalizing the client identity onto the record.
func (s *IssuedInvoiceService) Create(ctx context.Context, req CreateIssuedInvoiceRequest) (*IssuedInvoiceResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextInvoiceNumber(ctx, req.IssueDate.Year())
	if err != nil {
		return nil, err
	}

	invoice, err := billing.NewIssuedInvoice(
		number,
		client.ID,
		client.Name, client.TaxID,
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
		if _, err := s.estateRepo.FindByID(ctx, *req.EstateID); err != nil {
			return nil, err
		}
		if err := invoice.LinkEstate(*req.EstateID); err != nil {
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

	response := ToIssuedInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves an issued invoice
func (s *IssuedInvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*IssuedInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToIssuedInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves issued invoices with pagination
func (s *IssuedInvoiceService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[IssuedInvoiceResponse], error) {
	filter = withListDefaults(filter)

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[IssuedInvoiceResponse]{}, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[IssuedInvoiceResponse]{}, err
	}

	return shared.NewPaginated(ToIssuedInvoiceResponses(invoices), total, filter.Page, filter.PageSize), nil
}

// ListByClient returns the invoices issued to one client
func (s *IssuedInvoiceService) ListByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]IssuedInvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByClient(ctx, clientID, withListDefaults(filter))
	if err != nil {
		return nil, err
	}
	return ToIssuedInvoiceResponses(invoices), nil
}

// MarkPaid records the payment of an invoice
func (s *IssuedInvoiceService) MarkPaid(ctx context.Context, invoiceID uuid.UUID, req MarkPaidRequest) (*IssuedInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(req.PaidAt); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	response := ToIssuedInvoiceResponse(invoice)
	return &response, nil
}

// Cancel cancels a pending invoice. Cancelled invoices stay in the VAT
// book history as refund entries when a rectification was issued.
func (s *IssuedInvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID) (*IssuedInvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToIssuedInvoiceResponse(invoice)
	return &response, nil
}

func (s *IssuedInvoiceService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
}

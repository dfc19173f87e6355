package billing

import (
	"context"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ExpenseService handles internal expense operations
type ExpenseService struct {
	expenseRepo billing.InternalExpenseRepository
	estateRepo  property.EstateRepository
	invalidator CacheInvalidator
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo billing.InternalExpenseRepository,
	estateRepo property.EstateRepository,
	invalidator CacheInvalidator,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		estateRepo:  estateRepo,
		invalidator: invalidator,
	}
}

// Create registers an internal expense
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := billing.NewInternalExpense(
		req.PayeeName,
		req.ExpenseDate,
		req.TaxBase, req.VATRate,
		billing.ExpenseCategory(req.Category),
		req.Description,
	)
	if err != nil {
		return nil, err
	}
	expense.PayeeTaxID = req.PayeeTaxID

	if req.EstateID != nil {
		if _, err := s.estateRepo.FindByID(ctx, *req.EstateID); err != nil {
			return nil, err
		}
		if err := expense.LinkEstate(*req.EstateID); err != nil {
			return nil, err
		}
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves an expense
func (s *ExpenseService) GetByID(ctx context.Context, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves expenses with pagination, optionally by category
func (s *ExpenseService) List(ctx context.Context, filter shared.Filter, category string) (shared.Paginated[ExpenseResponse], error) {
	filter = withListDefaults(filter)
	if filter.OrderBy == "issue_date" {
		filter.OrderBy = "expense_date"
	}

	var expenses []billing.InternalExpense
	var err error
	if category != "" {
		filter.Filters["category"] = category
		expenses, err = s.expenseRepo.FindByCategory(ctx, billing.ExpenseCategory(category), filter)
	} else {
		expenses, err = s.expenseRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}

	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}

	return shared.NewPaginated(ToExpenseResponses(expenses), total, filter.Page, filter.PageSize), nil
}

// ListInRange returns the expenses inside a date window
func (s *ExpenseService) ListInRange(ctx context.Context, q RangeQuery) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindInRange(ctx, billing.DateRangeFilter{From: q.From, To: q.To})
	if err != nil {
		return nil, err
	}
	return ToExpenseResponses(expenses), nil
}

// Reprice corrects the amounts of an expense
func (s *ExpenseService) Reprice(ctx context.Context, expenseID uuid.UUID, req RepriceExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if err := expense.Reprice(req.TaxBase, req.VATRate); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, expenseID uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, expenseID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ExpenseService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
}

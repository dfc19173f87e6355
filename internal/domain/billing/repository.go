package billing

import (
	"context"
	"time"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DateRangeFilter narrows fiscal record queries to a date window. End is
// exclusive, matching the reporting period convention. Proportional
// records are matched on their declared period range, not the issue date.
type DateRangeFilter struct {
	From time.Time
	To   time.Time
}

// ReceivedInvoiceRepository defines persistence operations for received invoices
type ReceivedInvoiceRepository interface {
	shared.Repository[ReceivedInvoice]
	FindByInvoiceNumber(ctx context.Context, supplierID uuid.UUID, invoiceNumber string) (*ReceivedInvoice, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]ReceivedInvoice, error)
	FindInRange(ctx context.Context, r DateRangeFilter) ([]ReceivedInvoice, error)
}

// IssuedInvoiceRepository defines persistence operations for issued invoices
type IssuedInvoiceRepository interface {
	shared.Repository[IssuedInvoice]
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*IssuedInvoice, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]IssuedInvoice, error)
	FindInRange(ctx context.Context, r DateRangeFilter) ([]IssuedInvoice, error)
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
}

// InternalExpenseRepository defines persistence operations for internal expenses
type InternalExpenseRepository interface {
	shared.Repository[InternalExpense]
	FindByCategory(ctx context.Context, category ExpenseCategory, filter shared.Filter) ([]InternalExpense, error)
	FindInRange(ctx context.Context, r DateRangeFilter) ([]InternalExpense, error)
}

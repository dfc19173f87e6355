package fiscal

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// EntrySource is the read-only fetch capability the persistence layer
// provides per fiscal record source. Fetches are period-filtered at the
// repository so the aggregator only post-filters proportional overlap.
type EntrySource interface {
	ReceivedInvoices(ctx context.Context, p Period) ([]ReceivedInvoiceRow, error)
	IssuedInvoices(ctx context.Context, p Period) ([]IssuedInvoiceRow, error)
	InternalExpenses(ctx context.Context, p Period) ([]InternalExpenseRow, error)
}

// OwnershipSource resolves the ownership share table of an estate.
type OwnershipSource interface {
	SharesForEstate(ctx context.Context, estateID uuid.UUID) ([]OwnershipShare, error)
}

// VATBookResult is one generated VAT registry book: the normalized,
// apportioned entries plus the rate breakdown and aggregate totals.
// Generation is deterministic and idempotent for identical inputs, which
// makes the result safe to cache and re-export.
type VATBookResult struct {
	BookType    BookType      `json:"book_type"`
	BookCode    string        `json:"book_code"`
	Year        int           `json:"year"`
	Quarter     *int          `json:"quarter,omitempty"`
	Month       *int          `json:"month,omitempty"`
	Period      Period        `json:"period"`
	Entries     []FiscalEntry `json:"entries"`
	Totals      BookTotals    `json:"totals"`
	EntryCount  int           `json:"entry_count"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// BookService generates VAT books, quarterly liquidations and owner
// allocation reports. It is a stateless, single-pass computation over
// data materialized by the sources; failure of any fetch abandons the
// whole report rather than surfacing a partial book.
type BookService struct {
	entries   EntrySource
	ownership OwnershipSource
	now       func() time.Time
}

// BookServiceOption is a functional option for configuring BookService
type BookServiceOption func(*BookService)

// WithClock overrides the time source, used by tests for stable output
func WithClock(now func() time.Time) BookServiceOption {
	return func(s *BookService) {
		s.now = now
	}
}

// NewBookService creates a new BookService
func NewBookService(entries EntrySource, ownership OwnershipSource, opts ...BookServiceOption) *BookService {
	s := &BookService{
		entries:   entries,
		ownership: ownership,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateBook builds one side of the VAT book for the period. The
// soportado book pulls received invoices and internal expenses, the
// repercutido book pulls issued invoices. Independent source fetches run
// concurrently with a fail-fast join.
func (s *BookService) GenerateBook(ctx context.Context, bookType BookType, period Period) (*VATBookResult, error) {
	if !bookType.IsValid() {
		return nil, &InvalidPeriodError{Year: period.Year, Quarter: period.Quarter, Month: period.Month,
			Reason: "unknown book type " + bookType.String()}
	}

	entries, err := s.fetchEntries(ctx, bookType, period)
	if err != nil {
		return nil, err
	}

	included := make([]FiscalEntry, 0, len(entries))
	for _, e := range entries {
		apportioned, ok := Apportion(e, period)
		if !ok {
			continue
		}
		included = append(included, apportioned)
	}
	sortEntries(included)

	return &VATBookResult{
		BookType:    bookType,
		BookCode:    bookType.Code(),
		Year:        period.Year,
		Quarter:     period.Quarter,
		Month:       period.Month,
		Period:      period,
		Entries:     included,
		Totals:      ComputeBreakdown(included, bookType),
		EntryCount:  len(included),
		GeneratedAt: s.now().UTC(),
	}, nil
}

// GenerateLiquidation builds both books for the period concurrently and
// nets them into the quarterly settlement.
func (s *BookService) GenerateLiquidation(ctx context.Context, period Period) (*LiquidationResult, error) {
	supported, charged, err := s.generateBothBooks(ctx, period)
	if err != nil {
		return nil, err
	}
	return ComputeLiquidation(period, supported, charged)
}

// GenerateOwnerAllocation builds both books, resolves each estate's
// ownership table and redistributes the consolidated totals across
// owners. Entries without an estate use the supplied company-wide default
// share table.
func (s *BookService) GenerateOwnerAllocation(ctx context.Context, period Period, defaultShares []OwnershipShare) (*OwnerAllocationReport, error) {
	supported, charged, err := s.generateBothBooks(ctx, period)
	if err != nil {
		return nil, err
	}

	resolved := make(map[uuid.UUID][]OwnershipShare)
	attach := func(entries []FiscalEntry) error {
		for i := range entries {
			if entries[i].EstateID == nil {
				continue
			}
			estateID := *entries[i].EstateID
			shares, ok := resolved[estateID]
			if !ok {
				var err error
				shares, err = s.ownership.SharesForEstate(ctx, estateID)
				if err != nil {
					return &SourceFetchError{Source: entries[i].SourceType, Period: period, Err: err}
				}
				resolved[estateID] = shares
			}
			entries[i].OwnerShares = shares
		}
		return nil
	}
	if err := attach(supported.Entries); err != nil {
		return nil, err
	}
	if err := attach(charged.Entries); err != nil {
		return nil, err
	}

	return AllocateOwners(period, supported.Entries, charged.Entries, defaultShares, s.now().UTC())
}

// generateBothBooks produces the supported and charged books concurrently
// with a fail-fast join.
func (s *BookService) generateBothBooks(ctx context.Context, period Period) (*VATBookResult, *VATBookResult, error) {
	var supported, charged *VATBookResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		supported, err = s.GenerateBook(gctx, BookIVASoportado, period)
		return err
	})
	g.Go(func() error {
		var err error
		charged, err = s.GenerateBook(gctx, BookIVARepercutido, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return supported, charged, nil
}

// fetchEntries fans out to the sources backing the requested book side
// and normalizes every raw row into the common FiscalEntry shape.
func (s *BookService) fetchEntries(ctx context.Context, bookType BookType, period Period) ([]FiscalEntry, error) {
	var entries []FiscalEntry

	if bookType == BookIVARepercutido {
		rows, err := s.entries.IssuedInvoices(ctx, period)
		if err != nil {
			return nil, &SourceFetchError{Source: SourceIssuedInvoice, Period: period, Err: err}
		}
		for _, r := range rows {
			entries = append(entries, r.ToFiscalEntry())
		}
		return entries, nil
	}

	var invoices []ReceivedInvoiceRow
	var expenses []InternalExpenseRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.entries.ReceivedInvoices(gctx, period)
		if err != nil {
			return &SourceFetchError{Source: SourceReceivedInvoice, Period: period, Err: err}
		}
		invoices = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.entries.InternalExpenses(gctx, period)
		if err != nil {
			return &SourceFetchError{Source: SourceInternalExpense, Period: period, Err: err}
		}
		expenses = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range invoices {
		entries = append(entries, r.ToFiscalEntry())
	}
	for _, r := range expenses {
		entries = append(entries, r.ToFiscalEntry())
	}
	return entries, nil
}

// sortEntries orders entries by date, then ID, so repeated generations
// yield byte-identical output.
func sortEntries(entries []FiscalEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

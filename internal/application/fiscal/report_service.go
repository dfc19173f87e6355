package fiscal

import (
	"context"

	"github.com/inmogest/backend/internal/domain/fiscal"
	"go.uber.org/zap"
)

// BookCache stores generated VAT books keyed by book type and period.
// Implementations return (nil, nil) on a miss; cache failures must never
// fail report generation, the service logs and regenerates instead.
type BookCache interface {
	GetBook(ctx context.Context, key string) (*fiscal.VATBookResult, error)
	SetBook(ctx context.Context, key string, book *fiscal.VATBookResult) error
	InvalidateBooks(ctx context.Context) error
}

// ReportService exposes the fiscal reports to the API layer: VAT books,
// the quarterly liquidation and the owner allocation. Books are cached
// per period since generation is deterministic; any write on the billing
// side invalidates the whole cache.
type ReportService struct {
	books         *fiscal.BookService
	cache         BookCache
	defaultShares []fiscal.OwnershipShare
	logger        *zap.Logger
}

// NewReportService creates a new ReportService. cache may be nil, in
// which case every request regenerates the books.
func NewReportService(
	books *fiscal.BookService,
	cache BookCache,
	defaultShares []fiscal.OwnershipShare,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		books:         books,
		cache:         cache,
		defaultShares: defaultShares,
		logger:        logger,
	}
}

// GetVATBook returns the requested VAT book for the period, serving from
// cache when possible.
func (s *ReportService) GetVATBook(ctx context.Context, q BookQuery) (*fiscal.VATBookResult, error) {
	period, err := q.Resolve()
	if err != nil {
		return nil, err
	}
	bookType := q.BookType()

	key := cacheKey(bookType, period)
	if cached := s.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	book, err := s.books.GenerateBook(ctx, bookType, period)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, book)
	return book, nil
}

// GetLiquidation computes the VAT liquidation for the period.
func (s *ReportService) GetLiquidation(ctx context.Context, q PeriodQuery) (*fiscal.LiquidationResult, error) {
	period, err := q.Resolve()
	if err != nil {
		return nil, err
	}
	return s.books.GenerateLiquidation(ctx, period)
}

// GetOwnerAllocation computes the per-owner VAT allocation for the
// period. Estates without an ownership table fall back to the default
// share table from configuration.
func (s *ReportService) GetOwnerAllocation(ctx context.Context, q PeriodQuery) (*fiscal.OwnerAllocationReport, error) {
	period, err := q.Resolve()
	if err != nil {
		return nil, err
	}
	return s.books.GenerateOwnerAllocation(ctx, period, s.defaultShares)
}

// InvalidateCache drops all cached books. Billing services call this
// after every invoice or expense mutation.
func (s *ReportService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBooks(ctx); err != nil {
		s.logger.Warn("vat book cache invalidation failed", zap.Error(err))
	}
}

func (s *ReportService) lookup(ctx context.Context, key string) *fiscal.VATBookResult {
	if s.cache == nil {
		return nil
	}
	book, err := s.cache.GetBook(ctx, key)
	if err != nil {
		s.logger.Warn("vat book cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	return book
}

func (s *ReportService) store(ctx context.Context, key string, book *fiscal.VATBookResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetBook(ctx, key, book); err != nil {
		s.logger.Warn("vat book cache write failed", zap.String("key", key), zap.Error(err))
	}
}

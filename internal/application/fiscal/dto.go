package fiscal

import (
	"github.com/inmogest/backend/internal/domain/fiscal"
)

// PeriodQuery carries the raw period selectors from the API. Exactly one
// of Quarter/Month may be set; year alone selects the whole year.
type PeriodQuery struct {
	Year    int  `form:"year" binding:"required"`
	Quarter *int `form:"quarter"`
	Month   *int `form:"month"`
}

// Resolve validates the query and turns it into a concrete date range.
func (q PeriodQuery) Resolve() (fiscal.Period, error) {
	return fiscal.ResolvePeriod(q.Year, q.Quarter, q.Month)
}

// BookQuery selects a VAT book for a period.
type BookQuery struct {
	PeriodQuery
	Book string `form:"book" binding:"required,oneof=soportado repercutido"`
}

// BookType maps the query string onto the domain book type.
func (q BookQuery) BookType() fiscal.BookType {
	if q.Book == "repercutido" {
		return fiscal.BookIVARepercutido
	}
	return fiscal.BookIVASoportado
}

// cacheKey yields a stable cache key for a generated book. Period labels
// are unique per (year, quarter, month) so the label is enough.
func cacheKey(bookType fiscal.BookType, p fiscal.Period) string {
	return "vatbook:" + bookType.String() + ":" + p.Label()
}

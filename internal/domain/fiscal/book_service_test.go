package fiscal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntrySource struct {
	received    []ReceivedInvoiceRow
	issued      []IssuedInvoiceRow
	expenses    []InternalExpenseRow
	receivedErr error
	issuedErr   error
	expensesErr error
}

func (f *fakeEntrySource) ReceivedInvoices(_ context.Context, _ Period) ([]ReceivedInvoiceRow, error) {
	return f.received, f.receivedErr
}

func (f *fakeEntrySource) IssuedInvoices(_ context.Context, _ Period) ([]IssuedInvoiceRow, error) {
	return f.issued, f.issuedErr
}

func (f *fakeEntrySource) InternalExpenses(_ context.Context, _ Period) ([]InternalExpenseRow, error) {
	return f.expenses, f.expensesErr
}

type fakeOwnershipSource struct {
	shares map[uuid.UUID][]OwnershipShare
	err    error
}

func (f *fakeOwnershipSource) SharesForEstate(_ context.Context, estateID uuid.UUID) ([]OwnershipShare, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shares[estateID], nil
}

var bookClock = time.Date(2024, 4, 10, 9, 30, 0, 0, time.UTC)

func newTestService(entries *fakeEntrySource, ownership *fakeOwnershipSource) *BookService {
	if ownership == nil {
		ownership = &fakeOwnershipSource{}
	}
	return NewBookService(entries, ownership, WithClock(func() time.Time { return bookClock }))
}

func TestGenerateBook_SupportedEndToEnd(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{{
			ID:            uuid.MustParse("00000000-0000-0000-0000-000000000010"),
			SupplierName:  "Fontaneria Perez SL",
			SupplierTaxID: "B12345678",
			IssueDate:     date(2024, 2, 10),
			TaxBase:       decimal.NewFromInt(100),
			IVAPercentage: decimal.NewFromInt(21),
			Category:      "REPAIRS",
		}},
		expenses: []InternalExpenseRow{{
			ID:            uuid.MustParse("00000000-0000-0000-0000-000000000020"),
			PayeeName:     "Papeleria Central",
			ExpenseDate:   date(2024, 3, 5),
			TaxBase:       decimal.NewFromInt(50),
			IVAPercentage: decimal.NewFromInt(10),
			Category:      "OFFICE",
		}},
	}

	book, err := newTestService(source, nil).GenerateBook(context.Background(), BookIVASoportado, period)
	require.NoError(t, err)

	assert.Equal(t, "R", book.BookCode)
	assert.Equal(t, 2, book.EntryCount)
	assert.Equal(t, bookClock, book.GeneratedAt)

	assert.True(t, book.Totals.BaseImponibleTotal.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, book.Totals.CuotaIVADeducible)
	assert.True(t, book.Totals.CuotaIVADeducible.Equal(decimal.NewFromInt(26)),
		"got %s", book.Totals.CuotaIVADeducible)

	require.Len(t, book.Totals.DesgloseIVA, 2)
	assert.True(t, book.Totals.DesgloseIVA[0].Rate.Equal(decimal.NewFromInt(10)))
	assert.True(t, book.Totals.DesgloseIVA[0].BaseImponible.Equal(decimal.NewFromInt(50)))
	assert.True(t, book.Totals.DesgloseIVA[0].CuotaIVA.Equal(decimal.NewFromInt(5)))
	assert.True(t, book.Totals.DesgloseIVA[1].Rate.Equal(decimal.NewFromInt(21)))
	assert.True(t, book.Totals.DesgloseIVA[1].BaseImponible.Equal(decimal.NewFromInt(100)))
	assert.True(t, book.Totals.DesgloseIVA[1].CuotaIVA.Equal(decimal.NewFromInt(21)))

	// entries sorted by date
	assert.Equal(t, SourceReceivedInvoice, book.Entries[0].SourceType)
	assert.Equal(t, SourceInternalExpense, book.Entries[1].SourceType)
}

func TestGenerateBook_ChargedPullsIssuedOnly(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	source := &fakeEntrySource{
		issued: []IssuedInvoiceRow{{
			ID:            uuid.New(),
			ClientName:    "Comunidad Calle Mayor 5",
			IssueDate:     date(2024, 1, 20),
			TaxBase:       decimal.NewFromInt(300),
			IVAPercentage: decimal.NewFromInt(21),
		}},
		// a failure in the soportado sources must not matter here
		receivedErr: errors.New("db down"),
		expensesErr: errors.New("db down"),
	}

	book, err := newTestService(source, nil).GenerateBook(context.Background(), BookIVARepercutido, period)
	require.NoError(t, err)

	assert.Equal(t, "E", book.BookCode)
	assert.Equal(t, 1, book.EntryCount)
	require.NotNil(t, book.Totals.TotalCuotaIVA)
	assert.True(t, book.Totals.TotalCuotaIVA.Equal(decimal.NewFromInt(63)))
}

func TestGenerateBook_SourceFailureAbandonsBook(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	underlying := errors.New("connection refused")
	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{{
			ID:            uuid.New(),
			IssueDate:     date(2024, 1, 15),
			TaxBase:       decimal.NewFromInt(100),
			IVAPercentage: decimal.NewFromInt(21),
		}},
		expensesErr: underlying,
	}

	book, err := newTestService(source, nil).GenerateBook(context.Background(), BookIVASoportado, period)
	require.Error(t, err)
	assert.Nil(t, book, "no partial book may be surfaced")

	var fetchErr *SourceFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, SourceInternalExpense, fetchErr.Source)
	assert.True(t, errors.Is(err, underlying))
}

func TestGenerateBook_FiltersEntriesOutsidePeriod(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	from := date(2024, 7, 17)
	to := date(2024, 7, 31)
	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{
			{
				ID:            uuid.New(),
				IssueDate:     date(2024, 2, 1),
				TaxBase:       decimal.NewFromInt(100),
				IVAPercentage: decimal.NewFromInt(21),
			},
			{
				// proportional entry entirely in Q3; zero overlap with Q1
				ID:             uuid.New(),
				IssueDate:      date(2024, 7, 17),
				TaxBase:        decimal.NewFromInt(1000),
				IVAPercentage:  decimal.NewFromInt(21),
				IsProportional: true,
				PeriodStart:    &from,
				PeriodEnd:      &to,
			},
		},
	}

	book, err := newTestService(source, nil).GenerateBook(context.Background(), BookIVASoportado, period)
	require.NoError(t, err)
	assert.Equal(t, 1, book.EntryCount)
}

func TestGenerateBook_Deterministic(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{
			{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), IssueDate: date(2024, 1, 10), TaxBase: decimal.NewFromInt(10), IVAPercentage: decimal.NewFromInt(21)},
			{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), IssueDate: date(2024, 1, 10), TaxBase: decimal.NewFromInt(20), IVAPercentage: decimal.NewFromInt(21)},
		},
	}
	svc := newTestService(source, nil)

	first, err := svc.GenerateBook(context.Background(), BookIVASoportado, period)
	require.NoError(t, err)
	second, err := svc.GenerateBook(context.Background(), BookIVASoportado, period)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// same-day entries ordered by ID
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", first.Entries[0].ID.String())
}

func TestGenerateLiquidation(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{{
			ID: uuid.New(), IssueDate: date(2024, 1, 5),
			TaxBase: decimal.NewFromInt(5000), IVAPercentage: decimal.NewFromInt(21),
		}},
		issued: []IssuedInvoiceRow{{
			ID: uuid.New(), IssueDate: date(2024, 2, 5),
			TaxBase: decimal.NewFromInt(8000), IVAPercentage: decimal.NewFromInt(21),
		}},
	}

	result, err := newTestService(source, nil).GenerateLiquidation(context.Background(), period)
	require.NoError(t, err)

	// 1680.00 charged - 1050.00 supported
	assert.True(t, result.ImporteResultado.Equal(decimal.RequireFromString("630.00")))
	assert.Equal(t, ResultadoAPagar, result.ResultadoLiquidacion)
}

func TestGenerateOwnerAllocation(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	estateID := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000009")
	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{{
			ID: uuid.New(), IssueDate: date(2024, 1, 5), EstateID: &estateID,
			TaxBase: decimal.NewFromInt(100), IVAPercentage: decimal.NewFromInt(21),
		}},
		expenses: []InternalExpenseRow{{
			// generic expense, allocated with the default table
			ID: uuid.New(), ExpenseDate: date(2024, 2, 5),
			TaxBase: decimal.NewFromInt(200), IVAPercentage: decimal.NewFromInt(21),
		}},
	}
	ownership := &fakeOwnershipSource{shares: map[uuid.UUID][]OwnershipShare{
		estateID: {share(ownerA, "Ana", "100")},
	}}
	defaults := []OwnershipShare{
		share(ownerA, "Ana", "50"),
		share(ownerB, "Bruno", "50"),
	}

	report, err := newTestService(source, ownership).GenerateOwnerAllocation(context.Background(), period, defaults)
	require.NoError(t, err)
	require.Len(t, report.Owners, 2)

	// Ana: all of the estate invoice (21.00) plus half the expense (21.00)
	assert.True(t, report.Owners[0].VATSupported.Equal(decimal.RequireFromString("42.00")))
	// Bruno: half the expense
	assert.True(t, report.Owners[1].VATSupported.Equal(decimal.RequireFromString("21.00")))
	assert.True(t, report.OverallTotal.VATSupported.Equal(decimal.RequireFromString("63.00")))
}

func TestGenerateOwnerAllocation_OwnershipFetchFailure(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	estateID := uuid.New()
	source := &fakeEntrySource{
		received: []ReceivedInvoiceRow{{
			ID: uuid.New(), IssueDate: date(2024, 1, 5), EstateID: &estateID,
			TaxBase: decimal.NewFromInt(100), IVAPercentage: decimal.NewFromInt(21),
		}},
	}
	ownership := &fakeOwnershipSource{err: errors.New("timeout")}

	_, err = newTestService(source, ownership).GenerateOwnerAllocation(context.Background(), period, nil)
	var fetchErr *SourceFetchError
	require.True(t, errors.As(err, &fetchErr))
}

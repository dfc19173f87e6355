package fiscal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceType identifies the origin of a fiscal entry
type SourceType string

const (
	SourceReceivedInvoice SourceType = "RECEIVED_INVOICE"
	SourceIssuedInvoice   SourceType = "ISSUED_INVOICE"
	SourceInternalExpense SourceType = "INTERNAL_EXPENSE"
)

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// BookType identifies which side of the VAT book is being generated
type BookType string

const (
	// BookIVASoportado is the input VAT book (received invoices + internal expenses)
	BookIVASoportado BookType = "IVA_SOPORTADO"
	// BookIVARepercutido is the output VAT book (issued invoices)
	BookIVARepercutido BookType = "IVA_REPERCUTIDO"
)

// IsValid checks if the book type is valid
func (b BookType) IsValid() bool {
	return b == BookIVASoportado || b == BookIVARepercutido
}

// String returns the string representation of BookType
func (b BookType) String() string {
	return string(b)
}

// Code returns the single-letter book code used by the exporters:
// "R" for recibidas (soportado), "E" for emitidas (repercutido).
func (b BookType) Code() string {
	if b == BookIVARepercutido {
		return "E"
	}
	return "R"
}

// OwnershipShare is one owner's stake in an estate, expressed as a
// percentage. Shares of one estate must sum to 100 within rounding
// tolerance; that invariant is enforced at write time by the property
// module and re-checked by the allocation distributor.
type OwnershipShare struct {
	OwnerID    uuid.UUID       `json:"owner_id"`
	OwnerName  string          `json:"owner_name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// FiscalEntry is the normalized, source-agnostic shape every raw row is
// mapped into at the aggregator boundary. Downstream stages never branch
// on source type again. Entries are immutable once produced and live only
// for the duration of a single report computation.
type FiscalEntry struct {
	ID                uuid.UUID        `json:"id"`
	SourceType        SourceType       `json:"source_type"`
	Date              time.Time        `json:"date"`
	DueDate           *time.Time       `json:"due_date,omitempty"`
	CounterpartyName  string           `json:"counterparty_name"`
	CounterpartyTaxID string           `json:"counterparty_tax_id"`
	TaxBase           decimal.Decimal  `json:"tax_base"`
	VATRate           decimal.Decimal  `json:"vat_rate"`
	VATAmount         decimal.Decimal  `json:"vat_amount"`
	IRPFRate          decimal.Decimal  `json:"irpf_rate"`
	IRPFAmount        decimal.Decimal  `json:"irpf_amount"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	Category          string           `json:"category"`
	IsProportional    bool             `json:"is_proportional"`
	PeriodStart       *time.Time       `json:"period_start,omitempty"`
	PeriodEnd         *time.Time       `json:"period_end,omitempty"`
	IsRefund          bool             `json:"is_refund"`
	EstateID          *uuid.UUID       `json:"estate_id,omitempty"`
	OwnerShares       []OwnershipShare `json:"owner_shares,omitempty"`
}

// EffectiveRange returns the date range the entry covers: the declared
// [PeriodStart, PeriodEnd] for proportional entries, otherwise the single
// day of the entry date.
func (e FiscalEntry) EffectiveRange() (time.Time, time.Time) {
	if e.IsProportional && e.PeriodStart != nil && e.PeriodEnd != nil {
		return *e.PeriodStart, *e.PeriodEnd
	}
	return e.Date, e.Date
}

// OverlapsPeriod reports whether the entry's effective range has at least
// one day of overlap with the period.
func (e FiscalEntry) OverlapsPeriod(p Period) bool {
	from, to := e.EffectiveRange()
	return p.OverlapDays(from, to) > 0
}

// ReceivedInvoiceRow is the raw supplier invoice shape as stored by the
// billing module. Field names follow the persistence columns; the
// normalization into FiscalEntry is the only place they are mapped.
type ReceivedInvoiceRow struct {
	ID             uuid.UUID
	SupplierName   string
	SupplierTaxID  string
	IssueDate      time.Time
	DueDate        *time.Time
	TaxBase        decimal.Decimal
	IVAPercentage  decimal.Decimal
	IRPFPercentage decimal.Decimal
	Category       string
	EstateID       *uuid.UUID
	IsProportional bool
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	IsRefund       bool
}

// ToFiscalEntry normalizes the row into the common entry shape
func (r ReceivedInvoiceRow) ToFiscalEntry() FiscalEntry {
	return newEntry(entryFields{
		ID:                r.ID,
		SourceType:        SourceReceivedInvoice,
		Date:              r.IssueDate,
		DueDate:           r.DueDate,
		CounterpartyName:  r.SupplierName,
		CounterpartyTaxID: r.SupplierTaxID,
		TaxBase:           r.TaxBase,
		VATRate:           r.IVAPercentage,
		IRPFRate:          r.IRPFPercentage,
		Category:          r.Category,
		EstateID:          r.EstateID,
		IsProportional:    r.IsProportional,
		PeriodStart:       r.PeriodStart,
		PeriodEnd:         r.PeriodEnd,
		IsRefund:          r.IsRefund,
	})
}

// IssuedInvoiceRow is the raw client invoice shape as stored by the
// billing module.
type IssuedInvoiceRow struct {
	ID             uuid.UUID
	ClientName     string
	ClientTaxID    string
	IssueDate      time.Time
	DueDate        *time.Time
	TaxBase        decimal.Decimal
	IVAPercentage  decimal.Decimal
	IRPFPercentage decimal.Decimal
	Category       string
	EstateID       *uuid.UUID
	IsProportional bool
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
	IsRefund       bool
}

// ToFiscalEntry normalizes the row into the common entry shape
func (r IssuedInvoiceRow) ToFiscalEntry() FiscalEntry {
	return newEntry(entryFields{
		ID:                r.ID,
		SourceType:        SourceIssuedInvoice,
		Date:              r.IssueDate,
		DueDate:           r.DueDate,
		CounterpartyName:  r.ClientName,
		CounterpartyTaxID: r.ClientTaxID,
		TaxBase:           r.TaxBase,
		VATRate:           r.IVAPercentage,
		IRPFRate:          r.IRPFPercentage,
		Category:          r.Category,
		EstateID:          r.EstateID,
		IsProportional:    r.IsProportional,
		PeriodStart:       r.PeriodStart,
		PeriodEnd:         r.PeriodEnd,
		IsRefund:          r.IsRefund,
	})
}

// InternalExpenseRow is the raw company expense shape. Generic expenses
// carry no estate link and are later allocated with the company-wide
// default ownership table.
type InternalExpenseRow struct {
	ID            uuid.UUID
	PayeeName     string
	PayeeTaxID    string
	ExpenseDate   time.Time
	TaxBase       decimal.Decimal
	IVAPercentage decimal.Decimal
	Category      string
	EstateID      *uuid.UUID
}

// ToFiscalEntry normalizes the row into the common entry shape
func (r InternalExpenseRow) ToFiscalEntry() FiscalEntry {
	return newEntry(entryFields{
		ID:                r.ID,
		SourceType:        SourceInternalExpense,
		Date:              r.ExpenseDate,
		CounterpartyName:  r.PayeeName,
		CounterpartyTaxID: r.PayeeTaxID,
		TaxBase:           r.TaxBase,
		VATRate:           r.IVAPercentage,
		Category:          r.Category,
		EstateID:          r.EstateID,
	})
}

type entryFields struct {
	ID                uuid.UUID
	SourceType        SourceType
	Date              time.Time
	DueDate           *time.Time
	CounterpartyName  string
	CounterpartyTaxID string
	TaxBase           decimal.Decimal
	VATRate           decimal.Decimal
	IRPFRate          decimal.Decimal
	Category          string
	EstateID          *uuid.UUID
	IsProportional    bool
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	IsRefund          bool
}

// newEntry derives the dependent amounts so that every FiscalEntry honours
// the invariants vatAmount = round2(taxBase * vatRate / 100) and
// totalAmount = taxBase + vatAmount - irpfAmount.
func newEntry(f entryFields) FiscalEntry {
	vatAmount := round2(f.TaxBase.Mul(f.VATRate).Div(decimal.NewFromInt(100)))
	irpfAmount := decimal.Zero
	if !f.IRPFRate.IsZero() {
		irpfAmount = round2(f.TaxBase.Mul(f.IRPFRate).Div(decimal.NewFromInt(100)))
	}
	return FiscalEntry{
		ID:                f.ID,
		SourceType:        f.SourceType,
		Date:              f.Date,
		DueDate:           f.DueDate,
		CounterpartyName:  f.CounterpartyName,
		CounterpartyTaxID: f.CounterpartyTaxID,
		TaxBase:           f.TaxBase,
		VATRate:           f.VATRate,
		VATAmount:         vatAmount,
		IRPFRate:          f.IRPFRate,
		IRPFAmount:        irpfAmount,
		TotalAmount:       f.TaxBase.Add(vatAmount).Sub(irpfAmount),
		Category:          f.Category,
		IsProportional:    f.IsProportional,
		PeriodStart:       f.PeriodStart,
		PeriodEnd:         f.PeriodEnd,
		IsRefund:          f.IsRefund,
		EstateID:          f.EstateID,
	}
}

// round2 rounds to two decimal places, half away from zero
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

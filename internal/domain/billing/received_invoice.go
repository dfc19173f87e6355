package billing

import (
	"strings"
	"time"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Spanish VAT rates accepted on fiscal records
var validVATRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(4),
	decimal.NewFromInt(10),
	decimal.NewFromInt(21),
}

// IsValidVATRate reports whether the rate is one of the Spanish VAT rates
func IsValidVATRate(rate decimal.Decimal) bool {
	for _, r := range validVATRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// FiscalAmounts bundles the monetary fields every fiscal record carries.
// VATAmount and IRPFAmount are derived from the base and rates at
// construction time and never set directly.
type FiscalAmounts struct {
	TaxBase     decimal.Decimal `json:"tax_base"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	IRPFRate    decimal.Decimal `json:"irpf_rate"`
	IRPFAmount  decimal.Decimal `json:"irpf_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// newFiscalAmounts derives the dependent amounts, rounding to cents
func newFiscalAmounts(taxBase, vatRate, irpfRate decimal.Decimal) (FiscalAmounts, error) {
	if !IsValidVATRate(vatRate) {
		return FiscalAmounts{}, shared.NewDomainError("INVALID_INPUT", "invalid VAT rate: "+vatRate.String())
	}
	if irpfRate.IsNegative() || irpfRate.GreaterThan(decimal.NewFromInt(100)) {
		return FiscalAmounts{}, shared.NewDomainError("INVALID_INPUT", "IRPF rate must be between 0 and 100")
	}
	hundred := decimal.NewFromInt(100)
	vatAmount := taxBase.Mul(vatRate).Div(hundred).Round(2)
	irpfAmount := decimal.Zero
	if !irpfRate.IsZero() {
		irpfAmount = taxBase.Mul(irpfRate).Div(hundred).Round(2)
	}
	return FiscalAmounts{
		TaxBase:     taxBase,
		VATRate:     vatRate,
		VATAmount:   vatAmount,
		IRPFRate:    irpfRate,
		IRPFAmount:  irpfAmount,
		TotalAmount: taxBase.Add(vatAmount).Sub(irpfAmount),
	}, nil
}

// ProportionalRange marks an invoice as covering a partial calendar
// period; the VAT book prorates its amounts by day overlap.
type ProportionalRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ReceivedInvoice is a supplier invoice. It feeds the soportado VAT book.
type ReceivedInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string            `json:"invoice_number"`
	SupplierID    uuid.UUID         `json:"supplier_id"`
	SupplierName  string            `json:"supplier_name"`
	SupplierTaxID string            `json:"supplier_tax_id"`
	IssueDate     time.Time         `json:"issue_date"`
	DueDate       *time.Time        `json:"due_date,omitempty"`
	Amounts       FiscalAmounts     `json:"amounts"`
	Category      string            `json:"category"`
	EstateID      *uuid.UUID        `json:"estate_id,omitempty"`
	Proportional  *ProportionalRange `json:"proportional,omitempty"`
	IsRefund      bool              `json:"is_refund"`
	Notes         string            `json:"notes"`
}

// NewReceivedInvoice creates a received invoice aggregate
func NewReceivedInvoice(
	invoiceNumber string,
	supplierID uuid.UUID,
	supplierName, supplierTaxID string,
	issueDate time.Time,
	taxBase, vatRate, irpfRate decimal.Decimal,
	category string,
) (*ReceivedInvoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "invoice number is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "supplier is required")
	}
	if issueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "issue date is required")
	}
	amounts, err := newFiscalAmounts(taxBase, vatRate, irpfRate)
	if err != nil {
		return nil, err
	}
	return &ReceivedInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		SupplierID:        supplierID,
		SupplierName:      strings.TrimSpace(supplierName),
		SupplierTaxID:     strings.ToUpper(strings.TrimSpace(supplierTaxID)),
		IssueDate:         issueDate,
		Amounts:           amounts,
		Category:          category,
	}, nil
}

// LinkEstate associates the invoice with a managed estate
func (i *ReceivedInvoice) LinkEstate(estateID uuid.UUID) error {
	if estateID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "estate ID is required")
	}
	i.EstateID = &estateID
	return nil
}

// MarkProportional flags the invoice for day-based proration over the
// given period range.
func (i *ReceivedInvoice) MarkProportional(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "proportional range requires both dates")
	}
	if end.Before(start) {
		return shared.NewDomainError("INVALID_INPUT", "proportional range end precedes start")
	}
	i.Proportional = &ProportionalRange{Start: start, End: end}
	return nil
}

// MarkRefund flags the invoice as a rectificative (abono)
func (i *ReceivedInvoice) MarkRefund() {
	i.IsRefund = true
}

// Reprice replaces the fiscal amounts, re-deriving the dependent figures
func (i *ReceivedInvoice) Reprice(taxBase, vatRate, irpfRate decimal.Decimal) error {
	amounts, err := newFiscalAmounts(taxBase, vatRate, irpfRate)
	if err != nil {
		return err
	}
	i.Amounts = amounts
	return nil
}

package billing

import (
	"strings"
	"time"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies internal company expenses
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "RENT"
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategoryPayroll     ExpenseCategory = "PAYROLL"
	ExpenseCategoryOffice      ExpenseCategory = "OFFICE"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryInsurance   ExpenseCategory = "INSURANCE"
	ExpenseCategoryTax         ExpenseCategory = "TAX"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategoryPayroll,
		ExpenseCategoryOffice, ExpenseCategoryMaintenance, ExpenseCategoryInsurance,
		ExpenseCategoryTax, ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// InternalExpense is a company expense outside the supplier invoice flow
// (payroll, office costs, taxes). It feeds the soportado VAT book and,
// lacking an estate link, is allocated to owners with the company-wide
// default share table.
type InternalExpense struct {
	shared.BaseAggregateRoot
	PayeeName   string          `json:"payee_name"`
	PayeeTaxID  string          `json:"payee_tax_id"`
	ExpenseDate time.Time       `json:"expense_date"`
	TaxBase     decimal.Decimal `json:"tax_base"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Category    ExpenseCategory `json:"category"`
	EstateID    *uuid.UUID      `json:"estate_id,omitempty"`
	Description string          `json:"description"`
}

// NewInternalExpense creates an internal expense aggregate
func NewInternalExpense(
	payeeName string,
	expenseDate time.Time,
	taxBase, vatRate decimal.Decimal,
	category ExpenseCategory,
	description string,
) (*InternalExpense, error) {
	payeeName = strings.TrimSpace(payeeName)
	if payeeName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "payee name is required")
	}
	if expenseDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "expense date is required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid expense category: "+category.String())
	}
	if !IsValidVATRate(vatRate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid VAT rate: "+vatRate.String())
	}
	vatAmount := taxBase.Mul(vatRate).Div(decimal.NewFromInt(100)).Round(2)
	return &InternalExpense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PayeeName:         payeeName,
		ExpenseDate:       expenseDate,
		TaxBase:           taxBase,
		VATRate:           vatRate,
		VATAmount:         vatAmount,
		TotalAmount:       taxBase.Add(vatAmount),
		Category:          category,
		Description:       description,
	}, nil
}

// LinkEstate associates the expense with a managed estate
func (e *InternalExpense) LinkEstate(estateID uuid.UUID) error {
	if estateID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "estate ID is required")
	}
	e.EstateID = &estateID
	return nil
}

// Reprice replaces the fiscal amounts, re-deriving the dependent figures
func (e *InternalExpense) Reprice(taxBase, vatRate decimal.Decimal) error {
	if !IsValidVATRate(vatRate) {
		return shared.NewDomainError("INVALID_INPUT", "invalid VAT rate: "+vatRate.String())
	}
	vatAmount := taxBase.Mul(vatRate).Div(decimal.NewFromInt(100)).Round(2)
	e.TaxBase = taxBase
	e.VATRate = vatRate
	e.VATAmount = vatAmount
	e.TotalAmount = taxBase.Add(vatAmount)
	return nil
}

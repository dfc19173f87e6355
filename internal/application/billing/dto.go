package billing

import (
	"time"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Received invoice DTOs
// =============================================================================

// CreateReceivedInvoiceRequest registers a supplier invoice
type CreateReceivedInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required,min=1,max=50"`
	SupplierID    uuid.UUID       `json:"supplier_id" binding:"required"`
	IssueDate     time.Time       `json:"issue_date" binding:"required"`
	DueDate       *time.Time      `json:"due_date"`
	TaxBase       decimal.Decimal `json:"tax_base" binding:"required"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	IRPFRate      decimal.Decimal `json:"irpf_rate"`
	Category      string          `json:"category" binding:"max=50"`
	EstateID      *uuid.UUID      `json:"estate_id"`
	IsRefund      bool            `json:"is_refund"`
	// Proportional period, both required together
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
	Notes       string     `json:"notes"`
}

// RepriceReceivedInvoiceRequest corrects the amounts of an invoice
type RepriceReceivedInvoiceRequest struct {
	TaxBase  decimal.Decimal `json:"tax_base" binding:"required"`
	VATRate  decimal.Decimal `json:"vat_rate"`
	IRPFRate decimal.Decimal `json:"irpf_rate"`
}

// ReceivedInvoiceResponse represents a received invoice in API responses
type ReceivedInvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	SupplierID    uuid.UUID             `json:"supplier_id"`
	SupplierName  string                `json:"supplier_name"`
	SupplierTaxID string                `json:"supplier_tax_id"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	Amounts       billing.FiscalAmounts `json:"amounts"`
	Category      string                `json:"category"`
	EstateID      *uuid.UUID            `json:"estate_id,omitempty"`
	PeriodStart   *time.Time            `json:"period_start,omitempty"`
	PeriodEnd     *time.Time            `json:"period_end,omitempty"`
	IsRefund      bool                  `json:"is_refund"`
	Notes         string                `json:"notes"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Version       int                   `json:"version"`
}

// ToReceivedInvoiceResponse converts a received invoice aggregate
func ToReceivedInvoiceResponse(i *billing.ReceivedInvoice) ReceivedInvoiceResponse {
	resp := ReceivedInvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		SupplierID:    i.SupplierID,
		SupplierName:  i.SupplierName,
		SupplierTaxID: i.SupplierTaxID,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Amounts:       i.Amounts,
		Category:      i.Category,
		EstateID:      i.EstateID,
		IsRefund:      i.IsRefund,
		Notes:         i.Notes,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		Version:       i.Version,
	}
	if i.Proportional != nil {
		resp.PeriodStart = &i.Proportional.Start
		resp.PeriodEnd = &i.Proportional.End
	}
	return resp
}

// ToReceivedInvoiceResponses converts a slice of received invoices
func ToReceivedInvoiceResponses(invoices []billing.ReceivedInvoice) []ReceivedInvoiceResponse {
	out := make([]ReceivedInvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToReceivedInvoiceResponse(&invoices[i])
	}
	return out
}

// =============================================================================
// Issued invoice DTOs
// =============================================================================

// CreateIssuedInvoiceRequest issues an invoice to a client. The invoice
// number is assigned from the yearly sequence, never by the caller.
type CreateIssuedInvoiceRequest struct {
	ClientID    uuid.UUID       `json:"client_id" binding:"required"`
	IssueDate   time.Time       `json:"issue_date" binding:"required"`
	DueDate     *time.Time      `json:"due_date"`
	TaxBase     decimal.Decimal `json:"tax_base" binding:"required"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	IRPFRate    decimal.Decimal `json:"irpf_rate"`
	Category    string          `json:"category" binding:"max=50"`
	EstateID    *uuid.UUID      `json:"estate_id"`
	IsRefund    bool            `json:"is_refund"`
	PeriodStart *time.Time      `json:"period_start"`
	PeriodEnd   *time.Time      `json:"period_end"`
	Notes       string          `json:"notes"`
}

// MarkPaidRequest records the payment date of an issued invoice
type MarkPaidRequest struct {
	PaidAt time.Time `json:"paid_at" binding:"required"`
}

// IssuedInvoiceResponse represents an issued invoice in API responses
type IssuedInvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	ClientID      uuid.UUID             `json:"client_id"`
	ClientName    string                `json:"client_name"`
	ClientTaxID   string                `json:"client_tax_id"`
	IssueDate     time.Time             `json:"issue_date"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	Amounts       billing.FiscalAmounts `json:"amounts"`
	Category      string                `json:"category"`
	EstateID      *uuid.UUID            `json:"estate_id,omitempty"`
	PeriodStart   *time.Time            `json:"period_start,omitempty"`
	PeriodEnd     *time.Time            `json:"period_end,omitempty"`
	IsRefund      bool                  `json:"is_refund"`
	Status        string                `json:"status"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	Notes         string                `json:"notes"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Version       int                   `json:"version"`
}

// ToIssuedInvoiceResponse converts an issued invoice aggregate
func ToIssuedInvoiceResponse(i *billing.IssuedInvoice) IssuedInvoiceResponse {
	resp := IssuedInvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ClientID:      i.ClientID,
		ClientName:    i.ClientName,
		ClientTaxID:   i.ClientTaxID,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Amounts:       i.Amounts,
		Category:      i.Category,
		EstateID:      i.EstateID,
		IsRefund:      i.IsRefund,
		Status:        string(i.Status),
		PaidAt:        i.PaidAt,
		Notes:         i.Notes,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		Version:       i.Version,
	}
	if i.Proportional != nil {
		resp.PeriodStart = &i.Proportional.Start
		resp.PeriodEnd = &i.Proportional.End
	}
	return resp
}

// ToIssuedInvoiceResponses converts a slice of issued invoices
func ToIssuedInvoiceResponses(invoices []billing.IssuedInvoice) []IssuedInvoiceResponse {
	out := make([]IssuedInvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToIssuedInvoiceResponse(&invoices[i])
	}
	return out
}

// =============================================================================
// Internal expense DTOs
// =============================================================================

// CreateExpenseRequest registers an internal expense (payroll, office
// rent, anything without a supplier invoice behind it)
type CreateExpenseRequest struct {
	PayeeName   string          `json:"payee_name" binding:"required,min=1,max=200"`
	PayeeTaxID  string          `json:"payee_tax_id" binding:"max=20"`
	ExpenseDate time.Time       `json:"expense_date" binding:"required"`
	TaxBase     decimal.Decimal `json:"tax_base" binding:"required"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	Category    string          `json:"category" binding:"required,oneof=RENT UTILITIES PAYROLL OFFICE MAINTENANCE INSURANCE TAX OTHER"`
	EstateID    *uuid.UUID      `json:"estate_id"`
	Description string          `json:"description" binding:"max=500"`
}

// RepriceExpenseRequest corrects the amounts of an expense
type RepriceExpenseRequest struct {
	TaxBase decimal.Decimal `json:"tax_base" binding:"required"`
	VATRate decimal.Decimal `json:"vat_rate"`
}

// ExpenseResponse represents an internal expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	PayeeName   string          `json:"payee_name"`
	PayeeTaxID  string          `json:"payee_tax_id"`
	ExpenseDate time.Time       `json:"expense_date"`
	TaxBase     decimal.Decimal `json:"tax_base"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Category    string          `json:"category"`
	EstateID    *uuid.UUID      `json:"estate_id,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToExpenseResponse converts an internal expense aggregate
func ToExpenseResponse(e *billing.InternalExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		PayeeName:   e.PayeeName,
		PayeeTaxID:  e.PayeeTaxID,
		ExpenseDate: e.ExpenseDate,
		TaxBase:     e.TaxBase,
		VATRate:     e.VATRate,
		VATAmount:   e.VATAmount,
		TotalAmount: e.TotalAmount,
		Category:    e.Category.String(),
		EstateID:    e.EstateID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}

// ToExpenseResponses converts a slice of expenses
func ToExpenseResponses(expenses []billing.InternalExpense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}

// RangeQuery filters fiscal records by date window. To is exclusive.
type RangeQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required,gtfield=From" time_format:"2006-01-02"`
}

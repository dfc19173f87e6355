package models

import (
	"time"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivedInvoiceModel is the persistence model for supplier invoices
type ReceivedInvoiceModel struct {
	AggregateModel
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_received_supplier_number"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_received_supplier_number;index"`
	SupplierName  string          `gorm:"type:varchar(200);not null"`
	SupplierTaxID string          `gorm:"type:varchar(20);not null"`
	IssueDate     time.Time       `gorm:"type:date;not null;index"`
	DueDate       *time.Time      `gorm:"type:date"`
	TaxBase       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VATRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	VATAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IRPFRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IRPFAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category      string          `gorm:"type:varchar(30);index"`
	EstateID      *uuid.UUID      `gorm:"type:uuid;index"`
	PeriodStart   *time.Time      `gorm:"type:date"`
	PeriodEnd     *time.Time      `gorm:"type:date"`
	IsRefund      bool            `gorm:"not null;default:false"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ReceivedInvoiceModel) TableName() string {
	return "received_invoices"
}

// ToDomain converts the persistence model to a domain ReceivedInvoice
func (m *ReceivedInvoiceModel) ToDomain() *billing.ReceivedInvoice {
	inv := &billing.ReceivedInvoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		SupplierTaxID:     m.SupplierTaxID,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		Amounts: billing.FiscalAmounts{
			TaxBase:     m.TaxBase,
			VATRate:     m.VATRate,
			VATAmount:   m.VATAmount,
			IRPFRate:    m.IRPFRate,
			IRPFAmount:  m.IRPFAmount,
			TotalAmount: m.TotalAmount,
		},
		Category: m.Category,
		EstateID: m.EstateID,
		IsRefund: m.IsRefund,
		Notes:    m.Notes,
	}
	if m.PeriodStart != nil && m.PeriodEnd != nil {
		inv.Proportional = &billing.ProportionalRange{Start: *m.PeriodStart, End: *m.PeriodEnd}
	}
	return inv
}

// ReceivedInvoiceModelFromDomain builds the persistence model from a
// domain ReceivedInvoice
func ReceivedInvoiceModelFromDomain(inv *billing.ReceivedInvoice) *ReceivedInvoiceModel {
	m := &ReceivedInvoiceModel{
		InvoiceNumber: inv.InvoiceNumber,
		SupplierID:    inv.SupplierID,
		SupplierName:  inv.SupplierName,
		SupplierTaxID: inv.SupplierTaxID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		TaxBase:       inv.Amounts.TaxBase,
		VATRate:       inv.Amounts.VATRate,
		VATAmount:     inv.Amounts.VATAmount,
		IRPFRate:      inv.Amounts.IRPFRate,
		IRPFAmount:    inv.Amounts.IRPFAmount,
		TotalAmount:   inv.Amounts.TotalAmount,
		Category:      inv.Category,
		EstateID:      inv.EstateID,
		IsRefund:      inv.IsRefund,
		Notes:         inv.Notes,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	if inv.Proportional != nil {
		start := inv.Proportional.Start
		end := inv.Proportional.End
		m.PeriodStart = &start
		m.PeriodEnd = &end
	}
	return m
}

// IssuedInvoiceModel is the persistence model for client invoices
type IssuedInvoiceModel struct {
	AggregateModel
	InvoiceNumber string                      `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ClientName    string                      `gorm:"type:varchar(200);not null"`
	ClientTaxID   string                      `gorm:"type:varchar(20);not null"`
	IssueDate     time.Time                   `gorm:"type:date;not null;index"`
	DueDate       *time.Time                  `gorm:"type:date"`
	TaxBase       decimal.Decimal             `gorm:"type:decimal(12,2);not null"`
	VATRate       decimal.Decimal             `gorm:"type:decimal(5,2);not null"`
	VATAmount     decimal.Decimal             `gorm:"type:decimal(12,2);not null"`
	IRPFRate      decimal.Decimal             `gorm:"type:decimal(5,2);not null;default:0"`
	IRPFAmount    decimal.Decimal             `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount   decimal.Decimal             `gorm:"type:decimal(12,2);not null"`
	Category      string                      `gorm:"type:varchar(30);index"`
	EstateID      *uuid.UUID                  `gorm:"type:uuid;index"`
	PeriodStart   *time.Time                  `gorm:"type:date"`
	PeriodEnd     *time.Time                  `gorm:"type:date"`
	IsRefund      bool                        `gorm:"not null;default:false"`
	Status        billing.IssuedInvoiceStatus `gorm:"type:varchar(20);not null;index"`
	PaidAt        *time.Time
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (IssuedInvoiceModel) TableName() string {
	return "issued_invoices"
}

// ToDomain converts the persistence model to a domain IssuedInvoice
func (m *IssuedInvoiceModel) ToDomain() *billing.IssuedInvoice {
	inv := &billing.IssuedInvoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		ClientID:          m.ClientID,
		ClientName:        m.ClientName,
		ClientTaxID:       m.ClientTaxID,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		Amounts: billing.FiscalAmounts{
			TaxBase:     m.TaxBase,
			VATRate:     m.VATRate,
			VATAmount:   m.VATAmount,
			IRPFRate:    m.IRPFRate,
			IRPFAmount:  m.IRPFAmount,
			TotalAmount: m.TotalAmount,
		},
		Category: m.Category,
		EstateID: m.EstateID,
		IsRefund: m.IsRefund,
		Status:   m.Status,
		PaidAt:   m.PaidAt,
		Notes:    m.Notes,
	}
	if m.PeriodStart != nil && m.PeriodEnd != nil {
		inv.Proportional = &billing.ProportionalRange{Start: *m.PeriodStart, End: *m.PeriodEnd}
	}
	return inv
}

// IssuedInvoiceModelFromDomain builds the persistence model from a
// domain IssuedInvoice
func IssuedInvoiceModelFromDomain(inv *billing.IssuedInvoice) *IssuedInvoiceModel {
	m := &IssuedInvoiceModel{
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		ClientTaxID:   inv.ClientTaxID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		TaxBase:       inv.Amounts.TaxBase,
		VATRate:       inv.Amounts.VATRate,
		VATAmount:     inv.Amounts.VATAmount,
		IRPFRate:      inv.Amounts.IRPFRate,
		IRPFAmount:    inv.Amounts.IRPFAmount,
		TotalAmount:   inv.Amounts.TotalAmount,
		Category:      inv.Category,
		EstateID:      inv.EstateID,
		IsRefund:      inv.IsRefund,
		Status:        inv.Status,
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	if inv.Proportional != nil {
		start := inv.Proportional.Start
		end := inv.Proportional.End
		m.PeriodStart = &start
		m.PeriodEnd = &end
	}
	return m
}

// InternalExpenseModel is the persistence model for company expenses
type InternalExpenseModel struct {
	AggregateModel
	PayeeName   string                  `gorm:"type:varchar(200);not null"`
	PayeeTaxID  string                  `gorm:"type:varchar(20)"`
	ExpenseDate time.Time               `gorm:"type:date;not null;index"`
	TaxBase     decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	VATRate     decimal.Decimal         `gorm:"type:decimal(5,2);not null"`
	VATAmount   decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Category    billing.ExpenseCategory `gorm:"type:varchar(20);not null;index"`
	EstateID    *uuid.UUID              `gorm:"type:uuid;index"`
	Description string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InternalExpenseModel) TableName() string {
	return "internal_expenses"
}

// ToDomain converts the persistence model to a domain InternalExpense
func (m *InternalExpenseModel) ToDomain() *billing.InternalExpense {
	return &billing.InternalExpense{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PayeeName:         m.PayeeName,
		PayeeTaxID:        m.PayeeTaxID,
		ExpenseDate:       m.ExpenseDate,
		TaxBase:           m.TaxBase,
		VATRate:           m.VATRate,
		VATAmount:         m.VATAmount,
		TotalAmount:       m.TotalAmount,
		Category:          m.Category,
		EstateID:          m.EstateID,
		Description:       m.Description,
	}
}

// InternalExpenseModelFromDomain builds the persistence model from a
// domain InternalExpense
func InternalExpenseModelFromDomain(e *billing.InternalExpense) *InternalExpenseModel {
	m := &InternalExpenseModel{
		PayeeName:   e.PayeeName,
		PayeeTaxID:  e.PayeeTaxID,
		ExpenseDate: e.ExpenseDate,
		TaxBase:     e.TaxBase,
		VATRate:     e.VATRate,
		VATAmount:   e.VATAmount,
		TotalAmount: e.TotalAmount,
		Category:    e.Category,
		EstateID:    e.EstateID,
		Description: e.Description,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// InvoiceSequenceModel backs the per-year correlative numbering of
// issued invoices. One row per natural year.
type InvoiceSequenceModel struct {
	Year       int   `gorm:"primary_key;autoIncrement:false"`
	LastNumber int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}

// AllModels returns every persistence model for migration registration
func AllModels() []interface{} {
	return []interface{}{
		&ClientModel{},
		&OwnerModel{},
		&SupplierModel{},
		&EmployeeModel{},
		&EstateModel{},
		&EstateShareModel{},
		&ReceivedInvoiceModel{},
		&IssuedInvoiceModel{},
		&InternalExpenseModel{},
		&InvoiceSequenceModel{},
		&UserModel{},
	}
}

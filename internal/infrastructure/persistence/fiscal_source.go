package persistence

import (
	"context"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/fiscal"
	"github.com/inmogest/backend/internal/domain/property"
	"github.com/google/uuid"
)

// GormFiscalSource feeds the VAT book generator with period-filtered raw
// rows from the billing tables. It implements both fiscal.EntrySource and
// fiscal.OwnershipSource so one value can back a whole report run.
type GormFiscalSource struct {
	receivedRepo billing.ReceivedInvoiceRepository
	issuedRepo   billing.IssuedInvoiceRepository
	expenseRepo  billing.InternalExpenseRepository
	estateRepo   property.EstateRepository
}

// NewGormFiscalSource creates a new GormFiscalSource
func NewGormFiscalSource(
	receivedRepo billing.ReceivedInvoiceRepository,
	issuedRepo billing.IssuedInvoiceRepository,
	expenseRepo billing.InternalExpenseRepository,
	estateRepo property.EstateRepository,
) *GormFiscalSource {
	return &GormFiscalSource{
		receivedRepo: receivedRepo,
		issuedRepo:   issuedRepo,
		expenseRepo:  expenseRepo,
		estateRepo:   estateRepo,
	}
}

// ReceivedInvoices fetches supplier invoices relevant to the period
func (s *GormFiscalSource) ReceivedInvoices(ctx context.Context, p fiscal.Period) ([]fiscal.ReceivedInvoiceRow, error) {
	invoices, err := s.receivedRepo.FindInRange(ctx, billing.DateRangeFilter{From: p.Start, To: p.End})
	if err != nil {
		return nil, err
	}

	rows := make([]fiscal.ReceivedInvoiceRow, len(invoices))
	for i, inv := range invoices {
		row := fiscal.ReceivedInvoiceRow{
			ID:             inv.ID,
			SupplierName:   inv.SupplierName,
			SupplierTaxID:  inv.SupplierTaxID,
			IssueDate:      inv.IssueDate,
			DueDate:        inv.DueDate,
			TaxBase:        inv.Amounts.TaxBase,
			IVAPercentage:  inv.Amounts.VATRate,
			IRPFPercentage: inv.Amounts.IRPFRate,
			Category:       inv.Category,
			EstateID:       inv.EstateID,
			IsRefund:       inv.IsRefund,
		}
		if inv.Proportional != nil {
			start := inv.Proportional.Start
			end := inv.Proportional.End
			row.IsProportional = true
			row.PeriodStart = &start
			row.PeriodEnd = &end
		}
		rows[i] = row
	}
	return rows, nil
}

// IssuedInvoices fetches client invoices relevant to the period.
// Cancelled invoices never reach the repercutido book.
func (s *GormFiscalSource) IssuedInvoices(ctx context.Context, p fiscal.Period) ([]fiscal.IssuedInvoiceRow, error) {
	invoices, err := s.issuedRepo.FindInRange(ctx, billing.DateRangeFilter{From: p.Start, To: p.End})
	if err != nil {
		return nil, err
	}

	rows := make([]fiscal.IssuedInvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == billing.IssuedStatusCancelled {
			continue
		}
		row := fiscal.IssuedInvoiceRow{
			ID:             inv.ID,
			ClientName:     inv.ClientName,
			ClientTaxID:    inv.ClientTaxID,
			IssueDate:      inv.IssueDate,
			DueDate:        inv.DueDate,
			TaxBase:        inv.Amounts.TaxBase,
			IVAPercentage:  inv.Amounts.VATRate,
			IRPFPercentage: inv.Amounts.IRPFRate,
			Category:       inv.Category,
			EstateID:       inv.EstateID,
			IsRefund:       inv.IsRefund,
		}
		if inv.Proportional != nil {
			start := inv.Proportional.Start
			end := inv.Proportional.End
			row.IsProportional = true
			row.PeriodStart = &start
			row.PeriodEnd = &end
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// InternalExpenses fetches company expenses dated inside the period
func (s *GormFiscalSource) InternalExpenses(ctx context.Context, p fiscal.Period) ([]fiscal.InternalExpenseRow, error) {
	expenses, err := s.expenseRepo.FindInRange(ctx, billing.DateRangeFilter{From: p.Start, To: p.End})
	if err != nil {
		return nil, err
	}

	rows := make([]fiscal.InternalExpenseRow, len(expenses))
	for i, exp := range expenses {
		rows[i] = fiscal.InternalExpenseRow{
			ID:            exp.ID,
			PayeeName:     exp.PayeeName,
			PayeeTaxID:    exp.PayeeTaxID,
			ExpenseDate:   exp.ExpenseDate,
			TaxBase:       exp.TaxBase,
			IVAPercentage: exp.VATRate,
			Category:      exp.Category.String(),
			EstateID:      exp.EstateID,
		}
	}
	return rows, nil
}

// SharesForEstate resolves an estate's ownership table for allocation
func (s *GormFiscalSource) SharesForEstate(ctx context.Context, estateID uuid.UUID) ([]fiscal.OwnershipShare, error) {
	shares, err := s.estateRepo.SharesForEstate(ctx, estateID)
	if err != nil {
		return nil, err
	}

	out := make([]fiscal.OwnershipShare, len(shares))
	for i, sh := range shares {
		out[i] = fiscal.OwnershipShare{
			OwnerID:    sh.OwnerID,
			OwnerName:  sh.OwnerName,
			Percentage: sh.Percentage,
		}
	}
	return out, nil
}

// Ensure GormFiscalSource implements both source interfaces
var (
	_ fiscal.EntrySource     = (*GormFiscalSource)(nil)
	_ fiscal.OwnershipSource = (*GormFiscalSource)(nil)
)

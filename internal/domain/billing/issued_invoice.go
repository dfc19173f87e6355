package billing

import (
	"strings"
	"time"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IssuedInvoiceStatus tracks the collection state of an issued invoice
type IssuedInvoiceStatus string

const (
	IssuedStatusPending   IssuedInvoiceStatus = "PENDING"
	IssuedStatusPaid      IssuedInvoiceStatus = "PAID"
	IssuedStatusCancelled IssuedInvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid IssuedInvoiceStatus
func (s IssuedInvoiceStatus) IsValid() bool {
	switch s {
	case IssuedStatusPending, IssuedStatusPaid, IssuedStatusCancelled:
		return true
	}
	return false
}

// IssuedInvoice is a client invoice. It feeds the repercutido VAT book.
type IssuedInvoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string             `json:"invoice_number"`
	ClientID      uuid.UUID          `json:"client_id"`
	ClientName    string             `json:"client_name"`
	ClientTaxID   string             `json:"client_tax_id"`
	IssueDate     time.Time          `json:"issue_date"`
	DueDate       *time.Time         `json:"due_date,omitempty"`
	Amounts       FiscalAmounts      `json:"amounts"`
	Category      string             `json:"category"`
	EstateID      *uuid.UUID         `json:"estate_id,omitempty"`
	Proportional  *ProportionalRange `json:"proportional,omitempty"`
	IsRefund      bool               `json:"is_refund"`
	Status        IssuedInvoiceStatus `json:"status"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	Notes         string             `json:"notes"`
}

// NewIssuedInvoice creates an issued invoice aggregate
func NewIssuedInvoice(
	invoiceNumber string,
	clientID uuid.UUID,
	clientName, clientTaxID string,
	issueDate time.Time,
	taxBase, vatRate, irpfRate decimal.Decimal,
	category string,
) (*IssuedInvoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "invoice number is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "client is required")
	}
	if issueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "issue date is required")
	}
	amounts, err := newFiscalAmounts(taxBase, vatRate, irpfRate)
	if err != nil {
		return nil, err
	}
	return &IssuedInvoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		ClientID:          clientID,
		ClientName:        strings.TrimSpace(clientName),
		ClientTaxID:       strings.ToUpper(strings.TrimSpace(clientTaxID)),
		IssueDate:         issueDate,
		Amounts:           amounts,
		Category:          category,
		Status:            IssuedStatusPending,
	}, nil
}

// LinkEstate associates the invoice with a managed estate
func (i *IssuedInvoice) LinkEstate(estateID uuid.UUID) error {
	if estateID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "estate ID is required")
	}
	i.EstateID = &estateID
	return nil
}

// MarkProportional flags the invoice for day-based proration
func (i *IssuedInvoice) MarkProportional(start, end time.Time) error {
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
func (i *IssuedInvoice) MarkRefund() {
	i.IsRefund = true
}

// MarkPaid records the collection of the invoice
func (i *IssuedInvoice) MarkPaid(paidAt time.Time) error {
	if i.Status == IssuedStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "cancelled invoice cannot be paid")
	}
	i.Status = IssuedStatusPaid
	i.PaidAt = &paidAt
	return nil
}

// Cancel voids a pending invoice
func (i *IssuedInvoice) Cancel() error {
	if i.Status == IssuedStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "paid invoice cannot be cancelled; issue a refund")
	}
	i.Status = IssuedStatusCancelled
	return nil
}

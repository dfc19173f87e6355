package partner

import (
	"strings"

	"github.com/inmogest/backend/internal/domain/shared"
)

// SupplierCategory classifies the services a supplier provides
type SupplierCategory string

const (
	SupplierCategoryMaintenance SupplierCategory = "MAINTENANCE"
	SupplierCategoryUtilities   SupplierCategory = "UTILITIES"
	SupplierCategoryInsurance   SupplierCategory = "INSURANCE"
	SupplierCategoryCleaning    SupplierCategory = "CLEANING"
	SupplierCategoryLegal       SupplierCategory = "LEGAL"
	SupplierCategoryOther       SupplierCategory = "OTHER"
)

// IsValid checks if the category is a valid SupplierCategory
func (c SupplierCategory) IsValid() bool {
	switch c {
	case SupplierCategoryMaintenance, SupplierCategoryUtilities, SupplierCategoryInsurance,
		SupplierCategoryCleaning, SupplierCategoryLegal, SupplierCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of SupplierCategory
func (c SupplierCategory) String() string {
	return string(c)
}

// Supplier represents a vendor whose invoices feed the soportado VAT book
type Supplier struct {
	shared.BaseAggregateRoot
	Name       string           `json:"name"`
	TaxID      string           `json:"tax_id"` // NIF or CIF
	Category   SupplierCategory `json:"category"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Address    string           `json:"address"`
	City       string           `json:"city"`
	PostalCode string           `json:"postal_code"`
	IBAN       string           `json:"iban"`
	Notes      string           `json:"notes"`
	Active     bool             `json:"active"`
}

// NewSupplier creates a new supplier aggregate
func NewSupplier(name, taxID string, category SupplierCategory) (*Supplier, error) {
	name = strings.TrimSpace(name)
	taxID = strings.ToUpper(strings.TrimSpace(taxID))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "supplier name is required")
	}
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "supplier tax ID is required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid supplier category: "+category.String())
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		Category:          category,
		Active:            true,
	}, nil
}

// Update modifies the supplier's mutable fields
func (s *Supplier) Update(name string, category SupplierCategory, email, phone, address, city, postalCode, iban, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "supplier name is required")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "invalid supplier category: "+category.String())
	}
	s.Name = name
	s.Category = category
	s.Email = strings.TrimSpace(email)
	s.Phone = strings.TrimSpace(phone)
	s.Address = strings.TrimSpace(address)
	s.City = strings.TrimSpace(city)
	s.PostalCode = strings.TrimSpace(postalCode)
	s.IBAN = strings.ReplaceAll(strings.ToUpper(iban), " ", "")
	s.Notes = notes
	return nil
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.Active = false
}

// Activate marks the supplier as active
func (s *Supplier) Activate() {
	s.Active = true
}

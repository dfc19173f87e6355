package partner

import (
	"strings"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Owner represents a property owner whose estates the agency manages.
// Owners receive the redistributed VAT totals in the by-owner reports.
type Owner struct {
	shared.BaseAggregateRoot
	Name       string          `json:"name"`
	TaxID      string          `json:"tax_id"` // NIF
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	PostalCode string          `json:"postal_code"`
	IBAN       string          `json:"iban"`
	// IRPFRate is the withholding rate applied to rental income paid out
	// to this owner, as a percentage.
	IRPFRate decimal.Decimal `json:"irpf_rate"`
	Active   bool            `json:"active"`
}

// NewOwner creates a new owner aggregate
func NewOwner(name, taxID string, irpfRate decimal.Decimal) (*Owner, error) {
	name = strings.TrimSpace(name)
	taxID = strings.ToUpper(strings.TrimSpace(taxID))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "owner name is required")
	}
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "owner tax ID is required")
	}
	if irpfRate.IsNegative() || irpfRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "IRPF rate must be between 0 and 100")
	}
	return &Owner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		IRPFRate:          irpfRate,
		Active:            true,
	}, nil
}

// Update modifies the owner's mutable fields
func (o *Owner) Update(name, email, phone, address, city, postalCode, iban string, irpfRate decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "owner name is required")
	}
	if irpfRate.IsNegative() || irpfRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_INPUT", "IRPF rate must be between 0 and 100")
	}
	o.Name = name
	o.Email = strings.TrimSpace(email)
	o.Phone = strings.TrimSpace(phone)
	o.Address = strings.TrimSpace(address)
	o.City = strings.TrimSpace(city)
	o.PostalCode = strings.TrimSpace(postalCode)
	o.IBAN = strings.ReplaceAll(strings.ToUpper(iban), " ", "")
	o.IRPFRate = irpfRate
	return nil
}

// Deactivate marks the owner as inactive
func (o *Owner) Deactivate() {
	o.Active = false
}

// Activate marks the owner as active
func (o *Owner) Activate() {
	o.Active = true
}

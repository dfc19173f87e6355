package partner

import (
	"strings"

	"github.com/inmogest/backend/internal/domain/shared"
)

// Client represents a tenant or buyer the agency invoices on behalf of
// the estate owners.
type Client struct {
	shared.BaseAggregateRoot
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"` // NIF or CIF
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	PostalCode string `json:"postal_code"`
	IBAN      string `json:"iban"`
	Notes     string `json:"notes"`
	Active    bool   `json:"active"`
}

// NewClient creates a new client aggregate
func NewClient(name, taxID string) (*Client, error) {
	name = strings.TrimSpace(name)
	taxID = strings.ToUpper(strings.TrimSpace(taxID))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client name is required")
	}
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client tax ID is required")
	}
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		Active:            true,
	}, nil
}

// Update modifies the client's mutable fields
func (c *Client) Update(name, email, phone, address, city, postalCode, iban, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "client name is required")
	}
	c.Name = name
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.City = strings.TrimSpace(city)
	c.PostalCode = strings.TrimSpace(postalCode)
	c.IBAN = strings.ReplaceAll(strings.ToUpper(iban), " ", "")
	c.Notes = notes
	return nil
}

// Deactivate marks the client as inactive; inactive clients keep their
// invoice history but accept no new invoices.
func (c *Client) Deactivate() {
	c.Active = false
}

// Activate marks the client as active
func (c *Client) Activate() {
	c.Active = true
}

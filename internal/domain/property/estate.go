package property

import (
	"strings"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// shareTolerance is the rounding slack allowed when ownership percentages
// are checked against 100.
var shareTolerance = decimal.RequireFromString("0.01")

// OwnershipShare is one owner's percentage stake in an estate
type OwnershipShare struct {
	OwnerID    uuid.UUID       `json:"owner_id"`
	OwnerName  string          `json:"owner_name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Estate represents a managed property. Its ownership shares drive the
// by-owner redistribution of the VAT books.
type Estate struct {
	shared.BaseAggregateRoot
	Reference  string           `json:"reference"` // cadastral reference
	Address    string           `json:"address"`
	City       string           `json:"city"`
	PostalCode string           `json:"postal_code"`
	Notes      string           `json:"notes"`
	Shares     []OwnershipShare `json:"shares"`
	Active     bool             `json:"active"`
}

// NewEstate creates a new estate aggregate. The initial share table must
// already be complete: percentages summing to 100 within tolerance.
func NewEstate(reference, address, city, postalCode string, shares []OwnershipShare) (*Estate, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "estate cadastral reference is required")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "estate address is required")
	}
	if err := validateShares(shares); err != nil {
		return nil, err
	}
	return &Estate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         reference,
		Address:           strings.TrimSpace(address),
		City:              strings.TrimSpace(city),
		PostalCode:        strings.TrimSpace(postalCode),
		Shares:            shares,
		Active:            true,
	}, nil
}

// Update modifies the estate's descriptive fields
func (e *Estate) Update(address, city, postalCode, notes string) error {
	if strings.TrimSpace(address) == "" {
		return shared.NewDomainError("INVALID_INPUT", "estate address is required")
	}
	e.Address = strings.TrimSpace(address)
	e.City = strings.TrimSpace(city)
	e.PostalCode = strings.TrimSpace(postalCode)
	e.Notes = notes
	return nil
}

// ReplaceShares swaps the ownership table atomically after validating it
func (e *Estate) ReplaceShares(shares []OwnershipShare) error {
	if err := validateShares(shares); err != nil {
		return err
	}
	e.Shares = shares
	return nil
}

// ShareOf returns the percentage held by the given owner, zero when the
// owner holds no stake.
func (e *Estate) ShareOf(ownerID uuid.UUID) decimal.Decimal {
	for _, s := range e.Shares {
		if s.OwnerID == ownerID {
			return s.Percentage
		}
	}
	return decimal.Zero
}

// Deactivate marks the estate as no longer managed
func (e *Estate) Deactivate() {
	e.Active = false
}

// Activate marks the estate as managed
func (e *Estate) Activate() {
	e.Active = true
}

// validateShares enforces the share-table invariant: at least one owner,
// every percentage positive, no duplicate owners, and a total of 100
// within rounding tolerance.
func validateShares(shares []OwnershipShare) error {
	if len(shares) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "estate requires at least one ownership share")
	}
	seen := make(map[uuid.UUID]struct{}, len(shares))
	total := decimal.Zero
	for _, s := range shares {
		if s.OwnerID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "ownership share requires an owner")
		}
		if _, dup := seen[s.OwnerID]; dup {
			return shared.NewDomainError("INVALID_INPUT", "duplicate owner in share table")
		}
		seen[s.OwnerID] = struct{}{}
		if !s.Percentage.IsPositive() {
			return shared.NewDomainError("INVALID_INPUT", "ownership percentage must be positive")
		}
		total = total.Add(s.Percentage)
	}
	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(shareTolerance) {
		return shared.NewDomainError("INVALID_INPUT", "ownership percentages must sum to 100, got "+total.String())
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParsedShare is a validated entry of the default ownership table.
type ParsedShare struct {
	OwnerID    uuid.UUID
	OwnerName  string
	Percentage decimal.Decimal
}

// ParsedShares validates and parses the configured default ownership
// table. Called once at startup so a malformed table fails fast instead
// of surfacing inside a quarterly report.
func (f *FiscalConfig) ParsedShares() ([]ParsedShare, error) {
	if len(f.DefaultShares) == 0 {
		return nil, nil
	}

	shares := make([]ParsedShare, 0, len(f.DefaultShares))
	total := decimal.Zero
	for i, s := range f.DefaultShares {
		ownerID, err := uuid.Parse(s.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("fiscal.default_shares[%d]: invalid owner_id %q: %w", i, s.OwnerID, err)
		}
		pct, err := decimal.NewFromString(s.Percentage)
		if err != nil {
			return nil, fmt.Errorf("fiscal.default_shares[%d]: invalid percentage %q: %w", i, s.Percentage, err)
		}
		if !pct.IsPositive() {
			return nil, fmt.Errorf("fiscal.default_shares[%d]: percentage must be positive", i)
		}
		shares = append(shares, ParsedShare{OwnerID: ownerID, OwnerName: s.OwnerName, Percentage: pct})
		total = total.Add(pct)
	}

	tolerance := decimal.RequireFromString("0.01")
	if total.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(tolerance) {
		return nil, fmt.Errorf("fiscal.default_shares: percentages sum to %s, expected 100", total)
	}
	return shares, nil
}

package property

import (
	"time"

	"github.com/inmogest/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareInput is one owner's stake when creating or replacing the
// ownership table of an estate.
type ShareInput struct {
	OwnerID    uuid.UUID       `json:"owner_id" binding:"required"`
	OwnerName  string          `json:"owner_name" binding:"required,min=1,max=200"`
	Percentage decimal.Decimal `json:"percentage" binding:"required"`
}

// CreateEstateRequest represents a request to register a new estate
type CreateEstateRequest struct {
	Reference  string       `json:"reference" binding:"required,min=1,max=30"`
	Address    string       `json:"address" binding:"required,min=1,max=500"`
	City       string       `json:"city" binding:"max=100"`
	PostalCode string       `json:"postal_code" binding:"max=10"`
	Shares     []ShareInput `json:"shares" binding:"required,min=1,dive"`
}

// UpdateEstateRequest represents a request to update an estate
type UpdateEstateRequest struct {
	Address    *string `json:"address" binding:"omitempty,min=1,max=500"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=10"`
	Notes      *string `json:"notes"`
}

// ReplaceSharesRequest replaces the whole ownership table of an estate
type ReplaceSharesRequest struct {
	Shares []ShareInput `json:"shares" binding:"required,min=1,dive"`
}

// ShareResponse is one owner's stake in API responses
type ShareResponse struct {
	OwnerID    uuid.UUID       `json:"owner_id"`
	OwnerName  string          `json:"owner_name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// EstateResponse represents an estate in API responses
type EstateResponse struct {
	ID         uuid.UUID       `json:"id"`
	Reference  string          `json:"reference"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	PostalCode string          `json:"postal_code"`
	Notes      string          `json:"notes"`
	Shares     []ShareResponse `json:"shares"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToEstateResponse converts an estate aggregate to its response form
func ToEstateResponse(e *property.Estate) EstateResponse {
	shares := make([]ShareResponse, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = ShareResponse{OwnerID: s.OwnerID, OwnerName: s.OwnerName, Percentage: s.Percentage}
	}
	return EstateResponse{
		ID:         e.ID,
		Reference:  e.Reference,
		Address:    e.Address,
		City:       e.City,
		PostalCode: e.PostalCode,
		Notes:      e.Notes,
		Shares:     shares,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
		Version:    e.Version,
	}
}

// ToEstateResponses converts a slice of estates
func ToEstateResponses(estates []property.Estate) []EstateResponse {
	out := make([]EstateResponse, len(estates))
	for i := range estates {
		out[i] = ToEstateResponse(&estates[i])
	}
	return out
}

func toDomainShares(in []ShareInput) []property.OwnershipShare {
	shares := make([]property.OwnershipShare, len(in))
	for i, s := range in {
		shares[i] = property.OwnershipShare{OwnerID: s.OwnerID, OwnerName: s.OwnerName, Percentage: s.Percentage}
	}
	return shares
}

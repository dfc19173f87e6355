package partner

import (
	"time"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	TaxID      string `json:"tax_id" binding:"required,es_taxid"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
	Address    string `json:"address" binding:"max=500"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=10"`
	IBAN       string `json:"iban" binding:"max=34"`
	Notes      string `json:"notes"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email      *string `json:"email" binding:"omitempty,email,max=200"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Address    *string `json:"address" binding:"omitempty,max=500"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=10"`
	IBAN       *string `json:"iban" binding:"omitempty,max=34"`
	Notes      *string `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TaxID      string    `json:"tax_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	IBAN       string    `json:"iban"`
	Notes      string    `json:"notes"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToClientResponse converts a client aggregate to its response form
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Name:       c.Name,
		TaxID:      c.TaxID,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		IBAN:       c.IBAN,
		Notes:      c.Notes,
		Active:     c.Active,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Version:    c.Version,
	}
}

// ToClientResponses converts a slice of clients
func ToClientResponses(clients []partner.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

// =============================================================================
// Owner DTOs
// =============================================================================

// CreateOwnerRequest represents a request to create a new property owner
type CreateOwnerRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	TaxID      string          `json:"tax_id" binding:"required,es_taxid"`
	Email      string          `json:"email" binding:"omitempty,email,max=200"`
	Phone      string          `json:"phone" binding:"max=50"`
	Address    string          `json:"address" binding:"max=500"`
	City       string          `json:"city" binding:"max=100"`
	PostalCode string          `json:"postal_code" binding:"max=10"`
	IBAN       string          `json:"iban" binding:"max=34"`
	IRPFRate   decimal.Decimal `json:"irpf_rate"`
}

// UpdateOwnerRequest represents a request to update an owner
type UpdateOwnerRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email      *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone      *string          `json:"phone" binding:"omitempty,max=50"`
	Address    *string          `json:"address" binding:"omitempty,max=500"`
	City       *string          `json:"city" binding:"omitempty,max=100"`
	PostalCode *string          `json:"postal_code" binding:"omitempty,max=10"`
	IBAN       *string          `json:"iban" binding:"omitempty,max=34"`
	IRPFRate   *decimal.Decimal `json:"irpf_rate"`
}

// OwnerResponse represents an owner in API responses
type OwnerResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	TaxID      string          `json:"tax_id"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	PostalCode string          `json:"postal_code"`
	IBAN       string          `json:"iban"`
	IRPFRate   decimal.Decimal `json:"irpf_rate"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToOwnerResponse converts an owner aggregate to its response form
func ToOwnerResponse(o *partner.Owner) OwnerResponse {
	return OwnerResponse{
		ID:         o.ID,
		Name:       o.Name,
		TaxID:      o.TaxID,
		Email:      o.Email,
		Phone:      o.Phone,
		Address:    o.Address,
		City:       o.City,
		PostalCode: o.PostalCode,
		IBAN:       o.IBAN,
		IRPFRate:   o.IRPFRate,
		Active:     o.Active,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Version:    o.Version,
	}
}

// ToOwnerResponses converts a slice of owners
func ToOwnerResponses(owners []partner.Owner) []OwnerResponse {
	out := make([]OwnerResponse, len(owners))
	for i := range owners {
		out[i] = ToOwnerResponse(&owners[i])
	}
	return out
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create a new supplier
type CreateSupplierRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	TaxID      string `json:"tax_id" binding:"required,es_taxid"`
	Category   string `json:"category" binding:"required,oneof=MAINTENANCE UTILITIES INSURANCE CLEANING LEGAL OTHER"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
	Address    string `json:"address" binding:"max=500"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=10"`
	IBAN       string `json:"iban" binding:"max=34"`
	Notes      string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category   *string `json:"category" binding:"omitempty,oneof=MAINTENANCE UTILITIES INSURANCE CLEANING LEGAL OTHER"`
	Email      *string `json:"email" binding:"omitempty,email,max=200"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Address    *string `json:"address" binding:"omitempty,max=500"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=10"`
	IBAN       *string `json:"iban" binding:"omitempty,max=34"`
	Notes      *string `json:"notes"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TaxID      string    `json:"tax_id"`
	Category   string    `json:"category"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	IBAN       string    `json:"iban"`
	Notes      string    `json:"notes"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToSupplierResponse converts a supplier aggregate to its response form
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:         s.ID,
		Name:       s.Name,
		TaxID:      s.TaxID,
		Category:   s.Category.String(),
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
		IBAN:       s.IBAN,
		Notes:      s.Notes,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Version:    s.Version,
	}
}

// ToSupplierResponses converts a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		out[i] = ToSupplierResponse(&suppliers[i])
	}
	return out
}

// =============================================================================
// Employee DTOs
// =============================================================================

// CreateEmployeeRequest represents a request to create a new employee
type CreateEmployeeRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	TaxID       string          `json:"tax_id" binding:"required,es_taxid"`
	Position    string          `json:"position" binding:"required,max=100"`
	GrossSalary decimal.Decimal `json:"gross_salary" binding:"required"`
	IRPFRate    decimal.Decimal `json:"irpf_rate"`
	HiredAt     time.Time       `json:"hired_at" binding:"required"`
}

// UpdateEmployeeRequest represents a request to update an employee
type UpdateEmployeeRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email       *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Position    *string          `json:"position" binding:"omitempty,max=100"`
	GrossSalary *decimal.Decimal `json:"gross_salary"`
	IRPFRate    *decimal.Decimal `json:"irpf_rate"`
}

// TerminateEmployeeRequest carries the leave date for a termination
type TerminateEmployeeRequest struct {
	LeftAt time.Time `json:"left_at" binding:"required"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	TaxID       string          `json:"tax_id"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Position    string          `json:"position"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
	IRPFRate    decimal.Decimal `json:"irpf_rate"`
	HiredAt     time.Time       `json:"hired_at"`
	LeftAt      *time.Time      `json:"left_at,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToEmployeeResponse converts an employee aggregate to its response form
func ToEmployeeResponse(e *partner.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		TaxID:       e.TaxID,
		Email:       e.Email,
		Phone:       e.Phone,
		Position:    e.Position,
		GrossSalary: e.GrossSalary,
		IRPFRate:    e.IRPFRate,
		HiredAt:     e.HiredAt,
		LeftAt:      e.LeftAt,
		Active:      e.IsActive(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}

// ToEmployeeResponses converts a slice of employees
func ToEmployeeResponses(employees []partner.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = ToEmployeeResponse(&employees[i])
	}
	return out
}

// ListFilter carries common list query parameters
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
}

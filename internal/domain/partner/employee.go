package partner

import (
	"strings"
	"time"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Employee represents an agency employee. Payroll figures feed the
// internal expense records picked up by the soportado book.
type Employee struct {
	shared.BaseAggregateRoot
	Name        string          `json:"name"`
	TaxID       string          `json:"tax_id"` // NIF
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Position    string          `json:"position"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
	IRPFRate    decimal.Decimal `json:"irpf_rate"`
	HiredAt     time.Time       `json:"hired_at"`
	LeftAt      *time.Time      `json:"left_at,omitempty"`
}

// NewEmployee creates a new employee aggregate
func NewEmployee(name, taxID, position string, grossSalary, irpfRate decimal.Decimal, hiredAt time.Time) (*Employee, error) {
	name = strings.TrimSpace(name)
	taxID = strings.ToUpper(strings.TrimSpace(taxID))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "employee name is required")
	}
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "employee tax ID is required")
	}
	if grossSalary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "gross salary cannot be negative")
	}
	if irpfRate.IsNegative() || irpfRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_INPUT", "IRPF rate must be between 0 and 100")
	}
	if hiredAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "hire date is required")
	}
	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
		Position:          strings.TrimSpace(position),
		GrossSalary:       grossSalary,
		IRPFRate:          irpfRate,
		HiredAt:           hiredAt,
	}, nil
}

// Update modifies the employee's mutable fields
func (e *Employee) Update(name, email, phone, position string, grossSalary, irpfRate decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "employee name is required")
	}
	if grossSalary.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "gross salary cannot be negative")
	}
	if irpfRate.IsNegative() || irpfRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_INPUT", "IRPF rate must be between 0 and 100")
	}
	e.Name = name
	e.Email = strings.TrimSpace(email)
	e.Phone = strings.TrimSpace(phone)
	e.Position = strings.TrimSpace(position)
	e.GrossSalary = grossSalary
	e.IRPFRate = irpfRate
	return nil
}

// Terminate records the employee's leave date
func (e *Employee) Terminate(leftAt time.Time) error {
	if leftAt.Before(e.HiredAt) {
		return shared.NewDomainError("INVALID_STATE", "leave date cannot precede hire date")
	}
	e.LeftAt = &leftAt
	return nil
}

// IsActive reports whether the employee is currently employed
func (e *Employee) IsActive() bool {
	return e.LeftAt == nil
}

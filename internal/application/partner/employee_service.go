package partner

import (
	"context"
	"errors"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeService handles employee operations. Payroll itself flows
// through internal expenses; this service only manages the registry.
type EmployeeService struct {
	employeeRepo partner.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo partner.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create registers a new employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	_, err := s.employeeRepo.FindByTaxID(ctx, req.TaxID)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this tax ID already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	employee, err := partner.NewEmployee(req.Name, req.TaxID, req.Position, req.GrossSalary, req.IRPFRate, req.HiredAt)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List retrieves employees with filtering and pagination
func (s *EmployeeService) List(ctx context.Context, filter ListFilter) (shared.Paginated[EmployeeResponse], error) {
	domainFilter := toDomainFilter(filter)

	employees, err := s.employeeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[EmployeeResponse]{}, err
	}
	total, err := s.employeeRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[EmployeeResponse]{}, err
	}

	return shared.NewPaginated(ToEmployeeResponses(employees), total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update updates an employee
func (s *EmployeeService) Update(ctx context.Context, employeeID uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	name := stringOr(req.Name, employee.Name)
	email := stringOr(req.Email, employee.Email)
	phone := stringOr(req.Phone, employee.Phone)
	position := stringOr(req.Position, employee.Position)
	grossSalary := decimalOr(req.GrossSalary, employee.GrossSalary)
	irpfRate := decimalOr(req.IRPFRate, employee.IRPFRate)

	if err := employee.Update(name, email, phone, position, grossSalary, irpfRate); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Terminate records the employee's leave date
func (s *EmployeeService) Terminate(ctx context.Context, employeeID uuid.UUID, req TerminateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := employee.Terminate(req.LeftAt); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

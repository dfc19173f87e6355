package partner

import (
	"context"
	"errors"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	_, err := s.supplierRepo.FindByTaxID(ctx, req.TaxID)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this tax ID already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	supplier, err := partner.NewSupplier(req.Name, req.TaxID, partner.SupplierCategory(req.Category))
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(supplier.Name, supplier.Category, req.Email, req.Phone, req.Address, req.City, req.PostalCode, req.IBAN, req.Notes); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter ListFilter, category string) (shared.Paginated[SupplierResponse], error) {
	domainFilter := toDomainFilter(filter)

	var suppliers []partner.Supplier
	var err error
	if category != "" {
		suppliers, err = s.supplierRepo.FindByCategory(ctx, partner.SupplierCategory(category), domainFilter)
		domainFilter.Filters["category"] = category
	} else {
		suppliers, err = s.supplierRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}

	return shared.NewPaginated(ToSupplierResponses(suppliers), total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update updates a supplier
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	name := stringOr(req.Name, supplier.Name)
	category := supplier.Category
	if req.Category != nil {
		category = partner.SupplierCategory(*req.Category)
	}
	email := stringOr(req.Email, supplier.Email)
	phone := stringOr(req.Phone, supplier.Phone)
	address := stringOr(req.Address, supplier.Address)
	city := stringOr(req.City, supplier.City)
	postalCode := stringOr(req.PostalCode, supplier.PostalCode)
	iban := stringOr(req.IBAN, supplier.IBAN)
	notes := stringOr(req.Notes, supplier.Notes)

	if err := supplier.Update(name, category, email, phone, address, city, postalCode, iban, notes); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Deactivate marks a supplier as inactive
func (s *SupplierService) Deactivate(ctx context.Context, supplierID uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return err
	}
	supplier.Deactivate()
	return s.supplierRepo.Save(ctx, supplier)
}

// Activate re-enables a supplier
func (s *SupplierService) Activate(ctx context.Context, supplierID uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return err
	}
	supplier.Activate()
	return s.supplierRepo.Save(ctx, supplier)
}

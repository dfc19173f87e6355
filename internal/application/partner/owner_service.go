package partner

import (
	"context"
	"errors"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerService handles property owner operations
type OwnerService struct {
	ownerRepo partner.OwnerRepository
}

// NewOwnerService creates a new OwnerService
func NewOwnerService(ownerRepo partner.OwnerRepository) *OwnerService {
	return &OwnerService{ownerRepo: ownerRepo}
}

// Create creates a new owner
func (s *OwnerService) Create(ctx context.Context, req CreateOwnerRequest) (*OwnerResponse, error) {
	_, err := s.ownerRepo.FindByTaxID(ctx, req.TaxID)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Owner with this tax ID already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	owner, err := partner.NewOwner(req.Name, req.TaxID, req.IRPFRate)
	if err != nil {
		return nil, err
	}
	if err := owner.Update(owner.Name, req.Email, req.Phone, req.Address, req.City, req.PostalCode, req.IBAN, owner.IRPFRate); err != nil {
		return nil, err
	}

	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	response := ToOwnerResponse(owner)
	return &response, nil
}

// GetByID retrieves an owner by ID
func (s *OwnerService) GetByID(ctx context.Context, ownerID uuid.UUID) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	response := ToOwnerResponse(owner)
	return &response, nil
}

// List retrieves owners with filtering and pagination
func (s *OwnerService) List(ctx context.Context, filter ListFilter) (shared.Paginated[OwnerResponse], error) {
	domainFilter := toDomainFilter(filter)

	owners, err := s.ownerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[OwnerResponse]{}, err
	}
	total, err := s.ownerRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[OwnerResponse]{}, err
	}

	return shared.NewPaginated(ToOwnerResponses(owners), total, domainFilter.Page, domainFilter.PageSize), nil
}

// ListActive returns every active owner, used by the estate share editor
func (s *OwnerService) ListActive(ctx context.Context) ([]OwnerResponse, error) {
	owners, err := s.ownerRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToOwnerResponses(owners), nil
}

// Update updates an owner
func (s *OwnerService) Update(ctx context.Context, ownerID uuid.UUID, req UpdateOwnerRequest) (*OwnerResponse, error) {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	name := stringOr(req.Name, owner.Name)
	email := stringOr(req.Email, owner.Email)
	phone := stringOr(req.Phone, owner.Phone)
	address := stringOr(req.Address, owner.Address)
	city := stringOr(req.City, owner.City)
	postalCode := stringOr(req.PostalCode, owner.PostalCode)
	iban := stringOr(req.IBAN, owner.IBAN)
	irpfRate := decimalOr(req.IRPFRate, owner.IRPFRate)

	if err := owner.Update(name, email, phone, address, city, postalCode, iban, irpfRate); err != nil {
		return nil, err
	}
	if err := s.ownerRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	response := ToOwnerResponse(owner)
	return &response, nil
}

// Deactivate marks an owner as inactive. Historical allocations keep
// referencing the owner, so owners are never hard-deleted.
func (s *OwnerService) Deactivate(ctx context.Context, ownerID uuid.UUID) error {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}
	owner.Deactivate()
	return s.ownerRepo.Save(ctx, owner)
}

// Activate re-enables an owner
func (s *OwnerService) Activate(ctx context.Context, ownerID uuid.UUID) error {
	owner, err := s.ownerRepo.FindByID(ctx, ownerID)
	if err != nil {
		return err
	}
	owner.Activate()
	return s.ownerRepo.Save(ctx, owner)
}

func decimalOr(override *decimal.Decimal, current decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return current
}

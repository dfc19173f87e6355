package property

import (
	"context"
	"errors"

	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EstateService handles estate operations. Share table mutations
// invalidate cached fiscal reports through the invalidator hook.
type EstateService struct {
	estateRepo  property.EstateRepository
	invalidator CacheInvalidator
}

// CacheInvalidator drops derived report caches after a mutation. The
// fiscal report service satisfies this.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// NewEstateService creates a new EstateService. invalidator may be nil.
func NewEstateService(estateRepo property.EstateRepository, invalidator CacheInvalidator) *EstateService {
	return &EstateService{estateRepo: estateRepo, invalidator: invalidator}
}

// Create registers a new estate with its ownership table
func (s *EstateService) Create(ctx context.Context, req CreateEstateRequest) (*EstateResponse, error) {
	_, err := s.estateRepo.FindByReference(ctx, req.Reference)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Estate with this cadastral reference already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	estate, err := property.NewEstate(req.Reference, req.Address, req.City, req.PostalCode, toDomainShares(req.Shares))
	if err != nil {
		return nil, err
	}
	if err := s.estateRepo.Save(ctx, estate); err != nil {
		return nil, err
	}

	response := ToEstateResponse(estate)
	return &response, nil
}

// GetByID retrieves an estate by ID
func (s *EstateService) GetByID(ctx context.Context, estateID uuid.UUID) (*EstateResponse, error) {
	estate, err := s.estateRepo.FindByID(ctx, estateID)
	if err != nil {
		return nil, err
	}
	response := ToEstateResponse(estate)
	return &response, nil
}

// List retrieves estates with pagination
func (s *EstateService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[EstateResponse], error) {
	if filter.Page <= 0 || filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if filter.Page <= 0 {
			filter.Page = defaults.Page
		}
		if filter.PageSize <= 0 {
			filter.PageSize = defaults.PageSize
		}
	}

	estates, err := s.estateRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[EstateResponse]{}, err
	}
	total, err := s.estateRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[EstateResponse]{}, err
	}

	return shared.NewPaginated(ToEstateResponses(estates), total, filter.Page, filter.PageSize), nil
}

// ListByOwner returns the estates an owner holds a stake in
func (s *EstateService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]EstateResponse, error) {
	estates, err := s.estateRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToEstateResponses(estates), nil
}

// Update modifies the estate's descriptive fields
func (s *EstateService) Update(ctx context.Context, estateID uuid.UUID, req UpdateEstateRequest) (*EstateResponse, error) {
	estate, err := s.estateRepo.FindByID(ctx, estateID)
	if err != nil {
		return nil, err
	}

	address := estate.Address
	if req.Address != nil {
		address = *req.Address
	}
	city := estate.City
	if req.City != nil {
		city = *req.City
	}
	postalCode := estate.PostalCode
	if req.PostalCode != nil {
		postalCode = *req.PostalCode
	}
	notes := estate.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := estate.Update(address, city, postalCode, notes); err != nil {
		return nil, err
	}
	if err := s.estateRepo.Save(ctx, estate); err != nil {
		return nil, err
	}

	response := ToEstateResponse(estate)
	return &response, nil
}

// ReplaceShares swaps the estate's ownership table. Past fiscal reports
// are cached per period, so the cache is flushed afterwards.
func (s *EstateService) ReplaceShares(ctx context.Context, estateID uuid.UUID, req ReplaceSharesRequest) (*EstateResponse, error) {
	estate, err := s.estateRepo.FindByID(ctx, estateID)
	if err != nil {
		return nil, err
	}
	if err := estate.ReplaceShares(toDomainShares(req.Shares)); err != nil {
		return nil, err
	}
	if err := s.estateRepo.Save(ctx, estate); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	response := ToEstateResponse(estate)
	return &response, nil
}

// Deactivate marks an estate as no longer managed
func (s *EstateService) Deactivate(ctx context.Context, estateID uuid.UUID) error {
	estate, err := s.estateRepo.FindByID(ctx, estateID)
	if err != nil {
		return err
	}
	estate.Deactivate()
	return s.estateRepo.Save(ctx, estate)
}

// Activate re-enables an estate
func (s *EstateService) Activate(ctx context.Context, estateID uuid.UUID) error {
	estate, err := s.estateRepo.FindByID(ctx, estateID)
	if err != nil {
		return err
	}
	estate.Activate()
	return s.estateRepo.Save(ctx, estate)
}

func (s *EstateService) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateCache(ctx)
	}
}

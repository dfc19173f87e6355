package partner

import (
	"context"
	"errors"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	if err := s.checkTaxIDFree(ctx, req.TaxID); err != nil {
		return nil, err
	}

	client, err := partner.NewClient(req.Name, req.TaxID)
	if err != nil {
		return nil, err
	}
	if err := client.Update(client.Name, req.Email, req.Phone, req.Address, req.City, req.PostalCode, req.IBAN, req.Notes); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ListFilter) (shared.Paginated[ClientResponse], error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}
	total, err := s.clientRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ClientResponse]{}, err
	}

	return shared.NewPaginated(ToClientResponses(clients), total, domainFilter.Page, domainFilter.PageSize), nil
}

// Update updates a client
func (s *ClientService) Update(ctx context.Context, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	name := stringOr(req.Name, client.Name)
	email := stringOr(req.Email, client.Email)
	phone := stringOr(req.Phone, client.Phone)
	address := stringOr(req.Address, client.Address)
	city := stringOr(req.City, client.City)
	postalCode := stringOr(req.PostalCode, client.PostalCode)
	iban := stringOr(req.IBAN, client.IBAN)
	notes := stringOr(req.Notes, client.Notes)

	if err := client.Update(name, email, phone, address, city, postalCode, iban, notes); err != nil {
		return nil, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Deactivate marks a client as inactive without deleting its invoices
func (s *ClientService) Deactivate(ctx context.Context, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	client.Deactivate()
	return s.clientRepo.Save(ctx, client)
}

// Activate re-enables a client
func (s *ClientService) Activate(ctx context.Context, clientID uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	client.Activate()
	return s.clientRepo.Save(ctx, client)
}

func (s *ClientService) checkTaxIDFree(ctx context.Context, taxID string) error {
	_, err := s.clientRepo.FindByTaxID(ctx, taxID)
	if err == nil {
		return shared.NewDomainError("ALREADY_EXISTS", "Client with this tax ID already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}

// stringOr returns the override when set, the current value otherwise
func stringOr(override *string, current string) string {
	if override != nil {
		return *override
	}
	return current
}

// toDomainFilter applies list defaults and maps onto the shared filter
func toDomainFilter(f ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if f.Page > 0 {
		domainFilter.Page = f.Page
	}
	if f.PageSize > 0 {
		domainFilter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		domainFilter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		domainFilter.OrderDir = f.OrderDir
	}
	domainFilter.Search = f.Search
	if f.Active != nil {
		domainFilter.Filters["active"] = *f.Active
	}
	return domainFilter
}

package partner

import (
	"context"

	"github.com/inmogest/backend/internal/domain/shared"
)

// ClientRepository defines persistence operations for clients
type ClientRepository interface {
	shared.Repository[Client]
	FindByTaxID(ctx context.Context, taxID string) (*Client, error)
}

// OwnerRepository defines persistence operations for owners
type OwnerRepository interface {
	shared.Repository[Owner]
	FindByTaxID(ctx context.Context, taxID string) (*Owner, error)
	FindActive(ctx context.Context) ([]Owner, error)
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]
	FindByTaxID(ctx context.Context, taxID string) (*Supplier, error)
	FindByCategory(ctx context.Context, category SupplierCategory, filter shared.Filter) ([]Supplier, error)
}

// EmployeeRepository defines persistence operations for employees
type EmployeeRepository interface {
	shared.Repository[Employee]
	FindByTaxID(ctx context.Context, taxID string) (*Employee, error)
	FindActive(ctx context.Context) ([]Employee, error)
}

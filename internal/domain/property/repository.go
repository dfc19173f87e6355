package property

import (
	"context"

	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EstateRepository defines persistence operations for estates
type EstateRepository interface {
	shared.Repository[Estate]
	FindByReference(ctx context.Context, reference string) (*Estate, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Estate, error)
	// SharesForEstate returns the ownership table of one estate without
	// loading the whole aggregate; the fiscal module reads shares through
	// this during owner allocation.
	SharesForEstate(ctx context.Context, estateID uuid.UUID) ([]OwnershipShare, error)
}

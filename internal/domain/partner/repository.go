package partner

import (
	"context"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BuyerRepository defines persistence operations for buyers
type BuyerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Buyer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Buyer, int64, error)
	Save(ctx context.Context, buyer *Buyer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrganizationRepository defines persistence operations for organizations
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, int64, error)
	Save(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package catalog

import (
	"context"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for catalog items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, int64, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

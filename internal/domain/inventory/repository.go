package inventory

import (
	"context"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WarehouseRepository defines persistence operations for warehouses.
// SaveWithLock performs a compare-and-swap on the aggregate version and
// returns shared.ErrConcurrencyConflict when another writer got there first.
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, int64, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	SaveWithLock(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
}

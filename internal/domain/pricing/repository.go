package pricing

import (
	"context"
	"time"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PriceQuoteRepository defines persistence operations for price quotes
type PriceQuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PriceQuote, error)
	// FindForDay returns the quote whose day window contains at, or
	// shared.ErrNotFound when no quote exists for that day.
	FindForDay(ctx context.Context, warehouseID, itemID uuid.UUID, at time.Time) (*PriceQuote, error)
	// FindByWarehouse lists the warehouse quotes whose day window contains at.
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, at time.Time, filter shared.Filter) ([]PriceQuote, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PriceQuote, int64, error)
	Save(ctx context.Context, quote *PriceQuote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

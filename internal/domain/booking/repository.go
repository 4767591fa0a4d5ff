package booking

import (
	"context"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookingRepository defines persistence operations for bookings
type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Booking, int64, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]Booking, int64, error)
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Booking, int64, error)
	Save(ctx context.Context, booking *Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package persistence

import (
	"context"
	"errors"

	"github.com/depot/backend/internal/domain/booking"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookingRepository implements BookingRepository using GORM
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID loads a booking with its lines
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindAll lists bookings, newest first
func (r *GormBookingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]booking.Booking, int64, error) {
	return r.findWhere(ctx, filter, nil)
}

// FindByWarehouse lists bookings for one warehouse
func (r *GormBookingRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]booking.Booking, int64, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("warehouse_id = ?", warehouseID)
	})
}

// FindByBuyer lists bookings for one buyer
func (r *GormBookingRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]booking.Booking, int64, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("buyer_id = ?", buyerID)
	})
}

func (r *GormBookingRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]booking.Booking, int64, error) {
	filter.Normalize()

	countQuery := r.db.WithContext(ctx).Model(&booking.Booking{})
	listQuery := r.db.WithContext(ctx).Preload("Items")
	if scope != nil {
		countQuery = scope(countQuery)
		listQuery = scope(listQuery)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []booking.Booking
	if err := listQuery.
		Order("bargain_date desc").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// Save creates or updates a booking and replaces its lines
func (r *GormBookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(b).Error; err != nil {
			return err
		}
		if err := tx.Delete(&booking.BookingItem{}, "booking_id = ?", b.ID).Error; err != nil {
			return err
		}
		if len(b.Items) > 0 {
			return tx.Create(&b.Items).Error
		}
		return nil
	})
}

// Delete removes a booking and its lines
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&booking.BookingItem{}, "booking_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&booking.Booking{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/depot/backend/internal/domain/pricing"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPriceQuoteRepository implements PriceQuoteRepository using GORM
type GormPriceQuoteRepository struct {
	db *gorm.DB
}

// NewGormPriceQuoteRepository creates a new GormPriceQuoteRepository
func NewGormPriceQuoteRepository(db *gorm.DB) *GormPriceQuoteRepository {
	return &GormPriceQuoteRepository{db: db}
}

// FindByID finds a price quote by its ID
func (r *GormPriceQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PriceQuote, error) {
	var quote pricing.PriceQuote
	if err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindForDay finds the quote whose UTC day window contains at
func (r *GormPriceQuoteRepository) FindForDay(ctx context.Context, warehouseID, itemID uuid.UUID, at time.Time) (*pricing.PriceQuote, error) {
	start, end := pricing.DayWindow(at)

	var quote pricing.PriceQuote
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND item_id = ? AND price_day >= ? AND price_day < ?",
			warehouseID, itemID, start, end).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindByWarehouse lists the warehouse quotes whose day window contains at
func (r *GormPriceQuoteRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, at time.Time, filter shared.Filter) ([]pricing.PriceQuote, int64, error) {
	filter.Normalize()
	start, end := pricing.DayWindow(at)

	var total int64
	if err := r.db.WithContext(ctx).Model(&pricing.PriceQuote{}).
		Where("warehouse_id = ? AND price_day >= ? AND price_day < ?", warehouseID, start, end).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []pricing.PriceQuote
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND price_day >= ? AND price_day < ?", warehouseID, start, end).
		Order("quoted_at desc").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&quotes).Error; err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// FindAll lists all quotes, newest day first
func (r *GormPriceQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.PriceQuote, int64, error) {
	filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&pricing.PriceQuote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []pricing.PriceQuote
	if err := r.db.WithContext(ctx).
		Order("price_day desc").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&quotes).Error; err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// Save creates a price quote. The unique index on warehouse, item and day
// surfaces racing duplicates as gorm.ErrDuplicatedKey.
func (r *GormPriceQuoteRepository) Save(ctx context.Context, quote *pricing.PriceQuote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

// Delete removes a price quote
func (r *GormPriceQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pricing.PriceQuote{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

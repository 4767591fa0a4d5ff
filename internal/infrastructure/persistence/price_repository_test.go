package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/depot/backend/internal/domain/pricing"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPriceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&pricing.PriceQuote{})
	require.NoError(t, err)

	return db
}

func newQuote(t *testing.T, warehouseID, itemID uuid.UUID, at time.Time) *pricing.PriceQuote {
	q, err := pricing.NewPriceQuote(warehouseID, itemID, at,
		decimal.NewFromInt(100), decimal.NewFromInt(95), decimal.NewFromInt(90), decimal.NewFromInt(85))
	require.NoError(t, err)
	return q
}

func TestPriceRepositoryFindForDay(t *testing.T) {
	db := setupPriceTestDB(t)
	repo := NewGormPriceQuoteRepository(db)
	ctx := context.Background()

	warehouseID, itemID := uuid.New(), uuid.New()
	quoted := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newQuote(t, warehouseID, itemID, quoted)))

	found, err := repo.FindForDay(ctx, warehouseID, itemID, time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, found.CompanyPrice.Equal(decimal.NewFromInt(100)))

	_, err = repo.FindForDay(ctx, warehouseID, itemID, time.Date(2026, 3, 16, 1, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindForDay(ctx, uuid.New(), itemID, quoted)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPriceRepositoryUniquePerDay(t *testing.T) {
	db := setupPriceTestDB(t)
	repo := NewGormPriceQuoteRepository(db)
	ctx := context.Background()

	warehouseID, itemID := uuid.New(), uuid.New()
	morning := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, newQuote(t, warehouseID, itemID, morning)))

	err := repo.Save(ctx, newQuote(t, warehouseID, itemID, evening))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// different day, item or warehouse is fine
	require.NoError(t, repo.Save(ctx, newQuote(t, warehouseID, itemID, morning.AddDate(0, 0, 1))))
	require.NoError(t, repo.Save(ctx, newQuote(t, warehouseID, uuid.New(), morning)))
	require.NoError(t, repo.Save(ctx, newQuote(t, uuid.New(), itemID, morning)))
}

func TestPriceRepositoryFindByWarehouseDayWindow(t *testing.T) {
	db := setupPriceTestDB(t)
	repo := NewGormPriceQuoteRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	day := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	// three items quoted on the same day, one quoted the day before,
	// and another warehouse quoted the same day
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, newQuote(t, warehouseID, uuid.New(), day)))
	}
	require.NoError(t, repo.Save(ctx, newQuote(t, warehouseID, uuid.New(), day.AddDate(0, 0, -1))))
	require.NoError(t, repo.Save(ctx, newQuote(t, uuid.New(), uuid.New(), day)))

	quotes, total, err := repo.FindByWarehouse(ctx, warehouseID,
		time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, quotes, 3)
	for _, q := range quotes {
		assert.Equal(t, warehouseID, q.WarehouseID)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), q.PriceDay)
	}

	_, total, err = repo.FindByWarehouse(ctx, warehouseID,
		day.AddDate(0, 0, 1), shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestPriceRepositoryDelete(t *testing.T) {
	db := setupPriceTestDB(t)
	repo := NewGormPriceQuoteRepository(db)
	ctx := context.Background()

	q := newQuote(t, uuid.New(), uuid.New(), time.Now())
	require.NoError(t, repo.Save(ctx, q))
	require.NoError(t, repo.Delete(ctx, q.ID))
	assert.ErrorIs(t, repo.Delete(ctx, q.ID), shared.ErrNotFound)
}

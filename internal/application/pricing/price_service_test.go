package pricing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/depot/backend/internal/domain/catalog"
	"github.com/depot/backend/internal/domain/inventory"
	"github.com/depot/backend/internal/domain/pricing"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriceRepo struct {
	quotes map[uuid.UUID]*pricing.PriceQuote
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{quotes: make(map[uuid.UUID]*pricing.PriceQuote)}
}

func (r *fakePriceRepo) FindByID(_ context.Context, id uuid.UUID) (*pricing.PriceQuote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return q, nil
}

func (r *fakePriceRepo) FindForDay(_ context.Context, warehouseID, itemID uuid.UUID, at time.Time) (*pricing.PriceQuote, error) {
	start, end := pricing.DayWindow(at)
	for _, q := range r.quotes {
		if q.WarehouseID == warehouseID && q.ItemID == itemID &&
			!q.PriceDay.Before(start) && q.PriceDay.Before(end) {
			return q, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePriceRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID, at time.Time, _ shared.Filter) ([]pricing.PriceQuote, int64, error) {
	start, end := pricing.DayWindow(at)
	var out []pricing.PriceQuote
	for _, q := range r.quotes {
		if q.WarehouseID == warehouseID && !q.PriceDay.Before(start) && q.PriceDay.Before(end) {
			out = append(out, *q)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePriceRepo) FindAll(_ context.Context, _ shared.Filter) ([]pricing.PriceQuote, int64, error) {
	var out []pricing.PriceQuote
	for _, q := range r.quotes {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceDay.After(out[j].PriceDay) })
	return out, int64(len(out)), nil
}

func (r *fakePriceRepo) Save(_ context.Context, q *pricing.PriceQuote) error {
	r.quotes[q.ID] = q
	return nil
}

func (r *fakePriceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

type fakeWarehouseRepo struct {
	warehouses map[uuid.UUID]*inventory.Warehouse
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return w, nil
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Warehouse, int64, error) {
	return nil, 0, nil
}

func (r *fakeWarehouseRepo) Save(_ context.Context, w *inventory.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) SaveWithLock(_ context.Context, w *inventory.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.warehouses, id)
	return nil
}

type fakeItemRepo struct {
	items map[uuid.UUID]*catalog.Item
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	var out []catalog.Item
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Item, int64, error) {
	return nil, 0, nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *catalog.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

type priceFixture struct {
	service   *PriceService
	warehouse *inventory.Warehouse
	item      *catalog.Item
}

func newPriceFixture(t *testing.T) *priceFixture {
	warehouse, err := inventory.NewWarehouse("Main Depot", "Pune")
	require.NoError(t, err)
	item, err := catalog.NewItem("Adhesive 5kg", catalog.PackagingTin, "adhesive",
		decimal.NewFromInt(5), decimal.NewFromInt(120))
	require.NoError(t, err)

	service := NewPriceService(
		newFakePriceRepo(),
		&fakeWarehouseRepo{warehouses: map[uuid.UUID]*inventory.Warehouse{warehouse.ID: warehouse}},
		&fakeItemRepo{items: map[uuid.UUID]*catalog.Item{item.ID: item}},
	)
	return &priceFixture{service: service, warehouse: warehouse, item: item}
}

func (f *priceFixture) request() AddPriceRequest {
	return AddPriceRequest{
		WarehouseID:  f.warehouse.ID,
		ItemID:       f.item.ID,
		CompanyPrice: decimal.NewFromInt(100),
		RackPrice:    decimal.NewFromInt(95),
		PlantPrice:   decimal.NewFromInt(90),
		DepoPrice:    decimal.NewFromInt(85),
	}
}

func TestPriceServiceAddPrice(t *testing.T) {
	f := newPriceFixture(t)
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	resp, err := f.service.AddPrice(context.Background(), f.request(), at)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), resp.PriceDay)
	assert.True(t, resp.CompanyPrice.Equal(decimal.NewFromInt(100)))
}

func TestPriceServiceAddPriceDuplicateDay(t *testing.T) {
	f := newPriceFixture(t)
	morning := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 15, 21, 0, 0, 0, time.UTC)

	_, err := f.service.AddPrice(context.Background(), f.request(), morning)
	require.NoError(t, err)

	_, err = f.service.AddPrice(context.Background(), f.request(), evening)
	assert.True(t, shared.IsCode(err, shared.CodeDuplicatePrice))
}

func TestPriceServiceAddPriceNextDay(t *testing.T) {
	f := newPriceFixture(t)
	today := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 16, 0, 30, 0, 0, time.UTC)

	_, err := f.service.AddPrice(context.Background(), f.request(), today)
	require.NoError(t, err)

	resp, err := f.service.AddPrice(context.Background(), f.request(), tomorrow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), resp.PriceDay)
}

func TestPriceServiceAddPriceUnknownReferences(t *testing.T) {
	f := newPriceFixture(t)
	at := time.Now()

	req := f.request()
	req.WarehouseID = uuid.New()
	_, err := f.service.AddPrice(context.Background(), req, at)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	req = f.request()
	req.ItemID = uuid.New()
	_, err = f.service.AddPrice(context.Background(), req, at)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))
}

func TestPriceServiceGetItemPrice(t *testing.T) {
	f := newPriceFixture(t)
	quoted := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	_, err := f.service.AddPrice(context.Background(), f.request(), quoted)
	require.NoError(t, err)

	// any instant in the same UTC day resolves to the quote
	resp, err := f.service.GetItemPrice(context.Background(), f.warehouse.ID, f.item.ID,
		time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Adhesive 5kg", resp.ItemName)

	// the next day has no quote
	_, err = f.service.GetItemPrice(context.Background(), f.warehouse.ID, f.item.ID,
		time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))
}

func TestPriceServiceGetPricesByWarehouse(t *testing.T) {
	f := newPriceFixture(t)
	for day := 10; day <= 12; day++ {
		_, err := f.service.AddPrice(context.Background(), f.request(),
			time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}

	// only the quote for the requested day comes back
	quotes, total, err := f.service.GetPricesByWarehouse(context.Background(), f.warehouse.ID,
		time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, quotes, 1)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), quotes[0].PriceDay)
}

func TestPriceServiceGetPricesByWarehouseEmpty(t *testing.T) {
	f := newPriceFixture(t)
	quoted := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	_, err := f.service.AddPrice(context.Background(), f.request(), quoted)
	require.NoError(t, err)

	// a day with no quotes is NOT_FOUND even when other days have prices
	_, _, err = f.service.GetPricesByWarehouse(context.Background(), f.warehouse.ID,
		quoted.AddDate(0, 0, 1), 1, 20)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))

	_, _, err = f.service.GetPricesByWarehouse(context.Background(), uuid.New(), quoted, 1, 20)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))
}

func TestPriceServiceDeletePrice(t *testing.T) {
	f := newPriceFixture(t)
	resp, err := f.service.AddPrice(context.Background(), f.request(), time.Now())
	require.NoError(t, err)

	require.NoError(t, f.service.DeletePrice(context.Background(), resp.ID))

	err = f.service.DeletePrice(context.Background(), resp.ID)
	assert.True(t, shared.IsCode(err, shared.CodeNotFound))
}

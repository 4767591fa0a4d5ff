package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apppricing "github.com/depot/backend/internal/application/pricing"
	"github.com/depot/backend/internal/domain/catalog"
	"github.com/depot/backend/internal/domain/inventory"
	"github.com/depot/backend/internal/domain/pricing"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/depot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock repositories shared by the handler tests in this package

type mockWarehouseRepository struct {
	warehouses map[uuid.UUID]*inventory.Warehouse
	returnErr  error
}

func newMockWarehouseRepository() *mockWarehouseRepository {
	return &mockWarehouseRepository{warehouses: make(map[uuid.UUID]*inventory.Warehouse)}
}

func (m *mockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if w, ok := m.warehouses[id]; ok {
		return w, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Warehouse, int64, error) {
	if m.returnErr != nil {
		return nil, 0, m.returnErr
	}
	var result []inventory.Warehouse
	for _, w := range m.warehouses {
		result = append(result, *w)
	}
	return result, int64(len(result)), nil
}

func (m *mockWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.warehouses[warehouse.ID] = warehouse
	return nil
}

func (m *mockWarehouseRepository) SaveWithLock(ctx context.Context, warehouse *inventory.Warehouse) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	warehouse.IncrementVersion()
	m.warehouses[warehouse.ID] = warehouse
	return nil
}

func (m *mockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.warehouses, id)
	return nil
}

type mockItemRepository struct {
	items     map[uuid.UUID]*catalog.Item
	returnErr error
}

func newMockItemRepository() *mockItemRepository {
	return &mockItemRepository{items: make(map[uuid.UUID]*catalog.Item)}
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Item, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	var result []catalog.Item
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	if m.returnErr != nil {
		return nil, 0, m.returnErr
	}
	var result []catalog.Item
	for _, item := range m.items {
		result = append(result, *item)
	}
	return result, int64(len(result)), nil
}

func (m *mockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

type mockPriceQuoteRepository struct {
	quotes    map[uuid.UUID]*pricing.PriceQuote
	returnErr error
}

func newMockPriceQuoteRepository() *mockPriceQuoteRepository {
	return &mockPriceQuoteRepository{quotes: make(map[uuid.UUID]*pricing.PriceQuote)}
}

func (m *mockPriceQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.PriceQuote, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if q, ok := m.quotes[id]; ok {
		return q, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockPriceQuoteRepository) FindForDay(ctx context.Context, warehouseID, itemID uuid.UUID, at time.Time) (*pricing.PriceQuote, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	start, end := pricing.DayWindow(at)
	for _, q := range m.quotes {
		if q.WarehouseID == warehouseID && q.ItemID == itemID &&
			!q.PriceDay.Before(start) && q.PriceDay.Before(end) {
			return q, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockPriceQuoteRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, at time.Time, filter shared.Filter) ([]pricing.PriceQuote, int64, error) {
	if m.returnErr != nil {
		return nil, 0, m.returnErr
	}
	start, end := pricing.DayWindow(at)
	var result []pricing.PriceQuote
	for _, q := range m.quotes {
		if q.WarehouseID == warehouseID && !q.PriceDay.Before(start) && q.PriceDay.Before(end) {
			result = append(result, *q)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockPriceQuoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pricing.PriceQuote, int64, error) {
	if m.returnErr != nil {
		return nil, 0, m.returnErr
	}
	var result []pricing.PriceQuote
	for _, q := range m.quotes {
		result = append(result, *q)
	}
	return result, int64(len(result)), nil
}

func (m *mockPriceQuoteRepository) Save(ctx context.Context, quote *pricing.PriceQuote) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mockPriceQuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.quotes, id)
	return nil
}

func setupPriceTestHandler() (*PriceHandler, *mockPriceQuoteRepository, *mockWarehouseRepository, *mockItemRepository) {
	gin.SetMode(gin.TestMode)

	priceRepo := newMockPriceQuoteRepository()
	warehouseRepo := newMockWarehouseRepository()
	itemRepo := newMockItemRepository()

	service := apppricing.NewPriceService(priceRepo, warehouseRepo, itemRepo)
	handler := NewPriceHandler(service)

	return handler, priceRepo, warehouseRepo, itemRepo
}

func createTestItem(name string) *catalog.Item {
	item, _ := catalog.NewItem(name, catalog.PackagingBox, "cement", decimal.NewFromInt(50), decimal.NewFromInt(350))
	return item
}

// Tests

func TestPriceHandler_Add_Success(t *testing.T) {
	handler, _, warehouseRepo, itemRepo := setupPriceTestHandler()

	warehouse, _ := inventory.NewWarehouse("Main Depot", "Pune")
	warehouseRepo.warehouses[warehouse.ID] = warehouse
	item := createTestItem("OPC 53")
	itemRepo.items[item.ID] = item

	reqBody := apppricing.AddPriceRequest{
		WarehouseID:  warehouse.ID,
		ItemID:       item.ID,
		CompanyPrice: decimal.NewFromInt(340),
		RackPrice:    decimal.NewFromInt(355),
		PlantPrice:   decimal.NewFromInt(330),
		DepoPrice:    decimal.NewFromInt(360),
	}
	body, _ := json.Marshal(reqBody)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/prices", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Add(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestPriceHandler_Add_DuplicateDay(t *testing.T) {
	handler, priceRepo, warehouseRepo, itemRepo := setupPriceTestHandler()

	warehouse, _ := inventory.NewWarehouse("Main Depot", "Pune")
	warehouseRepo.warehouses[warehouse.ID] = warehouse
	item := createTestItem("OPC 53")
	itemRepo.items[item.ID] = item

	existing, _ := pricing.NewPriceQuote(warehouse.ID, item.ID, time.Now(),
		decimal.NewFromInt(340), decimal.NewFromInt(355), decimal.NewFromInt(330), decimal.NewFromInt(360))
	priceRepo.quotes[existing.ID] = existing

	reqBody := apppricing.AddPriceRequest{
		WarehouseID:  warehouse.ID,
		ItemID:       item.ID,
		CompanyPrice: decimal.NewFromInt(345),
	}
	body, _ := json.Marshal(reqBody)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/prices", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Add(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeDuplicatePrice, resp.Error.Code)
}

func TestPriceHandler_Add_UnknownWarehouse(t *testing.T) {
	handler, _, _, _ := setupPriceTestHandler()

	reqBody := apppricing.AddPriceRequest{
		WarehouseID:  uuid.New(),
		ItemID:       uuid.New(),
		CompanyPrice: decimal.NewFromInt(340),
	}
	body, _ := json.Marshal(reqBody)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/prices", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Add(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPriceHandler_GetItemPrice_Success(t *testing.T) {
	handler, priceRepo, warehouseRepo, itemRepo := setupPriceTestHandler()

	warehouse, _ := inventory.NewWarehouse("Main Depot", "Pune")
	warehouseRepo.warehouses[warehouse.ID] = warehouse
	item := createTestItem("OPC 53")
	itemRepo.items[item.ID] = item

	quote, _ := pricing.NewPriceQuote(warehouse.ID, item.ID, time.Now(),
		decimal.NewFromInt(340), decimal.NewFromInt(355), decimal.NewFromInt(330), decimal.NewFromInt(360))
	priceRepo.quotes[quote.ID] = quote

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/prices/warehouse/"+warehouse.ID.String()+"/item/"+item.ID.String(), nil)
	c.Params = gin.Params{
		{Key: "id", Value: warehouse.ID.String()},
		{Key: "itemId", Value: item.ID.String()},
	}

	handler.GetItemPrice(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "OPC 53", data["item_name"])
}

func TestPriceHandler_GetItemPrice_NotQuotedToday(t *testing.T) {
	handler, _, _, _ := setupPriceTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/prices/warehouse/x/item/y", nil)
	c.Params = gin.Params{
		{Key: "id", Value: uuid.New().String()},
		{Key: "itemId", Value: uuid.New().String()},
	}

	handler.GetItemPrice(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPriceHandler_GetItemPrice_InvalidAt(t *testing.T) {
	handler, _, _, _ := setupPriceTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/prices/warehouse/x/item/y?at=yesterday", nil)
	c.Params = gin.Params{
		{Key: "id", Value: uuid.New().String()},
		{Key: "itemId", Value: uuid.New().String()},
	}

	handler.GetItemPrice(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPriceHandler_GetByWarehouse_Today(t *testing.T) {
	handler, priceRepo, warehouseRepo, itemRepo := setupPriceTestHandler()

	warehouse, _ := inventory.NewWarehouse("Main Depot", "Pune")
	warehouseRepo.warehouses[warehouse.ID] = warehouse
	item := createTestItem("OPC 53")
	itemRepo.items[item.ID] = item

	today, _ := pricing.NewPriceQuote(warehouse.ID, item.ID, time.Now(),
		decimal.NewFromInt(340), decimal.NewFromInt(355), decimal.NewFromInt(330), decimal.NewFromInt(360))
	priceRepo.quotes[today.ID] = today
	yesterday, _ := pricing.NewPriceQuote(warehouse.ID, item.ID, time.Now().AddDate(0, 0, -1),
		decimal.NewFromInt(300), decimal.NewFromInt(315), decimal.NewFromInt(290), decimal.NewFromInt(320))
	priceRepo.quotes[yesterday.ID] = yesterday

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/prices/warehouse/"+warehouse.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: warehouse.ID.String()}}

	handler.GetByWarehouse(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestPriceHandler_GetByWarehouse_Empty(t *testing.T) {
	handler, _, warehouseRepo, _ := setupPriceTestHandler()

	warehouse, _ := inventory.NewWarehouse("Main Depot", "Pune")
	warehouseRepo.warehouses[warehouse.ID] = warehouse

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/prices/warehouse/"+warehouse.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: warehouse.ID.String()}}

	handler.GetByWarehouse(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPriceHandler_Delete_InvalidID(t *testing.T) {
	handler, _, _, _ := setupPriceTestHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/prices/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	handler.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

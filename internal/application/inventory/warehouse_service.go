package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/catalog"
	"github.com/depot/backend/internal/domain/inventory"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxIntakeRetries bounds retries after losing the warehouse version race
const maxIntakeRetries = 3

// CreateWarehouseRequest is the payload for registering a warehouse
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// StockIntakeRequest adds stock to one bucket of a warehouse
type StockIntakeRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Billed   bool            `json:"billed"`
}

// BucketEntryResponse is one item's quantity in a stock bucket
type BucketEntryResponse struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
}

// SoldEntryResponse is one item's committed quantities
type SoldEntryResponse struct {
	ItemID          uuid.UUID       `json:"item_id"`
	ItemName        string          `json:"item_name,omitempty"`
	BilledQuantity  decimal.Decimal `json:"billed_quantity"`
	VirtualQuantity decimal.Decimal `json:"virtual_quantity"`
}

// WarehouseResponse is the API view of a warehouse and its buckets
type WarehouseResponse struct {
	ID               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Location         string                `json:"location"`
	VirtualInventory []BucketEntryResponse `json:"virtual_inventory"`
	BilledInventory  []BucketEntryResponse `json:"billed_inventory"`
	SoldInventory    []SoldEntryResponse   `json:"sold_inventory"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// WarehouseService handles warehouse registration and stock intake
type WarehouseService struct {
	warehouseRepo inventory.WarehouseRepository
	itemRepo      catalog.ItemRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo inventory.WarehouseRepository, itemRepo catalog.ItemRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo, itemRepo: itemRepo}
}

// Create registers a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := inventory.NewWarehouse(req.Name, req.Location)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, warehouse), nil
}

// GetByID retrieves a warehouse with all its stock buckets
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Warehouse %s not found", id))
		}
		return nil, err
	}
	return s.toResponse(ctx, warehouse), nil
}

// List retrieves warehouses with pagination
func (s *WarehouseService) List(ctx context.Context, page, pageSize int) ([]WarehouseResponse, int64, error) {
	f := shared.Filter{Page: page, PageSize: pageSize}
	f.Normalize()
	warehouses, total, err := s.warehouseRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, *s.toResponse(ctx, &warehouses[i]))
	}
	return responses, total, nil
}

// AddStock adds incoming stock to the virtual or billed bucket. The write
// retries on a lost version race since intake commutes with other writers.
func (s *WarehouseService) AddStock(ctx context.Context, warehouseID uuid.UUID, req StockIntakeRequest) (*WarehouseResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Item %s not found", req.ItemID))
		}
		return nil, err
	}

	var warehouse *inventory.Warehouse
	var lastErr error
	for attempt := 0; attempt < maxIntakeRetries; attempt++ {
		warehouse, lastErr = s.warehouseRepo.FindByID(ctx, warehouseID)
		if lastErr != nil {
			if errors.Is(lastErr, shared.ErrNotFound) {
				return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Warehouse %s not found", warehouseID))
			}
			return nil, lastErr
		}
		if req.Billed {
			lastErr = warehouse.AddBilledStock(req.ItemID, req.Quantity)
		} else {
			lastErr = warehouse.AddVirtualStock(req.ItemID, req.Quantity)
		}
		if lastErr != nil {
			return nil, lastErr
		}
		lastErr = s.warehouseRepo.SaveWithLock(ctx, warehouse)
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			break
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return s.toResponse(ctx, warehouse), nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Warehouse %s not found", id))
		}
		return err
	}
	if len(warehouse.SoldEntries) > 0 {
		return shared.NewDomainError(shared.CodeValidation,
			fmt.Sprintf("Warehouse %s has stock committed to open bookings", id))
	}
	return s.warehouseRepo.Delete(ctx, id)
}

func (s *WarehouseService) toResponse(ctx context.Context, w *inventory.Warehouse) *WarehouseResponse {
	names := s.itemNames(ctx, w)

	virtual := make([]BucketEntryResponse, 0, len(w.VirtualEntries))
	for _, e := range w.VirtualEntries {
		virtual = append(virtual, BucketEntryResponse{ItemID: e.ItemID, ItemName: names[e.ItemID], Quantity: e.Quantity})
	}
	billed := make([]BucketEntryResponse, 0, len(w.BilledEntries))
	for _, e := range w.BilledEntries {
		billed = append(billed, BucketEntryResponse{ItemID: e.ItemID, ItemName: names[e.ItemID], Quantity: e.Quantity})
	}
	sold := make([]SoldEntryResponse, 0, len(w.SoldEntries))
	for _, e := range w.SoldEntries {
		sold = append(sold, SoldEntryResponse{
			ItemID:          e.ItemID,
			ItemName:        names[e.ItemID],
			BilledQuantity:  e.BilledQuantity,
			VirtualQuantity: e.VirtualQuantity,
		})
	}

	return &WarehouseResponse{
		ID:               w.ID,
		Name:             w.Name,
		Location:         w.Location,
		VirtualInventory: virtual,
		BilledInventory:  billed,
		SoldInventory:    sold,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

func (s *WarehouseService) itemNames(ctx context.Context, w *inventory.Warehouse) map[uuid.UUID]string {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	collect := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, e := range w.VirtualEntries {
		collect(e.ItemID)
	}
	for _, e := range w.BilledEntries {
		collect(e.ItemID)
	}
	for _, e := range w.SoldEntries {
		collect(e.ItemID)
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return names
	}
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/catalog"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the payload for creating a catalog item
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Packaging   string          `json:"packaging"`
	Type        string          `json:"type"`
	Weight      decimal.Decimal `json:"weight" binding:"required"`
	StaticPrice decimal.Decimal `json:"static_price"`
}

// UpdateItemRequest carries the fields an item update may change
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Type        *string          `json:"type"`
	StaticPrice *decimal.Decimal `json:"static_price"`
}

// ItemResponse is the API view of a catalog item
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Packaging   string          `json:"packaging"`
	Type        string          `json:"type"`
	Weight      decimal.Decimal `json:"weight"`
	StaticPrice decimal.Decimal `json:"static_price"`
	Code        string          `json:"code"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToItemResponse converts an item to its API view
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Packaging:   string(item.Packaging),
		Type:        item.Type,
		Weight:      item.Weight,
		StaticPrice: item.StaticPrice,
		Code:        item.Code,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Create adds a new item to the catalog
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.Name, catalog.Packaging(req.Packaging), req.Type, req.Weight, req.StaticPrice)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Item %s not found", id))
		}
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with pagination
func (s *ItemService) List(ctx context.Context, page, pageSize int) ([]ItemResponse, int64, error) {
	f := shared.Filter{Page: page, PageSize: pageSize}
	f.Normalize()
	items, total, err := s.itemRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses, total, nil
}

// Update changes the mutable fields of an item
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Item %s not found", id))
		}
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError(shared.CodeValidation, "Item name cannot be empty")
		}
		item.Name = *req.Name
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.StaticPrice != nil {
		if req.StaticPrice.IsNegative() {
			return nil, shared.NewDomainError(shared.CodeValidation, "Static price cannot be negative")
		}
		item.StaticPrice = *req.StaticPrice
	}
	item.Touch()

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item from the catalog
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Item %s not found", id))
		}
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

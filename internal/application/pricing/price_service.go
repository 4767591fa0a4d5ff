package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/catalog"
	"github.com/depot/backend/internal/domain/inventory"
	"github.com/depot/backend/internal/domain/pricing"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceService handles the daily price ledger
type PriceService struct {
	priceRepo     pricing.PriceQuoteRepository
	warehouseRepo inventory.WarehouseRepository
	itemRepo      catalog.ItemRepository
}

// NewPriceService creates a new PriceService
func NewPriceService(
	priceRepo pricing.PriceQuoteRepository,
	warehouseRepo inventory.WarehouseRepository,
	itemRepo catalog.ItemRepository,
) *PriceService {
	return &PriceService{
		priceRepo:     priceRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
	}
}

// AddPrice records the price tiers for an item at a warehouse for the UTC
// day containing quotedAt. At most one quote may exist per warehouse, item
// and day: a prior quote for the same day is rejected, and the unique index
// catches racing writers the day-window query cannot see.
func (s *PriceService) AddPrice(ctx context.Context, req AddPriceRequest, quotedAt time.Time) (*PriceQuoteResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("Warehouse %s not found", req.WarehouseID))
	}
	if _, err := s.itemRepo.FindByID(ctx, req.ItemID); err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("Item %s not found", req.ItemID))
	}

	if _, err := s.priceRepo.FindForDay(ctx, req.WarehouseID, req.ItemID, quotedAt); err == nil {
		return nil, shared.NewDomainError(shared.CodeDuplicatePrice,
			fmt.Sprintf("A price for item %s at warehouse %s already exists for this day", req.ItemID, req.WarehouseID))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	quote, err := pricing.NewPriceQuote(req.WarehouseID, req.ItemID, quotedAt,
		req.CompanyPrice, req.RackPrice, req.PlantPrice, req.DepoPrice)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.Save(ctx, quote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.NewDomainError(shared.CodeDuplicatePrice,
				fmt.Sprintf("A price for item %s at warehouse %s already exists for this day", req.ItemID, req.WarehouseID))
		}
		return nil, err
	}

	response := ToPriceQuoteResponse(quote)
	return &response, nil
}

// GetItemPrice returns the quote covering the UTC day that contains at,
// or NOT_FOUND when no price was quoted that day.
func (s *PriceService) GetItemPrice(ctx context.Context, warehouseID, itemID uuid.UUID, at time.Time) (*PriceQuoteResponse, error) {
	quote, err := s.priceRepo.FindForDay(ctx, warehouseID, itemID, at)
	if err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("No price quoted for item %s at warehouse %s today", itemID, warehouseID))
	}
	response := ToPriceQuoteResponse(quote)
	if item, err := s.itemRepo.FindByID(ctx, itemID); err == nil {
		response.ItemName = item.Name
	}
	return &response, nil
}

// GetPricesByWarehouse lists the quotes recorded for a warehouse on the UTC
// day containing at. An empty day is reported as NOT_FOUND so callers can
// tell "no prices set today" apart from an empty page.
func (s *PriceService) GetPricesByWarehouse(ctx context.Context, warehouseID uuid.UUID, at time.Time, page, pageSize int) ([]PriceQuoteResponse, int64, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, 0, notFoundAs(err, fmt.Sprintf("Warehouse %s not found", warehouseID))
	}

	f := shared.Filter{Page: page, PageSize: pageSize}
	f.Normalize()
	quotes, total, err := s.priceRepo.FindByWarehouse(ctx, warehouseID, at, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, shared.NewDomainError(shared.CodeNotFound,
			fmt.Sprintf("No prices quoted for warehouse %s on this day", warehouseID))
	}
	return s.toResponses(ctx, quotes), total, nil
}

// ListAll lists every quote across all warehouses, newest day first
func (s *PriceService) ListAll(ctx context.Context, page, pageSize int) ([]PriceQuoteResponse, int64, error) {
	f := shared.Filter{Page: page, PageSize: pageSize, OrderBy: "price_day", OrderDir: "desc"}
	f.Normalize()
	quotes, total, err := s.priceRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return s.toResponses(ctx, quotes), total, nil
}

// DeletePrice removes a quote from the ledger
func (s *PriceService) DeletePrice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.priceRepo.FindByID(ctx, id); err != nil {
		return notFoundAs(err, fmt.Sprintf("Price quote %s not found", id))
	}
	return s.priceRepo.Delete(ctx, id)
}

func (s *PriceService) toResponses(ctx context.Context, quotes []pricing.PriceQuote) []PriceQuoteResponse {
	ids := make([]uuid.UUID, 0, len(quotes))
	for i := range quotes {
		ids = append(ids, quotes[i].ItemID)
	}
	names := make(map[uuid.UUID]string)
	if items, err := s.itemRepo.FindByIDs(ctx, ids); err == nil {
		for _, item := range items {
			names[item.ID] = item.Name
		}
	}

	responses := make([]PriceQuoteResponse, 0, len(quotes))
	for i := range quotes {
		r := ToPriceQuoteResponse(&quotes[i])
		r.ItemName = names[r.ItemID]
		responses = append(responses, r)
	}
	return responses
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(shared.CodeNotFound, message)
	}
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == shared.CodeNotFound {
		return shared.NewDomainError(shared.CodeNotFound, message)
	}
	return err
}

package pricing

import (
	"time"

	"github.com/depot/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddPriceRequest is the payload for quoting an item's daily prices
type AddPriceRequest struct {
	WarehouseID  uuid.UUID       `json:"warehouse_id" binding:"required"`
	ItemID       uuid.UUID       `json:"item_id" binding:"required"`
	CompanyPrice decimal.Decimal `json:"company_price"`
	RackPrice    decimal.Decimal `json:"rack_price"`
	PlantPrice   decimal.Decimal `json:"plant_price"`
	DepoPrice    decimal.Decimal `json:"depo_price"`
}

// PriceQuoteResponse is the API view of a price quote
type PriceQuoteResponse struct {
	ID           uuid.UUID       `json:"id"`
	WarehouseID  uuid.UUID       `json:"warehouse_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	ItemName     string          `json:"item_name,omitempty"`
	PriceDay     time.Time       `json:"price_day"`
	QuotedAt     time.Time       `json:"quoted_at"`
	CompanyPrice decimal.Decimal `json:"company_price"`
	RackPrice    decimal.Decimal `json:"rack_price"`
	PlantPrice   decimal.Decimal `json:"plant_price"`
	DepoPrice    decimal.Decimal `json:"depo_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToPriceQuoteResponse converts a quote to its API view
func ToPriceQuoteResponse(q *pricing.PriceQuote) PriceQuoteResponse {
	return PriceQuoteResponse{
		ID:           q.ID,
		WarehouseID:  q.WarehouseID,
		ItemID:       q.ItemID,
		PriceDay:     q.PriceDay,
		QuotedAt:     q.QuotedAt,
		CompanyPrice: q.CompanyPrice,
		RackPrice:    q.RackPrice,
		PlantPrice:   q.PlantPrice,
		DepoPrice:    q.DepoPrice,
		CreatedAt:    q.CreatedAt,
	}
}

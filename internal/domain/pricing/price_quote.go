package pricing

import (
	"time"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceQuote records the price tiers of one item at one warehouse for one
// UTC day. The unique index over warehouse, item and day enforces at most
// one quote per day at the database as well.
type PriceQuote struct {
	shared.BaseEntity
	WarehouseID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_wh_item_day,unique"`
	ItemID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_price_wh_item_day,unique"`
	PriceDay     time.Time       `gorm:"not null;index:idx_price_wh_item_day,unique"`
	QuotedAt     time.Time       `gorm:"not null"`
	CompanyPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RackPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PlantPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DepoPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PriceQuote) TableName() string {
	return "price_quotes"
}

// DayWindow returns the UTC day boundaries containing t: the start is
// inclusive, the end exclusive.
func DayWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// NewPriceQuote creates a quote for the UTC day containing quotedAt
func NewPriceQuote(warehouseID, itemID uuid.UUID, quotedAt time.Time,
	companyPrice, rackPrice, plantPrice, depoPrice decimal.Decimal) (*PriceQuote, error) {

	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Warehouse is required")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item is required")
	}
	for _, p := range []decimal.Decimal{companyPrice, rackPrice, plantPrice, depoPrice} {
		if p.IsNegative() {
			return nil, shared.NewDomainError(shared.CodeValidation, "Prices cannot be negative")
		}
	}

	day, _ := DayWindow(quotedAt)
	return &PriceQuote{
		BaseEntity:   shared.NewBaseEntity(),
		WarehouseID:  warehouseID,
		ItemID:       itemID,
		PriceDay:     day,
		QuotedAt:     quotedAt,
		CompanyPrice: companyPrice,
		RackPrice:    rackPrice,
		PlantPrice:   plantPrice,
		DepoPrice:    depoPrice,
	}, nil
}

package catalog

import (
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Packaging represents the packaging form of an item
type Packaging string

const (
	PackagingBox Packaging = "box"
	PackagingTin Packaging = "tin"
)

// IsValid checks if the packaging is a known value
func (p Packaging) IsValid() bool {
	return p == PackagingBox || p == PackagingTin
}

// Item is a stock-keeping unit. Bookings and price quotes reference items
// by ID; the catalog itself owns no quantities.
type Item struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(200);not null"`
	Packaging   Packaging       `gorm:"type:varchar(20);not null;default:'box'"`
	Type        string          `gorm:"type:varchar(100)"`
	Weight      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	StaticPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Code        string          `gorm:"type:varchar(64);uniqueIndex;not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item with a generated code
func NewItem(name string, packaging Packaging, itemType string, weight, staticPrice decimal.Decimal) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item name cannot be empty")
	}
	if packaging == "" {
		packaging = PackagingBox
	}
	if !packaging.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Invalid packaging: %s", packaging))
	}
	if weight.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError(shared.CodeValidation, "Item weight must be positive")
	}
	if staticPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Static price cannot be negative")
	}

	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Packaging:   packaging,
		Type:        itemType,
		Weight:      weight,
		StaticPrice: staticPrice,
		Code:        uuid.NewString(),
	}, nil
}

// Touch updates the modification timestamp
func (i *Item) Touch() {
	i.UpdatedAt = time.Now()
}

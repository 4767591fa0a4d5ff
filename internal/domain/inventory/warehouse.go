package inventory

import (
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VirtualInventoryEntry tracks sellable stock for one item in a warehouse
type VirtualInventoryEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_virtual_wh_item,unique"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_virtual_wh_item,unique"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (VirtualInventoryEntry) TableName() string {
	return "virtual_inventory_entries"
}

// BilledInventoryEntry tracks already invoiced stock for one item in a warehouse
type BilledInventoryEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index:idx_billed_wh_item,unique"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_billed_wh_item,unique"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BilledInventoryEntry) TableName() string {
	return "billed_inventory_entries"
}

// SoldInventoryEntry tracks stock committed to open bookings, split by the
// bucket the quantity was drawn from.
type SoldInventoryEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_sold_wh_item,unique"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_sold_wh_item,unique"`
	BilledQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VirtualQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SoldInventoryEntry) TableName() string {
	return "sold_inventory_entries"
}

// Warehouse is the aggregate root for all stock movements at one location.
// Every quantity change goes through its methods so the bucket totals stay
// consistent; writers persist it with a version check.
type Warehouse struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	Location string `gorm:"type:varchar(300)"`

	VirtualEntries []VirtualInventoryEntry `gorm:"foreignKey:WarehouseID"`
	BilledEntries  []BilledInventoryEntry  `gorm:"foreignKey:WarehouseID"`
	SoldEntries    []SoldInventoryEntry    `gorm:"foreignKey:WarehouseID"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with empty inventory
func NewWarehouse(name, location string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Warehouse name cannot be empty")
	}
	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
	}, nil
}

// VirtualQuantity returns the sellable quantity on hand for an item
func (w *Warehouse) VirtualQuantity(itemID uuid.UUID) decimal.Decimal {
	for i := range w.VirtualEntries {
		if w.VirtualEntries[i].ItemID == itemID {
			return w.VirtualEntries[i].Quantity
		}
	}
	return decimal.Zero
}

// BilledQuantity returns the invoiced quantity on hand for an item
func (w *Warehouse) BilledQuantity(itemID uuid.UUID) decimal.Decimal {
	for i := range w.BilledEntries {
		if w.BilledEntries[i].ItemID == itemID {
			return w.BilledEntries[i].Quantity
		}
	}
	return decimal.Zero
}

// SoldQuantities returns the committed quantities for an item, billed then virtual
func (w *Warehouse) SoldQuantities(itemID uuid.UUID) (decimal.Decimal, decimal.Decimal) {
	for i := range w.SoldEntries {
		if w.SoldEntries[i].ItemID == itemID {
			return w.SoldEntries[i].BilledQuantity, w.SoldEntries[i].VirtualQuantity
		}
	}
	return decimal.Zero, decimal.Zero
}

// AddVirtualStock increases the sellable quantity for an item
func (w *Warehouse) AddVirtualStock(itemID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeValidation, "Stock quantity must be positive")
	}
	for i := range w.VirtualEntries {
		if w.VirtualEntries[i].ItemID == itemID {
			w.VirtualEntries[i].Quantity = w.VirtualEntries[i].Quantity.Add(quantity)
			w.UpdatedAt = time.Now()
			return nil
		}
	}
	w.VirtualEntries = append(w.VirtualEntries, VirtualInventoryEntry{
		ID:          uuid.New(),
		WarehouseID: w.ID,
		ItemID:      itemID,
		Quantity:    quantity,
	})
	w.UpdatedAt = time.Now()
	return nil
}

// AddBilledStock increases the invoiced quantity for an item
func (w *Warehouse) AddBilledStock(itemID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError(shared.CodeValidation, "Stock quantity must be positive")
	}
	for i := range w.BilledEntries {
		if w.BilledEntries[i].ItemID == itemID {
			w.BilledEntries[i].Quantity = w.BilledEntries[i].Quantity.Add(quantity)
			w.UpdatedAt = time.Now()
			return nil
		}
	}
	w.BilledEntries = append(w.BilledEntries, BilledInventoryEntry{
		ID:          uuid.New(),
		WarehouseID: w.ID,
		ItemID:      itemID,
		Quantity:    quantity,
	})
	w.UpdatedAt = time.Now()
	return nil
}

// CommitStock moves quantities for one item out of the virtual and billed
// buckets into the sold bucket. The item must already have an entry in both
// buckets, whatever the requested split. All checks run before either bucket
// is touched, so a failed commit leaves the warehouse unchanged.
func (w *Warehouse) CommitStock(itemID uuid.UUID, virtualQty, billedQty decimal.Decimal) error {
	if virtualQty.IsNegative() || billedQty.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Committed quantities cannot be negative")
	}
	if virtualQty.IsZero() && billedQty.IsZero() {
		return shared.NewDomainError(shared.CodeValidation, "Committed quantity cannot be zero")
	}

	if !w.hasVirtualEntry(itemID) {
		return shared.NewDomainError(shared.CodeNotFound,
			fmt.Sprintf("Item %s not found in virtual inventory", itemID))
	}
	if !w.hasBilledEntry(itemID) {
		return shared.NewDomainError(shared.CodeNotFound,
			fmt.Sprintf("Item %s not found in billed inventory", itemID))
	}

	if virtualQty.IsPositive() && w.VirtualQuantity(itemID).LessThan(virtualQty) {
		return shared.NewDomainError(shared.CodeInsufficientStock,
			fmt.Sprintf("Insufficient virtual stock for item %s: have %s, need %s",
				itemID, w.VirtualQuantity(itemID), virtualQty))
	}
	if billedQty.IsPositive() && w.BilledQuantity(itemID).LessThan(billedQty) {
		return shared.NewDomainError(shared.CodeInsufficientStock,
			fmt.Sprintf("Insufficient billed stock for item %s: have %s, need %s",
				itemID, w.BilledQuantity(itemID), billedQty))
	}

	if virtualQty.IsPositive() {
		w.subtractVirtual(itemID, virtualQty)
	}
	if billedQty.IsPositive() {
		w.subtractBilled(itemID, billedQty)
	}
	w.addSold(itemID, billedQty, virtualQty)
	w.UpdatedAt = time.Now()
	return nil
}

// RestoreStock reverses a prior commit: quantities move from the sold bucket
// back into virtual and billed. It fails with a consistency error when the
// sold bucket does not hold what is being returned.
func (w *Warehouse) RestoreStock(itemID uuid.UUID, virtualQty, billedQty decimal.Decimal) error {
	if virtualQty.IsNegative() || billedQty.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Restored quantities cannot be negative")
	}

	soldBilled, soldVirtual := w.SoldQuantities(itemID)
	if soldVirtual.LessThan(virtualQty) || soldBilled.LessThan(billedQty) {
		return shared.NewDomainError(shared.CodeConsistencyViolation,
			fmt.Sprintf("Sold inventory for item %s does not cover the reversal: billed %s/%s, virtual %s/%s",
				itemID, soldBilled, billedQty, soldVirtual, virtualQty))
	}

	w.subtractSold(itemID, billedQty, virtualQty)
	if virtualQty.IsPositive() {
		if err := w.AddVirtualStock(itemID, virtualQty); err != nil {
			return err
		}
	}
	if billedQty.IsPositive() {
		if err := w.AddBilledStock(itemID, billedQty); err != nil {
			return err
		}
	}
	w.UpdatedAt = time.Now()
	return nil
}

func (w *Warehouse) hasVirtualEntry(itemID uuid.UUID) bool {
	for i := range w.VirtualEntries {
		if w.VirtualEntries[i].ItemID == itemID {
			return true
		}
	}
	return false
}

func (w *Warehouse) hasBilledEntry(itemID uuid.UUID) bool {
	for i := range w.BilledEntries {
		if w.BilledEntries[i].ItemID == itemID {
			return true
		}
	}
	return false
}

func (w *Warehouse) subtractVirtual(itemID uuid.UUID, qty decimal.Decimal) {
	for i := range w.VirtualEntries {
		if w.VirtualEntries[i].ItemID == itemID {
			w.VirtualEntries[i].Quantity = w.VirtualEntries[i].Quantity.Sub(qty)
			return
		}
	}
}

func (w *Warehouse) subtractBilled(itemID uuid.UUID, qty decimal.Decimal) {
	for i := range w.BilledEntries {
		if w.BilledEntries[i].ItemID == itemID {
			w.BilledEntries[i].Quantity = w.BilledEntries[i].Quantity.Sub(qty)
			return
		}
	}
}

func (w *Warehouse) addSold(itemID uuid.UUID, billedQty, virtualQty decimal.Decimal) {
	for i := range w.SoldEntries {
		if w.SoldEntries[i].ItemID == itemID {
			w.SoldEntries[i].BilledQuantity = w.SoldEntries[i].BilledQuantity.Add(billedQty)
			w.SoldEntries[i].VirtualQuantity = w.SoldEntries[i].VirtualQuantity.Add(virtualQty)
			return
		}
	}
	w.SoldEntries = append(w.SoldEntries, SoldInventoryEntry{
		ID:              uuid.New(),
		WarehouseID:     w.ID,
		ItemID:          itemID,
		BilledQuantity:  billedQty,
		VirtualQuantity: virtualQty,
	})
}

// subtractSold reduces the sold entry and drops it once both fields hit zero
func (w *Warehouse) subtractSold(itemID uuid.UUID, billedQty, virtualQty decimal.Decimal) {
	for i := range w.SoldEntries {
		if w.SoldEntries[i].ItemID != itemID {
			continue
		}
		w.SoldEntries[i].BilledQuantity = w.SoldEntries[i].BilledQuantity.Sub(billedQty)
		w.SoldEntries[i].VirtualQuantity = w.SoldEntries[i].VirtualQuantity.Sub(virtualQty)
		if w.SoldEntries[i].BilledQuantity.IsZero() && w.SoldEntries[i].VirtualQuantity.IsZero() {
			w.SoldEntries = append(w.SoldEntries[:i], w.SoldEntries[i+1:]...)
		}
		return
	}
}

package persistence

import (
	"context"
	"errors"

	"github.com/depot/backend/internal/domain/inventory"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID loads a warehouse with all three stock buckets
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Warehouse, error) {
	var warehouse inventory.Warehouse
	if err := r.db.WithContext(ctx).
		Preload("VirtualEntries").
		Preload("BilledEntries").
		Preload("SoldEntries").
		First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindAll lists warehouses with their stock buckets
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Warehouse, int64, error) {
	filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&inventory.Warehouse{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var warehouses []inventory.Warehouse
	if err := r.db.WithContext(ctx).
		Preload("VirtualEntries").
		Preload("BilledEntries").
		Preload("SoldEntries").
		Order("created_at desc").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&warehouses).Error; err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

// Save creates or updates a warehouse and replaces its bucket entries
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("VirtualEntries", "BilledEntries", "SoldEntries").Save(warehouse).Error; err != nil {
			return err
		}
		return replaceEntries(tx, warehouse)
	})
}

// SaveWithLock writes the warehouse only if its version is unchanged since
// the read, then replaces all bucket entries. A lost race returns
// shared.ErrConcurrencyConflict so the caller can reload and retry.
func (r *GormWarehouseRepository) SaveWithLock(ctx context.Context, warehouse *inventory.Warehouse) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&inventory.Warehouse{}).
			Where("id = ? AND version = ?", warehouse.ID, warehouse.Version).
			Updates(map[string]interface{}{
				"name":       warehouse.Name,
				"location":   warehouse.Location,
				"version":    warehouse.Version + 1,
				"updated_at": warehouse.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		warehouse.IncrementVersion()
		return replaceEntries(tx, warehouse)
	})
}

// Delete removes a warehouse and all its bucket entries
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteEntries(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&inventory.Warehouse{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// replaceEntries rewrites the three bucket tables for one warehouse. The
// aggregate is the source of truth for its child rows, so a full replace
// keeps entry removal (emptied sold entries) simple.
func replaceEntries(tx *gorm.DB, warehouse *inventory.Warehouse) error {
	if err := deleteEntries(tx, warehouse.ID); err != nil {
		return err
	}
	if len(warehouse.VirtualEntries) > 0 {
		if err := tx.Create(&warehouse.VirtualEntries).Error; err != nil {
			return err
		}
	}
	if len(warehouse.BilledEntries) > 0 {
		if err := tx.Create(&warehouse.BilledEntries).Error; err != nil {
			return err
		}
	}
	if len(warehouse.SoldEntries) > 0 {
		if err := tx.Create(&warehouse.SoldEntries).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteEntries(tx *gorm.DB, warehouseID uuid.UUID) error {
	if err := tx.Delete(&inventory.VirtualInventoryEntry{}, "warehouse_id = ?", warehouseID).Error; err != nil {
		return err
	}
	if err := tx.Delete(&inventory.BilledInventoryEntry{}, "warehouse_id = ?", warehouseID).Error; err != nil {
		return err
	}
	return tx.Delete(&inventory.SoldInventoryEntry{}, "warehouse_id = ?", warehouseID).Error
}

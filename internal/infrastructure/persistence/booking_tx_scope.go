package persistence

import (
	"context"

	appbooking "github.com/depot/backend/internal/application/booking"
	"github.com/depot/backend/internal/domain/booking"
	"github.com/depot/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormBookingTransactionScope runs booking writes inside one database
// transaction, handing the callback repositories bound to that transaction.
type GormBookingTransactionScope struct {
	db *gorm.DB
}

// NewGormBookingTransactionScope creates a new GormBookingTransactionScope
func NewGormBookingTransactionScope(db *gorm.DB) *GormBookingTransactionScope {
	return &GormBookingTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormBookingTransactionScope) Execute(ctx context.Context, fn func(repos appbooking.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) BookingRepo() booking.BookingRepository {
	return NewGormBookingRepository(r.tx)
}

func (r *gormTransactionalRepositories) WarehouseRepo() inventory.WarehouseRepository {
	return NewGormWarehouseRepository(r.tx)
}

var _ appbooking.TransactionScope = (*GormBookingTransactionScope)(nil)

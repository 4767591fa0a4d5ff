package booking

import (
	"context"

	"github.com/depot/backend/internal/domain/booking"
	"github.com/depot/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// booking write touches. Everything inside Execute commits or rolls back
// as one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to the current
// transaction. Booking lines are child entities of the Booking aggregate and
// are persisted through BookingRepo; the warehouse is a separate aggregate
// whose version check makes the stock movement safe against other writers.
type TransactionalRepositories interface {
	BookingRepo() booking.BookingRepository
	WarehouseRepo() inventory.WarehouseRepository
}

// NoOpTransactionScope runs the function without a real transaction,
// for tests and wiring that does not need one.
type NoOpTransactionScope struct {
	bookingRepo   booking.BookingRepository
	warehouseRepo inventory.WarehouseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(bookingRepo booking.BookingRepository, warehouseRepo inventory.WarehouseRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bookingRepo:   bookingRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Execute runs the function against the wrapped repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BookingRepo returns the booking repository
func (s *NoOpTransactionScope) BookingRepo() booking.BookingRepository {
	return s.bookingRepo
}

// WarehouseRepo returns the warehouse repository
func (s *NoOpTransactionScope) WarehouseRepo() inventory.WarehouseRepository {
	return s.warehouseRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)

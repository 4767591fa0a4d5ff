package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/booking"
	"github.com/depot/backend/internal/domain/catalog"
	"github.com/depot/backend/internal/domain/inventory"
	"github.com/depot/backend/internal/domain/partner"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// maxCommitRetries bounds how often a stock write is retried after losing
// the warehouse version race before the conflict is surfaced to the caller.
const maxCommitRetries = 3

// BookingService handles booking business operations. All stock-moving
// writes go through the transaction scope so the booking row and the
// warehouse buckets change atomically.
type BookingService struct {
	txScope       TransactionScope
	bookingRepo   booking.BookingRepository
	warehouseRepo inventory.WarehouseRepository
	itemRepo      catalog.ItemRepository
	buyerRepo     partner.BuyerRepository
	orgRepo       partner.OrganizationRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(
	txScope TransactionScope,
	bookingRepo booking.BookingRepository,
	warehouseRepo inventory.WarehouseRepository,
	itemRepo catalog.ItemRepository,
	buyerRepo partner.BuyerRepository,
	orgRepo partner.OrganizationRepository,
) *BookingService {
	return &BookingService{
		txScope:       txScope,
		bookingRepo:   bookingRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		buyerRepo:     buyerRepo,
		orgRepo:       orgRepo,
	}
}

// Create reserves stock for all requested lines and persists the booking.
// Either every line commits or nothing does: stock checks run against a
// fresh warehouse snapshot and the write only lands when the warehouse
// version is still the one that was read. now is the reference instant
// used as the bargain date when the request does not carry one.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest, now time.Time) (*BookingResponse, error) {
	if _, err := s.buyerRepo.FindByID(ctx, req.BuyerID); err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("Buyer %s not found", req.BuyerID))
	}
	if _, err := s.orgRepo.FindByID(ctx, req.OrganizationID); err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("Organization %s not found", req.OrganizationID))
	}

	lines := make([]booking.LineInput, 0, len(req.Items))
	for _, item := range req.Items {
		if _, err := s.itemRepo.FindByID(ctx, item.ItemID); err != nil {
			return nil, notFoundAs(err, fmt.Sprintf("Item %s not found", item.ItemID))
		}
		lines = append(lines, booking.LineInput{
			ItemID:          item.ItemID,
			Quantity:        item.Quantity,
			VirtualQuantity: item.VirtualQuantity,
			BilledQuantity:  item.BilledQuantity,
			UnitPrice:       item.UnitPrice,
		})
	}

	bargainDate := now
	if req.BargainDate != nil {
		bargainDate = *req.BargainDate
	}
	newBooking, err := booking.NewBooking(
		req.WarehouseID, req.BuyerID, req.OrganizationID,
		booking.DeliveryOption(req.DeliveryOption),
		req.DeliveryAddress.toDomain(),
		req.Description, req.ValidityDays, booking.ReminderDays(req.ReminderDays),
		req.BargainNo, bargainDate, lines,
	)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		lastErr = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			warehouse, err := repos.WarehouseRepo().FindByID(ctx, req.WarehouseID)
			if err != nil {
				return notFoundAs(err, fmt.Sprintf("Warehouse %s not found", req.WarehouseID))
			}
			for _, line := range newBooking.Items {
				if err := warehouse.CommitStock(line.ItemID, line.VirtualQuantity, line.BilledQuantity); err != nil {
					return err
				}
			}
			if err := repos.WarehouseRepo().SaveWithLock(ctx, warehouse); err != nil {
				return err
			}
			return repos.BookingRepo().Save(ctx, newBooking)
		})
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			break
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	response := ToBookingResponse(newBooking)
	return &response, nil
}

// Delete removes a booking and returns exactly the quantities each line
// committed back to the warehouse buckets. A sold bucket that no longer
// covers the reversal aborts the whole operation.
func (s *BookingService) Delete(ctx context.Context, bookingID uuid.UUID) error {
	var lastErr error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		lastErr = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			b, err := repos.BookingRepo().FindByID(ctx, bookingID)
			if err != nil {
				return notFoundAs(err, fmt.Sprintf("Booking %s not found", bookingID))
			}
			warehouse, err := repos.WarehouseRepo().FindByID(ctx, b.WarehouseID)
			if err != nil {
				return notFoundAs(err, fmt.Sprintf("Warehouse %s not found", b.WarehouseID))
			}
			for _, line := range b.Items {
				if err := warehouse.RestoreStock(line.ItemID, line.VirtualQuantity, line.BilledQuantity); err != nil {
					return err
				}
			}
			if err := repos.WarehouseRepo().SaveWithLock(ctx, warehouse); err != nil {
				return err
			}
			return repos.BookingRepo().Delete(ctx, b.ID)
		})
		if !errors.Is(lastErr, shared.ErrConcurrencyConflict) {
			break
		}
	}
	return lastErr
}

// GetByID retrieves a booking with the names of its referenced parties resolved
func (s *BookingService) GetByID(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("Booking %s not found", bookingID))
	}
	response := ToBookingResponse(b)
	s.resolveNames(ctx, b, &response)
	return &response, nil
}

// List retrieves bookings with pagination and optional warehouse/buyer filters
func (s *BookingService) List(ctx context.Context, filter BookingListFilter) ([]BookingResponse, int64, error) {
	f := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}
	f.Normalize()

	var (
		bookings []booking.Booking
		total    int64
		err      error
	)
	switch {
	case filter.WarehouseID != nil:
		bookings, total, err = s.bookingRepo.FindByWarehouse(ctx, *filter.WarehouseID, f)
	case filter.BuyerID != nil:
		bookings, total, err = s.bookingRepo.FindByBuyer(ctx, *filter.BuyerID, f)
	default:
		bookings, total, err = s.bookingRepo.FindAll(ctx, f)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, ToBookingResponse(&bookings[i]))
	}
	return responses, total, nil
}

// Update changes the descriptive fields of a booking. Warehouse, lines and
// bucket splits stay fixed; a booking with wrong quantities is deleted and
// recreated instead.
func (s *BookingService) Update(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest) (*BookingResponse, error) {
	b, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, notFoundAs(err, fmt.Sprintf("Booking %s not found", bookingID))
	}

	description := b.Description
	if req.Description != nil {
		description = *req.Description
	}
	validityDays := b.ValidityDays
	if req.ValidityDays != nil {
		validityDays = *req.ValidityDays
	}
	option := b.DeliveryOption
	if req.DeliveryOption != nil {
		option = booking.DeliveryOption(*req.DeliveryOption)
	}
	address := b.DeliveryAddress
	if req.DeliveryAddress != nil {
		address = req.DeliveryAddress.toDomain()
	}

	if err := b.UpdateDetails(description, validityDays, booking.ReminderDays(req.ReminderDays), option, address); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := b.ChangeStatus(booking.BookingStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	response := ToBookingResponse(b)
	return &response, nil
}

func (s *BookingService) resolveNames(ctx context.Context, b *booking.Booking, response *BookingResponse) {
	if warehouse, err := s.warehouseRepo.FindByID(ctx, b.WarehouseID); err == nil {
		response.WarehouseName = warehouse.Name
	}
	if buyer, err := s.buyerRepo.FindByID(ctx, b.BuyerID); err == nil {
		response.BuyerName = buyer.Name
	}
	if org, err := s.orgRepo.FindByID(ctx, b.OrganizationID); err == nil {
		response.OrganizationName = org.Name
	}

	ids := make([]uuid.UUID, 0, len(b.Items))
	for _, line := range b.Items {
		ids = append(ids, line.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return
	}
	names := make(map[uuid.UUID]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	for i := range response.Items {
		response.Items[i].ItemName = names[response.Items[i].ItemID]
	}
}

// notFoundAs rewraps repository not-found errors with a caller-facing
// message; anything else passes through unchanged.
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

package booking

import (
	"time"

	"github.com/depot/backend/internal/domain/booking"
	"github.com/depot/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressDTO carries a delivery address across the API boundary
type AddressDTO struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PinCode      string `json:"pin_code"`
}

func (a AddressDTO) toDomain() partner.Address {
	return partner.Address{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PinCode:      a.PinCode,
	}
}

func addressFromDomain(a partner.Address) AddressDTO {
	return AddressDTO{
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PinCode:      a.PinCode,
	}
}

// CreateBookingLineRequest is one requested order line
type CreateBookingLineRequest struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	VirtualQuantity decimal.Decimal `json:"virtual_quantity"`
	BilledQuantity  decimal.Decimal `json:"billed_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// CreateBookingRequest is the payload for creating a booking
type CreateBookingRequest struct {
	WarehouseID     uuid.UUID                  `json:"warehouse_id" binding:"required"`
	BuyerID         uuid.UUID                  `json:"buyer_id" binding:"required"`
	OrganizationID  uuid.UUID                  `json:"organization_id" binding:"required"`
	DeliveryOption  string                     `json:"delivery_option" binding:"required"`
	DeliveryAddress AddressDTO                 `json:"delivery_address"`
	Description     string                     `json:"description"`
	ValidityDays    int                        `json:"validity_days"`
	ReminderDays    []int                      `json:"reminder_days"`
	BargainNo       string                     `json:"bargain_no" binding:"required"`
	BargainDate     *time.Time                 `json:"bargain_date"`
	Items           []CreateBookingLineRequest `json:"items" binding:"required"`
}

// UpdateBookingRequest carries the fields a booking update may change.
// Pointer fields distinguish "not provided" from zero values.
type UpdateBookingRequest struct {
	Description     *string     `json:"description"`
	ValidityDays    *int        `json:"validity_days"`
	ReminderDays    []int       `json:"reminder_days"`
	DeliveryOption  *string     `json:"delivery_option"`
	DeliveryAddress *AddressDTO `json:"delivery_address"`
	Status          *string     `json:"status"`
}

// BookingLineResponse is one order line in a booking response
type BookingLineResponse struct {
	ItemID          uuid.UUID       `json:"item_id"`
	ItemName        string          `json:"item_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	VirtualQuantity decimal.Decimal `json:"virtual_quantity"`
	BilledQuantity  decimal.Decimal `json:"billed_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// BookingResponse is the API view of a booking
type BookingResponse struct {
	ID               uuid.UUID             `json:"id"`
	WarehouseID      uuid.UUID             `json:"warehouse_id"`
	WarehouseName    string                `json:"warehouse_name,omitempty"`
	BuyerID          uuid.UUID             `json:"buyer_id"`
	BuyerName        string                `json:"buyer_name,omitempty"`
	OrganizationID   uuid.UUID             `json:"organization_id"`
	OrganizationName string                `json:"organization_name,omitempty"`
	Status           string                `json:"status"`
	DeliveryOption   string                `json:"delivery_option"`
	DeliveryAddress  AddressDTO            `json:"delivery_address"`
	Description      string                `json:"description"`
	ValidityDays     int                   `json:"validity_days"`
	ReminderDays     []int                 `json:"reminder_days"`
	BargainNo        string                `json:"bargain_no"`
	BargainDate      time.Time             `json:"bargain_date"`
	ExpiresAt        time.Time             `json:"expires_at"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	Items            []BookingLineResponse `json:"items"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ToBookingResponse converts a booking aggregate to its API view
func ToBookingResponse(b *booking.Booking) BookingResponse {
	items := make([]BookingLineResponse, 0, len(b.Items))
	for _, line := range b.Items {
		items = append(items, BookingLineResponse{
			ItemID:          line.ItemID,
			Quantity:        line.Quantity,
			VirtualQuantity: line.VirtualQuantity,
			BilledQuantity:  line.BilledQuantity,
			UnitPrice:       line.UnitPrice,
			LineTotal:       line.LineTotal(),
		})
	}
	return BookingResponse{
		ID:              b.ID,
		WarehouseID:     b.WarehouseID,
		BuyerID:         b.BuyerID,
		OrganizationID:  b.OrganizationID,
		Status:          string(b.Status),
		DeliveryOption:  string(b.DeliveryOption),
		DeliveryAddress: addressFromDomain(b.DeliveryAddress),
		Description:     b.Description,
		ValidityDays:    b.ValidityDays,
		ReminderDays:    []int(b.ReminderDays),
		BargainNo:       b.BargainNo,
		BargainDate:     b.BargainDate,
		ExpiresAt:       b.ExpiresAt(),
		TotalAmount:     b.TotalAmount(),
		Items:           items,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BookingListFilter filters and paginates booking listings
type BookingListFilter struct {
	Page        int
	PageSize    int
	WarehouseID *uuid.UUID
	BuyerID     *uuid.UUID
}

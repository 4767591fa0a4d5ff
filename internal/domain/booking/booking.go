package booking

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/partner"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryOption determines how a booking is fulfilled
type DeliveryOption string

const (
	DeliveryOptionPickup   DeliveryOption = "Pickup"
	DeliveryOptionDelivery DeliveryOption = "Delivery"
)

// IsValid checks if the delivery option is a known value
func (d DeliveryOption) IsValid() bool {
	return d == DeliveryOptionPickup || d == DeliveryOptionDelivery
}

// BookingStatus tracks fulfilment progress of a booking
type BookingStatus string

const (
	StatusCreated       BookingStatus = "created"
	StatusPartiallySold BookingStatus = "partially sold"
	StatusFullySold     BookingStatus = "fully sold"
)

// IsValid checks if the status is a known value
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusCreated, StatusPartiallySold, StatusFullySold:
		return true
	}
	return false
}

// DefaultValidityDays is how long a booking stays open when no validity is given
const DefaultValidityDays = 21

// DefaultReminderDays are the days-before-expiry marks for follow-up reminders
var DefaultReminderDays = ReminderDays{7, 3, 1}

// ReminderDays stores the reminder schedule as a JSON array column
type ReminderDays []int

// Value implements driver.Valuer
func (r ReminderDays) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *ReminderDays) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ReminderDays", value)
	}
	return json.Unmarshal(data, r)
}

// BookingItem is one order line: a quantity of an item split across the
// virtual and billed stock buckets it was committed from.
type BookingItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VirtualQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BilledQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BookingItem) TableName() string {
	return "booking_items"
}

// LineTotal returns quantity times unit price
func (bi BookingItem) LineTotal() decimal.Decimal {
	return bi.Quantity.Mul(bi.UnitPrice)
}

// Booking reserves stock in one warehouse for a buyer. Creating it commits
// stock from the warehouse buckets; deleting it restores exactly what each
// line committed.
type Booking struct {
	shared.BaseAggregateRoot
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrganizationID  uuid.UUID       `gorm:"type:uuid;not null"`
	Status          BookingStatus   `gorm:"type:varchar(30);not null;default:'created'"`
	DeliveryOption  DeliveryOption  `gorm:"type:varchar(20);not null"`
	DeliveryAddress partner.Address `gorm:"embedded;embeddedPrefix:delivery_"`
	Description     string          `gorm:"type:text"`
	ValidityDays    int             `gorm:"not null;default:21"`
	ReminderDays    ReminderDays    `gorm:"type:text"`
	BargainNo       string          `gorm:"type:varchar(50);not null;index"`
	BargainDate     time.Time       `gorm:"not null"`

	Items []BookingItem `gorm:"foreignKey:BookingID"`
}

// TableName returns the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}

// LineInput describes one requested booking line
type LineInput struct {
	ItemID          uuid.UUID
	Quantity        decimal.Decimal
	VirtualQuantity decimal.Decimal
	BilledQuantity  decimal.Decimal
	UnitPrice       decimal.Decimal
}

// NewBooking validates the request and builds the aggregate. Stock is not
// touched here; the caller commits warehouse stock in the same transaction.
func NewBooking(warehouseID, buyerID, organizationID uuid.UUID, option DeliveryOption,
	address partner.Address, description string, validityDays int, reminderDays ReminderDays,
	bargainNo string, bargainDate time.Time, lines []LineInput) (*Booking, error) {

	if bargainNo == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Bargain number is required")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Warehouse is required")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Buyer is required")
	}
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidation, "Organization is required")
	}
	if !option.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Invalid delivery option: %s", option))
	}
	if option == DeliveryOptionDelivery && !address.IsComplete() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Delivery bookings require a complete delivery address")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Booking must contain at least one item")
	}
	if validityDays <= 0 {
		validityDays = DefaultValidityDays
	}
	if len(reminderDays) == 0 {
		reminderDays = append(ReminderDays{}, DefaultReminderDays...)
	}

	booking := &Booking{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		BuyerID:           buyerID,
		OrganizationID:    organizationID,
		Status:            StatusCreated,
		DeliveryOption:    option,
		DeliveryAddress:   address,
		Description:       description,
		ValidityDays:      validityDays,
		ReminderDays:      reminderDays,
		BargainNo:         bargainNo,
		BargainDate:       bargainDate,
	}

	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if line.ItemID == uuid.Nil {
			return nil, shared.NewDomainError(shared.CodeValidation, "Booking line item is required")
		}
		if seen[line.ItemID] {
			return nil, shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Duplicate booking line for item %s", line.ItemID))
		}
		seen[line.ItemID] = true
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError(shared.CodeValidation, "Booking line quantity must be positive")
		}
		if line.VirtualQuantity.IsNegative() || line.BilledQuantity.IsNegative() {
			return nil, shared.NewDomainError(shared.CodeValidation, "Booking line bucket quantities cannot be negative")
		}
		if !line.VirtualQuantity.Add(line.BilledQuantity).Equal(line.Quantity) {
			return nil, shared.NewDomainError(shared.CodeValidation,
				fmt.Sprintf("Booking line for item %s: virtual %s + billed %s must equal quantity %s",
					line.ItemID, line.VirtualQuantity, line.BilledQuantity, line.Quantity))
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError(shared.CodeValidation, "Booking line price cannot be negative")
		}
		booking.Items = append(booking.Items, BookingItem{
			ID:              uuid.New(),
			BookingID:       booking.ID,
			ItemID:          line.ItemID,
			Quantity:        line.Quantity,
			VirtualQuantity: line.VirtualQuantity,
			BilledQuantity:  line.BilledQuantity,
			UnitPrice:       line.UnitPrice,
		})
	}

	return booking, nil
}

// ExpiresAt returns the instant the booking validity runs out
func (b *Booking) ExpiresAt() time.Time {
	return b.BargainDate.AddDate(0, 0, b.ValidityDays)
}

// TotalAmount sums all line totals
func (b *Booking) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ChangeStatus moves the booking to a new fulfilment status
func (b *Booking) ChangeStatus(status BookingStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Invalid booking status: %s", status))
	}
	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails changes the mutable descriptive fields. Stock-bearing fields
// (warehouse, lines, bucket splits) are deliberately not updatable; callers
// delete and recreate the booking to change those.
func (b *Booking) UpdateDetails(description string, validityDays int, reminderDays ReminderDays,
	option DeliveryOption, address partner.Address) error {

	if !option.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Invalid delivery option: %s", option))
	}
	if option == DeliveryOptionDelivery && !address.IsComplete() {
		return shared.NewDomainError(shared.CodeValidation, "Delivery bookings require a complete delivery address")
	}
	if validityDays <= 0 {
		return shared.NewDomainError(shared.CodeValidation, "Validity must be positive")
	}

	b.Description = description
	b.ValidityDays = validityDays
	if len(reminderDays) > 0 {
		b.ReminderDays = reminderDays
	}
	b.DeliveryOption = option
	b.DeliveryAddress = address
	b.UpdatedAt = time.Now()
	return nil
}

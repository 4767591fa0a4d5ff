package partner

import (
	"time"

	"github.com/depot/backend/internal/domain/shared"
)

// Address holds a delivery address block shared by buyers and bookings
type Address struct {
	AddressLine1 string `gorm:"type:varchar(300)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(300)" json:"address_line2"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	State        string `gorm:"type:varchar(100)" json:"state"`
	PinCode      string `gorm:"type:varchar(20)" json:"pin_code"`
}

// IsComplete reports whether the mandatory address fields are filled
func (a Address) IsComplete() bool {
	return a.AddressLine1 != "" && a.City != "" && a.State != "" && a.PinCode != ""
}

// Buyer is the purchasing party a booking is made for
type Buyer struct {
	shared.BaseEntity
	Name            string  `gorm:"type:varchar(200);not null"`
	Company         string  `gorm:"type:varchar(200);not null"`
	DeliveryAddress Address `gorm:"embedded;embeddedPrefix:delivery_"`
	Contact         string  `gorm:"type:varchar(50);not null"`
	Email           string  `gorm:"type:varchar(200);not null"`
	GSTNumber       string  `gorm:"type:varchar(50);not null"`
	GoogleMapsLink  string  `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Buyer) TableName() string {
	return "buyers"
}

// NewBuyer creates a new buyer
func NewBuyer(name, company, contact, email, gstNumber string) (*Buyer, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Buyer name cannot be empty")
	}
	if company == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Buyer company cannot be empty")
	}
	if contact == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Buyer contact cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Buyer email cannot be empty")
	}
	if gstNumber == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Buyer GST number cannot be empty")
	}

	return &Buyer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Company:    company,
		Contact:    contact,
		Email:      email,
		GSTNumber:  gstNumber,
	}, nil
}

// Touch updates the modification timestamp
func (b *Buyer) Touch() {
	b.UpdatedAt = time.Now()
}

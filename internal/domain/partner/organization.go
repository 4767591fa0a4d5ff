package partner

import "github.com/depot/backend/internal/domain/shared"

// Organization is the selling entity a booking is issued under
type Organization struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(200);not null"`
	GSTNumber string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization
func NewOrganization(name, gstNumber string) (*Organization, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Organization name cannot be empty")
	}
	return &Organization{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		GSTNumber:  gstNumber,
	}, nil
}

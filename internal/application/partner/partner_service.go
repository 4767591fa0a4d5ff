package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/depot/backend/internal/domain/partner"
	"github.com/depot/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AddressDTO carries a buyer address across the API boundary
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

// CreateBuyerRequest is the payload for registering a buyer
type CreateBuyerRequest struct {
	Name            string     `json:"name" binding:"required"`
	Company         string     `json:"company" binding:"required"`
	Contact         string     `json:"contact" binding:"required"`
	Email           string     `json:"email" binding:"required"`
	GSTNumber       string     `json:"gst_number" binding:"required"`
	DeliveryAddress AddressDTO `json:"delivery_address"`
	GoogleMapsLink  string     `json:"google_maps_link"`
}

// BuyerResponse is the API view of a buyer
type BuyerResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Contact         string     `json:"contact"`
	Email           string     `json:"email"`
	GSTNumber       string     `json:"gst_number"`
	DeliveryAddress AddressDTO `json:"delivery_address"`
	GoogleMapsLink  string     `json:"google_maps_link"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ToBuyerResponse converts a buyer to its API view
func ToBuyerResponse(b *partner.Buyer) BuyerResponse {
	return BuyerResponse{
		ID:        b.ID,
		Name:      b.Name,
		Company:   b.Company,
		Contact:   b.Contact,
		Email:     b.Email,
		GSTNumber: b.GSTNumber,
		DeliveryAddress: AddressDTO{
			AddressLine1: b.DeliveryAddress.AddressLine1,
			AddressLine2: b.DeliveryAddress.AddressLine2,
			City:         b.DeliveryAddress.City,
			State:        b.DeliveryAddress.State,
			PinCode:      b.DeliveryAddress.PinCode,
		},
		GoogleMapsLink: b.GoogleMapsLink,
		CreatedAt:      b.CreatedAt,
	}
}

// CreateOrganizationRequest is the payload for registering an organization
type CreateOrganizationRequest struct {
	Name      string `json:"name" binding:"required"`
	GSTNumber string `json:"gst_number"`
}

// OrganizationResponse is the API view of an organization
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	GSTNumber string    `json:"gst_number"`
	CreatedAt time.Time `json:"created_at"`
}

// ToOrganizationResponse converts an organization to its API view
func ToOrganizationResponse(o *partner.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		GSTNumber: o.GSTNumber,
		CreatedAt: o.CreatedAt,
	}
}

// PartnerService handles buyer and organization operations
type PartnerService struct {
	buyerRepo partner.BuyerRepository
	orgRepo   partner.OrganizationRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(buyerRepo partner.BuyerRepository, orgRepo partner.OrganizationRepository) *PartnerService {
	return &PartnerService{buyerRepo: buyerRepo, orgRepo: orgRepo}
}

// CreateBuyer registers a new buyer
func (s *PartnerService) CreateBuyer(ctx context.Context, req CreateBuyerRequest) (*BuyerResponse, error) {
	buyer, err := partner.NewBuyer(req.Name, req.Company, req.Contact, req.Email, req.GSTNumber)
	if err != nil {
		return nil, err
	}
	buyer.DeliveryAddress = req.DeliveryAddress.toDomain()
	buyer.GoogleMapsLink = req.GoogleMapsLink

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	response := ToBuyerResponse(buyer)
	return &response, nil
}

// GetBuyer retrieves a buyer by ID
func (s *PartnerService) GetBuyer(ctx context.Context, id uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Buyer %s not found", id))
		}
		return nil, err
	}
	response := ToBuyerResponse(buyer)
	return &response, nil
}

// ListBuyers retrieves buyers with pagination
func (s *PartnerService) ListBuyers(ctx context.Context, page, pageSize int) ([]BuyerResponse, int64, error) {
	f := shared.Filter{Page: page, PageSize: pageSize}
	f.Normalize()
	buyers, total, err := s.buyerRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]BuyerResponse, 0, len(buyers))
	for i := range buyers {
		responses = append(responses, ToBuyerResponse(&buyers[i]))
	}
	return responses, total, nil
}

// DeleteBuyer removes a buyer
func (s *PartnerService) DeleteBuyer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buyerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Buyer %s not found", id))
		}
		return err
	}
	return s.buyerRepo.Delete(ctx, id)
}

// CreateOrganization registers a new organization
func (s *PartnerService) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*OrganizationResponse, error) {
	org, err := partner.NewOrganization(req.Name, req.GSTNumber)
	if err != nil {
		return nil, err
	}
	if err := s.orgRepo.Save(ctx, org); err != nil {
		return nil, err
	}
	response := ToOrganizationResponse(org)
	return &response, nil
}

// GetOrganization retrieves an organization by ID
func (s *PartnerService) GetOrganization(ctx context.Context, id uuid.UUID) (*OrganizationResponse, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("Organization %s not found", id))
		}
		return nil, err
	}
	response := ToOrganizationResponse(org)
	return &response, nil
}

// ListOrganizations retrieves organizations with pagination
func (s *PartnerService) ListOrganizations(ctx context.Context, page, pageSize int) ([]OrganizationResponse, int64, error) {
	f := shared.Filter{Page: page, PageSize: pageSize}
	f.Normalize()
	orgs, total, err := s.orgRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		responses = append(responses, ToOrganizationResponse(&orgs[i]))
	}
	return responses, total, nil
}

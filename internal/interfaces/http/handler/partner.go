package handler

import (
	apppartner "github.com/depot/backend/internal/application/partner"
	"github.com/depot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles buyer and organization HTTP requests
type PartnerHandler struct {
	BaseHandler
	service *apppartner.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(service *apppartner.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

// RegisterRoutes registers buyer and organization routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	buyers := rg.Group("/buyers")
	{
		buyers.POST("", h.CreateBuyer)
		buyers.GET("", h.ListBuyers)
		buyers.GET("/:id", h.GetBuyer)
		buyers.DELETE("/:id", h.DeleteBuyer)
	}

	organizations := rg.Group("/organizations")
	{
		organizations.POST("", h.CreateOrganization)
		organizations.GET("", h.ListOrganizations)
		organizations.GET("/:id", h.GetOrganization)
	}
}

// CreateBuyer handles POST /buyers
func (h *PartnerHandler) CreateBuyer(c *gin.Context) {
	var req apppartner.CreateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	buyer, err := h.service.CreateBuyer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, buyer)
}

// ListBuyers handles GET /buyers
func (h *PartnerHandler) ListBuyers(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	listReq.Normalize()

	buyers, total, err := h.service.ListBuyers(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, buyers, total, listReq.Page, listReq.PageSize)
}

// GetBuyer handles GET /buyers/:id
func (h *PartnerHandler) GetBuyer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	buyer, err := h.service.GetBuyer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buyer)
}

// DeleteBuyer handles DELETE /buyers/:id
func (h *PartnerHandler) DeleteBuyer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	if err := h.service.DeleteBuyer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateOrganization handles POST /organizations
func (h *PartnerHandler) CreateOrganization(c *gin.Context) {
	var req apppartner.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	org, err := h.service.CreateOrganization(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, org)
}

// ListOrganizations handles GET /organizations
func (h *PartnerHandler) ListOrganizations(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	listReq.Normalize()

	orgs, total, err := h.service.ListOrganizations(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orgs, total, listReq.Page, listReq.PageSize)
}

// GetOrganization handles GET /organizations/:id
func (h *PartnerHandler) GetOrganization(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid organization ID")
		return
	}

	org, err := h.service.GetOrganization(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, org)
}

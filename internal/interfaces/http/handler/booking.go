package handler

import (
	"time"

	appbooking "github.com/depot/backend/internal/application/booking"
	"github.com/depot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	BaseHandler
	service *appbooking.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(service *appbooking.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers booking routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.List)
		bookings.GET("/:id", h.GetByID)
		bookings.PATCH("/:id", h.Update)
		bookings.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req appbooking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	booking, err := h.service.Create(c.Request.Context(), req, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, booking)
}

// List handles GET /bookings
func (h *BookingHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	listReq.Normalize()

	filter := appbooking.BookingListFilter{Page: listReq.Page, PageSize: listReq.PageSize}
	if raw := c.Query("warehouse_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse_id")
			return
		}
		filter.WarehouseID = &id
	}
	if raw := c.Query("buyer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid buyer_id")
			return
		}
		filter.BuyerID = &id
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bookings, total, listReq.Page, listReq.PageSize)
}

// GetByID handles GET /bookings/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, booking)
}

// Update handles PATCH /bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	var req appbooking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	booking, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, booking)
}

// Delete handles DELETE /bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid booking ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"time"

	apppricing "github.com/depot/backend/internal/application/pricing"
	"github.com/depot/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PriceHandler handles price ledger HTTP requests
type PriceHandler struct {
	BaseHandler
	service *apppricing.PriceService
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(service *apppricing.PriceService) *PriceHandler {
	return &PriceHandler{service: service}
}

// RegisterRoutes registers price routes
func (h *PriceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prices := rg.Group("/prices")
	{
		prices.POST("", h.Add)
		prices.GET("", h.ListAll)
		prices.GET("/warehouse/:id", h.GetByWarehouse)
		prices.GET("/warehouse/:id/item/:itemId", h.GetItemPrice)
		prices.DELETE("/:id", h.Delete)
	}
}

// Add handles POST /prices
func (h *PriceHandler) Add(c *gin.Context) {
	var req apppricing.AddPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quote, err := h.service.AddPrice(c.Request.Context(), req, time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quote)
}

// ListAll handles GET /prices
func (h *PriceHandler) ListAll(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	listReq.Normalize()

	quotes, total, err := h.service.ListAll(c.Request.Context(), listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotes, total, listReq.Page, listReq.PageSize)
}

// parseAtQuery reads the optional at query parameter selecting the day to
// resolve. It defaults to the current instant; a malformed value writes a
// 400 response and reports false.
func (h *PriceHandler) parseAtQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.BadRequest(c, "Invalid at parameter, expected RFC3339")
		return time.Time{}, false
	}
	return parsed, true
}

// GetByWarehouse handles GET /prices/warehouse/:id
func (h *PriceHandler) GetByWarehouse(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	listReq.Normalize()

	at, ok := h.parseAtQuery(c)
	if !ok {
		return
	}

	quotes, total, err := h.service.GetPricesByWarehouse(c.Request.Context(), id, at, listReq.Page, listReq.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotes, total, listReq.Page, listReq.PageSize)
}

// GetItemPrice handles GET /prices/warehouse/:id/item/:itemId
func (h *PriceHandler) GetItemPrice(c *gin.Context) {
	warehouseID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	at, ok := h.parseAtQuery(c)
	if !ok {
		return
	}

	quote, err := h.service.GetItemPrice(c.Request.Context(), warehouseID, itemID, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// Delete handles DELETE /prices/:id
func (h *PriceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid price ID")
		return
	}

	if err := h.service.DeletePrice(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

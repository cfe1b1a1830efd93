package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/metrics"
	"github.com/factoryops/dashboard-service/internal/models"
)

// ListInventory handles GET /api/inventory/:factoryId
func (h *Handler) ListInventory(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	items, err := h.store.ListInventory(ctx, c.Param("factoryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to fetch inventory",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateInventoryItem handles POST /api/inventory. Stock status is always
// derived server side, clients cannot set it.
func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var req models.InventoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if !h.ensureFactory(ctx, c, req.FactoryID) {
		return
	}

	item := models.Inventory{
		Material:     req.Material,
		CurrentStock: req.CurrentStock,
		Unit:         req.Unit,
		MinRequired:  req.MinRequired,
		Status:       metrics.StockStatus(req.CurrentStock, req.MinRequired),
		NextDelivery: req.NextDelivery,
		FactoryID:    req.FactoryID,
	}
	created, err := h.store.CreateInventoryItem(ctx, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create inventory item",
			Message: err.Error(),
		})
		return
	}

	log.Printf("[AUDIT][INVENTORY][CREATE] id=%d material=%s factory=%s", created.ID, created.Material, created.FactoryID)
	h.publish("inventory_updated", created.FactoryID)
	c.JSON(http.StatusCreated, created)
}

// UpdateInventoryItem handles PATCH /api/inventory/:id
func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid inventory item ID",
			Message: "Inventory item ID must be numeric",
		})
		return
	}

	var upd models.InventoryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	updated, err := h.store.UpdateInventoryItem(ctx, id, upd)
	if err != nil {
		h.respondStoreError(c, err, "inventory item")
		return
	}

	log.Printf("[AUDIT][INVENTORY][UPDATE] id=%d factory=%s", updated.ID, updated.FactoryID)
	h.publish("inventory_updated", updated.FactoryID)
	c.JSON(http.StatusOK, updated)
}

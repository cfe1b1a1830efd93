package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/metrics"
	"github.com/factoryops/dashboard-service/internal/models"
)

// ListProductionLines handles GET /api/production/:factoryId
func (h *Handler) ListProductionLines(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	lines, err := h.store.ListProductionLines(ctx, c.Param("factoryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to fetch production lines",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, lines)
}

// CreateProductionLine handles POST /api/production. Efficiency is derived
// from completed/target unless the request carries an explicit value.
func (h *Handler) CreateProductionLine(c *gin.Context) {
	var req models.ProductionLineCreateRequest
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

	status := req.Status
	if status == "" {
		status = models.LineActive
	}
	efficiency := metrics.Efficiency(req.Completed, req.Target)
	if req.Efficiency != nil {
		efficiency = *req.Efficiency
	}

	line := models.ProductionLine{
		Name:       req.Name,
		Product:    req.Product,
		Target:     req.Target,
		Completed:  req.Completed,
		Efficiency: efficiency,
		Status:     metrics.LineStatus(req.Completed, req.Target, status),
		FactoryID:  req.FactoryID,
	}
	created, err := h.store.CreateProductionLine(ctx, line)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create production line",
			Message: err.Error(),
		})
		return
	}

	log.Printf("[AUDIT][PRODUCTION][CREATE] id=%d name=%s factory=%s", created.ID, created.Name, created.FactoryID)
	h.publish("production_updated", created.FactoryID)
	c.JSON(http.StatusCreated, created)
}

// UpdateProductionLine handles PATCH /api/production/:id
func (h *Handler) UpdateProductionLine(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid production line ID",
			Message: "Production line ID must be numeric",
		})
		return
	}

	var upd models.ProductionLineUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	updated, err := h.store.UpdateProductionLine(ctx, id, upd)
	if err != nil {
		h.respondStoreError(c, err, "production line")
		return
	}

	log.Printf("[AUDIT][PRODUCTION][UPDATE] id=%d factory=%s", updated.ID, updated.FactoryID)
	h.publish("production_updated", updated.FactoryID)
	c.JSON(http.StatusOK, updated)
}

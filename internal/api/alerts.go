package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/models"
)

// ListAlerts handles GET /api/alerts/:factoryId. Unread alerts sort first.
func (h *Handler) ListAlerts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	alerts, err := h.store.ListAlerts(ctx, c.Param("factoryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to fetch alerts",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// CreateAlert handles POST /api/alerts
func (h *Handler) CreateAlert(c *gin.Context) {
	var req models.AlertCreateRequest
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

	alert := models.Alert{
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Time:      req.Time,
		Read:      req.Read,
		FactoryID: req.FactoryID,
	}
	created, err := h.store.CreateAlert(ctx, alert)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create alert",
			Message: err.Error(),
		})
		return
	}

	log.Printf("[AUDIT][ALERTS][CREATE] id=%d type=%s factory=%s", created.ID, created.Type, created.FactoryID)
	h.publish("alert_created", created.FactoryID)
	c.JSON(http.StatusCreated, created)
}

// UpdateAlert handles PATCH /api/alerts/:id
func (h *Handler) UpdateAlert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid alert ID",
			Message: "Alert ID must be numeric",
		})
		return
	}

	var upd models.AlertUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	updated, err := h.store.UpdateAlert(ctx, id, upd)
	if err != nil {
		h.respondStoreError(c, err, "alert")
		return
	}

	log.Printf("[AUDIT][ALERTS][UPDATE] id=%d read=%t factory=%s", updated.ID, updated.Read, updated.FactoryID)
	h.publish("alert_updated", updated.FactoryID)
	c.JSON(http.StatusOK, updated)
}

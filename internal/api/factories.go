package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/models"
	"github.com/factoryops/dashboard-service/internal/store"
)

// ListFactories handles GET /api/factories
func (h *Handler) ListFactories(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	factories, err := h.store.ListFactories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to fetch factories",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, factories)
}

// CreateFactory handles POST /api/factories
func (h *Handler) CreateFactory(c *gin.Context) {
	var req models.FactoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	created, err := h.store.CreateFactory(ctx, models.Factory{
		Name:     req.Name,
		Location: req.Location,
	})
	if errors.Is(err, store.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Factory already exists",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create factory",
			Message: err.Error(),
		})
		return
	}

	log.Printf("[AUDIT][FACTORIES][CREATE] name=%s location=%s", created.Name, created.Location)
	c.JSON(http.StatusCreated, created)
}

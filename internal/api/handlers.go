package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/models"
	"github.com/factoryops/dashboard-service/internal/notify"
	"github.com/factoryops/dashboard-service/internal/store"
)

// Handler handles HTTP requests. The store backend is injected so the
// same handlers serve both the memory and Postgres configurations.
type Handler struct {
	store store.Store
	hub   *notify.Hub
}

// NewHandler creates a new handler
func NewHandler(s store.Store, hub *notify.Hub) *Handler {
	return &Handler{store: s, hub: hub}
}

// Health handles health check requests
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "dashboard-service",
		"timestamp": time.Now().UTC(),
	})
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// respondStoreError maps a store failure to 404 for missing ids and 500
// for everything else. The message is passed through; this is an internal
// tool.
func (h *Handler) respondStoreError(c *gin.Context, err error, entity string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   entity + " not found",
			Message: "The specified " + entity + " does not exist",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "Failed to access " + entity,
		Message: err.Error(),
	})
}

// ensureFactory rejects creates that reference a factory name with no
// Factory record. Returns false after writing the response.
func (h *Handler) ensureFactory(ctx context.Context, c *gin.Context, name string) bool {
	_, err := h.store.GetFactoryByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Unknown factory",
			Message: "No factory named " + name,
		})
		return false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to verify factory",
			Message: err.Error(),
		})
		return false
	}
	return true
}

func (h *Handler) publish(topic, factoryID string) {
	h.hub.Publish(notify.Event{Topic: topic, FactoryID: factoryID})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/metrics"
	"github.com/factoryops/dashboard-service/internal/models"
)

// GetDashboard handles GET /api/dashboard/:factoryId. Metrics are computed
// from current rows on every request, no caching.
func (h *Handler) GetDashboard(c *gin.Context) {
	factoryID := c.Param("factoryId")

	ctx, cancel := requestContext()
	defer cancel()

	summary, err := metrics.Dashboard(ctx, h.store, factoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to compute dashboard metrics",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

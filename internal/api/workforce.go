package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/models"
)

// ListWorkforce handles GET /api/workforce/:factoryId
func (h *Handler) ListWorkforce(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	departments, err := h.store.ListWorkforce(ctx, c.Param("factoryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to fetch workforce",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, departments)
}

// CreateWorkforceDepartment handles POST /api/workforce. Headcounts must
// balance: present + onLeave + absent == total.
func (h *Handler) CreateWorkforceDepartment(c *gin.Context) {
	var req models.WorkforceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	if !req.Headcounts() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Inconsistent headcounts",
			Message: "present + onLeave + absent must equal total",
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if !h.ensureFactory(ctx, c, req.FactoryID) {
		return
	}

	dept := models.Workforce{
		Department: req.Department,
		Total:      req.Total,
		Present:    req.Present,
		OnLeave:    req.OnLeave,
		Absent:     req.Absent,
		FactoryID:  req.FactoryID,
	}
	created, err := h.store.CreateWorkforceDepartment(ctx, dept)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create workforce department",
			Message: err.Error(),
		})
		return
	}

	log.Printf("[AUDIT][WORKFORCE][CREATE] id=%d department=%s factory=%s", created.ID, created.Department, created.FactoryID)
	h.publish("workforce_updated", created.FactoryID)
	c.JSON(http.StatusCreated, created)
}

// UpdateWorkforceDepartment handles PATCH /api/workforce/:id. A patch
// touching any headcount field must carry all four, and they must balance.
func (h *Handler) UpdateWorkforceDepartment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid workforce department ID",
			Message: "Workforce department ID must be numeric",
		})
		return
	}

	var upd models.WorkforceUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}
	if upd.TouchesHeadcount() {
		if !upd.CompleteHeadcount() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Incomplete headcounts",
				Message: "A headcount change must include total, present, onLeave and absent",
			})
			return
		}
		if !upd.Headcounts() {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Inconsistent headcounts",
				Message: "present + onLeave + absent must equal total",
			})
			return
		}
	}

	ctx, cancel := requestContext()
	defer cancel()

	updated, err := h.store.UpdateWorkforceDepartment(ctx, id, upd)
	if err != nil {
		h.respondStoreError(c, err, "workforce department")
		return
	}

	log.Printf("[AUDIT][WORKFORCE][UPDATE] id=%d factory=%s", updated.ID, updated.FactoryID)
	h.publish("workforce_updated", updated.FactoryID)
	c.JSON(http.StatusOK, updated)
}

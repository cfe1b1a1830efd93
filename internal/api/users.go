package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/factoryops/dashboard-service/internal/models"
	"github.com/factoryops/dashboard-service/internal/store"
)

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if !h.ensureFactory(ctx, c, req.Factory) {
		return
	}

	user := models.User{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		Factory:  req.Factory,
	}
	created, err := h.store.CreateUser(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "User already exists",
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create user",
			Message: err.Error(),
		})
		return
	}

	log.Printf("[AUDIT][USERS][CREATE] username=%s factory=%s", created.Username, created.Factory)
	c.JSON(http.StatusCreated, created)
}

// GetUserByID handles GET /api/users/:id
func (h *Handler) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid user ID",
			Message: "User ID must be numeric",
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.store.GetUser(ctx, id)
	if err != nil {
		h.respondStoreError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

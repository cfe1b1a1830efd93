package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/factoryops/dashboard-service/internal/models"
	"github.com/factoryops/dashboard-service/internal/store"
)

const sessionCookie = "session"

// Login handles POST /api/login. On success the session token is set as
// an HTTP-only cookie and the user record is echoed back.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.store.GetUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	// TODO: replace the plaintext comparison with bcrypt once the
	// existing user rows can be rehashed.
	if errors.Is(err, store.ErrNotFound) || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := generateSessionToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.SetCookie(sessionCookie, token, int(sessionTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// CurrentUser handles GET /api/auth/current-user
func (h *Handler) CurrentUser(c *gin.Context) {
	userID, err := sessionUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Not authenticated",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		h.respondStoreError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout handles POST /api/logout by clearing the session cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func generateSessionToken(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(sessionTTL()).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func sessionTTL() time.Duration {
	minutes := 720
	if v := os.Getenv("JWT_EXPIRATION_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m > 0 {
			minutes = m
		}
	}
	return time.Duration(minutes) * time.Minute
}

// sessionUserID extracts and validates the session token, preferring the
// cookie and falling back to a bearer Authorization header.
func sessionUserID(c *gin.Context) (int64, error) {
	tokenString, err := c.Cookie(sessionCookie)
	if err != nil {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, fmt.Errorf("no session")
		}
		tokenString = parts[1]
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return 0, fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid session claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid session claims")
	}
	return int64(id), nil
}

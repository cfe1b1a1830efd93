package models

// User represents a dashboard user account.
//
// Passwords are stored and compared in plaintext, matching the system
// this service replaces. See DESIGN.md before changing the scheme.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Factory  string `json:"factory"`
}

// UserCreateRequest represents user creation request
type UserCreateRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Factory  string `json:"factory" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

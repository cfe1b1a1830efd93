package models

// Factory represents a physical manufacturing site. Its name is the
// tenancy key every other record is scoped by.
type Factory struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// FactoryCreateRequest represents factory creation request
type FactoryCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

package models

// StockStatus represents the inventory adequacy classification
type StockStatus string

const (
	StockAdequate StockStatus = "Adequate"
	StockLow      StockStatus = "Low Stock"
	StockCritical StockStatus = "Critical"
)

// Inventory represents a tracked material at a factory. Status is a pure
// function of currentStock vs minRequired and is never taken from clients.
type Inventory struct {
	ID           int64       `json:"id"`
	Material     string      `json:"material"`
	CurrentStock float64     `json:"currentStock"`
	Unit         string      `json:"unit"`
	MinRequired  float64     `json:"minRequired"`
	Status       StockStatus `json:"status"`
	NextDelivery *string     `json:"nextDelivery"`
	FactoryID    string      `json:"factoryId"`
}

// InventoryCreateRequest represents inventory item creation request
type InventoryCreateRequest struct {
	Material     string  `json:"material" binding:"required"`
	CurrentStock float64 `json:"currentStock" binding:"min=0"`
	Unit         string  `json:"unit" binding:"required"`
	MinRequired  float64 `json:"minRequired" binding:"min=0"`
	NextDelivery *string `json:"nextDelivery"`
	FactoryID    string  `json:"factoryId" binding:"required"`
}

// InventoryUpdate enumerates the fields a PATCH may change
type InventoryUpdate struct {
	Material     *string  `json:"material"`
	CurrentStock *float64 `json:"currentStock" binding:"omitempty,min=0"`
	Unit         *string  `json:"unit"`
	MinRequired  *float64 `json:"minRequired" binding:"omitempty,min=0"`
	NextDelivery *string  `json:"nextDelivery"`
}

// Apply merges the set fields into item
func (u InventoryUpdate) Apply(item *Inventory) {
	if u.Material != nil {
		item.Material = *u.Material
	}
	if u.CurrentStock != nil {
		item.CurrentStock = *u.CurrentStock
	}
	if u.Unit != nil {
		item.Unit = *u.Unit
	}
	if u.MinRequired != nil {
		item.MinRequired = *u.MinRequired
	}
	if u.NextDelivery != nil {
		item.NextDelivery = u.NextDelivery
	}
}

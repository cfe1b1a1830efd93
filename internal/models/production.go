package models

// LineStatus represents the production line status enum
type LineStatus string

const (
	LineActive      LineStatus = "Active"
	LineDelayed     LineStatus = "Delayed"
	LineMaintenance LineStatus = "Maintenance"
	LineCompleted   LineStatus = "Completed"
)

// ValidateLineStatus validates if the status is valid
func ValidateLineStatus(status string) bool {
	switch LineStatus(status) {
	case LineActive, LineDelayed, LineMaintenance, LineCompleted:
		return true
	default:
		return false
	}
}

// ProductionLine represents a manufacturing line tracked by target and
// completed output. Efficiency is a rounded integer percent.
type ProductionLine struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Product    string     `json:"product"`
	Target     int        `json:"target"`
	Completed  int        `json:"completed"`
	Efficiency int        `json:"efficiency"`
	Status     LineStatus `json:"status"`
	FactoryID  string     `json:"factoryId"`
}

// ProductionLineCreateRequest represents line creation request.
// Efficiency is derived from completed/target when omitted.
type ProductionLineCreateRequest struct {
	Name       string     `json:"name" binding:"required"`
	Product    string     `json:"product" binding:"required"`
	Target     int        `json:"target" binding:"min=0"`
	Completed  int        `json:"completed" binding:"min=0"`
	Efficiency *int       `json:"efficiency" binding:"omitempty,min=0"`
	Status     LineStatus `json:"status" binding:"omitempty,oneof=Active Delayed Maintenance Completed"`
	FactoryID  string     `json:"factoryId" binding:"required"`
}

// ProductionLineUpdate enumerates the fields a PATCH may change.
// The factory association is fixed at creation.
type ProductionLineUpdate struct {
	Name       *string     `json:"name"`
	Product    *string     `json:"product"`
	Target     *int        `json:"target" binding:"omitempty,min=0"`
	Completed  *int        `json:"completed" binding:"omitempty,min=0"`
	Efficiency *int        `json:"efficiency" binding:"omitempty,min=0"`
	Status     *LineStatus `json:"status" binding:"omitempty,oneof=Active Delayed Maintenance Completed"`
}

// Apply merges the set fields into line. Derivation of efficiency and
// status from the merged numbers is the store's job.
func (u ProductionLineUpdate) Apply(line *ProductionLine) {
	if u.Name != nil {
		line.Name = *u.Name
	}
	if u.Product != nil {
		line.Product = *u.Product
	}
	if u.Target != nil {
		line.Target = *u.Target
	}
	if u.Completed != nil {
		line.Completed = *u.Completed
	}
	if u.Efficiency != nil {
		line.Efficiency = *u.Efficiency
	}
	if u.Status != nil {
		line.Status = *u.Status
	}
}

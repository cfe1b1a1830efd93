package models

// AlertType represents the alert severity enum
type AlertType string

const (
	AlertError   AlertType = "error"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
)

// Alert represents an operational notification scoped to a factory
type Alert struct {
	ID        int64     `json:"id"`
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Read      bool      `json:"read"`
	FactoryID string    `json:"factoryId"`
}

// AlertCreateRequest represents alert creation request
type AlertCreateRequest struct {
	Type      AlertType `json:"type" binding:"required,oneof=error warning info"`
	Title     string    `json:"title" binding:"required"`
	Message   string    `json:"message" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Read      bool      `json:"read"`
	FactoryID string    `json:"factoryId" binding:"required"`
}

// AlertUpdate enumerates the fields a PATCH may change. Marking an alert
// read is the common case.
type AlertUpdate struct {
	Type    *AlertType `json:"type" binding:"omitempty,oneof=error warning info"`
	Title   *string    `json:"title"`
	Message *string    `json:"message"`
	Time    *string    `json:"time"`
	Read    *bool      `json:"read"`
}

// Apply merges the set fields into alert
func (u AlertUpdate) Apply(alert *Alert) {
	if u.Type != nil {
		alert.Type = *u.Type
	}
	if u.Title != nil {
		alert.Title = *u.Title
	}
	if u.Message != nil {
		alert.Message = *u.Message
	}
	if u.Time != nil {
		alert.Time = *u.Time
	}
	if u.Read != nil {
		alert.Read = *u.Read
	}
}

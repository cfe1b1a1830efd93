package models

// DashboardMetrics is the per-factory aggregate the dashboard renders.
// ActiveLines and Attendance are "count/total" strings; the percents are
// rounded integers.
type DashboardMetrics struct {
	ProductionEfficiency int    `json:"productionEfficiency"`
	ActiveLines          string `json:"activeLines"`
	TodaysOutput         int    `json:"todaysOutput"`
	Attendance           string `json:"attendance"`
	AttendanceRate       int    `json:"attendanceRate"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

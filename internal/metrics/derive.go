// Package metrics holds the derivation rules for status/efficiency fields
// and the per-factory dashboard aggregation.
package metrics

import (
	"math"

	"github.com/factoryops/dashboard-service/internal/models"
)

// StockStatus classifies an inventory level against its minimum.
// Below half the minimum is Critical, below the minimum is Low Stock,
// everything else is Adequate. The comparison is multiplication-based so
// a zero minimum never divides and always yields Adequate.
func StockStatus(currentStock, minRequired float64) models.StockStatus {
	switch {
	case currentStock < minRequired*0.5:
		return models.StockCritical
	case currentStock < minRequired:
		return models.StockLow
	default:
		return models.StockAdequate
	}
}

// Efficiency returns completed/target as an integer percent, rounded half
// away from zero. A non-positive target yields 0.
func Efficiency(completed, target int) int {
	if target <= 0 {
		return 0
	}
	return roundPercent(float64(completed) / float64(target))
}

// LineStatus promotes a line to Completed once its target is met.
// Delayed and Maintenance are caller-set, never derived, and a Completed
// line is never reverted here. Zero-target lines keep their status, the
// same guard the efficiency rule applies.
func LineStatus(completed, target int, current models.LineStatus) models.LineStatus {
	if target > 0 && completed >= target {
		return models.LineCompleted
	}
	return current
}

func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

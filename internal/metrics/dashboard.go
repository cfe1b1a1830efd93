package metrics

import (
	"context"
	"fmt"
	"math"

	"github.com/factoryops/dashboard-service/internal/models"
)

// Source is the slice of the store the aggregator reads. Both store
// backends satisfy it.
type Source interface {
	ListProductionLines(ctx context.Context, factoryID string) ([]models.ProductionLine, error)
	ListWorkforce(ctx context.Context, factoryID string) ([]models.Workforce, error)
}

// Dashboard computes the factory's metrics from the current store state.
// Nothing is cached; every call re-reads both collections. Lines whose
// status is Active or Completed both count as active: a line that hit its
// target is not stalled.
func Dashboard(ctx context.Context, src Source, factoryID string) (models.DashboardMetrics, error) {
	lines, err := src.ListProductionLines(ctx, factoryID)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("listing production lines: %w", err)
	}
	depts, err := src.ListWorkforce(ctx, factoryID)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("listing workforce: %w", err)
	}

	active := 0
	output := 0
	effSum := 0
	for _, line := range lines {
		if line.Status == models.LineActive || line.Status == models.LineCompleted {
			active++
		}
		output += line.Completed
		effSum += line.Efficiency
	}

	avgEfficiency := 0
	if len(lines) > 0 {
		avgEfficiency = int(math.Round(float64(effSum) / float64(len(lines))))
	}

	present := 0
	employees := 0
	for _, dept := range depts {
		present += dept.Present
		employees += dept.Total
	}

	rate := 0
	if employees > 0 {
		rate = roundPercent(float64(present) / float64(employees))
	}

	return models.DashboardMetrics{
		ProductionEfficiency: avgEfficiency,
		ActiveLines:          fmt.Sprintf("%d/%d", active, len(lines)),
		TodaysOutput:         output,
		Attendance:           fmt.Sprintf("%d/%d", present, employees),
		AttendanceRate:       rate,
	}, nil
}

package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/factoryops/dashboard-service/internal/models"
)

type fakeSource struct {
	lines []models.ProductionLine
	depts []models.Workforce
	err   error
}

func (f *fakeSource) ListProductionLines(_ context.Context, _ string) ([]models.ProductionLine, error) {
	return f.lines, f.err
}

func (f *fakeSource) ListWorkforce(_ context.Context, _ string) ([]models.Workforce, error) {
	return f.depts, f.err
}

func TestDashboard_EmptyFactory(t *testing.T) {
	got, err := Dashboard(context.Background(), &fakeSource{}, "Nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.DashboardMetrics{
		ProductionEfficiency: 0,
		ActiveLines:          "0/0",
		TodaysOutput:         0,
		Attendance:           "0/0",
		AttendanceRate:       0,
	}
	if got != want {
		t.Fatalf("Dashboard() = %+v, want %+v", got, want)
	}
}

func TestDashboard_CompletedLinesCountAsActive(t *testing.T) {
	src := &fakeSource{
		lines: []models.ProductionLine{
			{Status: models.LineActive, Completed: 10, Efficiency: 80},
			{Status: models.LineCompleted, Completed: 20, Efficiency: 100},
			{Status: models.LineDelayed, Completed: 5, Efficiency: 50},
		},
		depts: []models.Workforce{
			{Total: 10, Present: 8},
			{Total: 10, Present: 7},
		},
	}
	got, err := Dashboard(context.Background(), src, "Plant")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ActiveLines != "2/3" {
		t.Fatalf("ActiveLines = %q, want 2/3", got.ActiveLines)
	}
	if got.TodaysOutput != 35 {
		t.Fatalf("TodaysOutput = %d, want 35", got.TodaysOutput)
	}
	// (80+100+50)/3 = 76.67, rounded
	if got.ProductionEfficiency != 77 {
		t.Fatalf("ProductionEfficiency = %d, want 77", got.ProductionEfficiency)
	}
	if got.Attendance != "15/20" {
		t.Fatalf("Attendance = %q, want 15/20", got.Attendance)
	}
	if got.AttendanceRate != 75 {
		t.Fatalf("AttendanceRate = %d, want 75", got.AttendanceRate)
	}
}

func TestDashboard_PropagatesStoreError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection lost")}
	if _, err := Dashboard(context.Background(), src, "Plant"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

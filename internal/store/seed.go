package store

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/factoryops/dashboard-service/internal/metrics"
	"github.com/factoryops/dashboard-service/internal/models"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtures struct {
	Factories []struct {
		Name     string `yaml:"name"`
		Location string `yaml:"location"`
	} `yaml:"factories"`
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Role     string `yaml:"role"`
		Factory  string `yaml:"factory"`
	} `yaml:"users"`
	ProductionLines []struct {
		Name       string `yaml:"name"`
		Product    string `yaml:"product"`
		Target     int    `yaml:"target"`
		Completed  int    `yaml:"completed"`
		Efficiency int    `yaml:"efficiency"`
		Status     string `yaml:"status"`
		FactoryID  string `yaml:"factory_id"`
	} `yaml:"production_lines"`
	Inventory []struct {
		Material     string  `yaml:"material"`
		CurrentStock float64 `yaml:"current_stock"`
		Unit         string  `yaml:"unit"`
		MinRequired  float64 `yaml:"min_required"`
		NextDelivery string  `yaml:"next_delivery"`
		FactoryID    string  `yaml:"factory_id"`
	} `yaml:"inventory"`
	Workforce []struct {
		Department string `yaml:"department"`
		Total      int    `yaml:"total"`
		Present    int    `yaml:"present"`
		OnLeave    int    `yaml:"on_leave"`
		Absent     int    `yaml:"absent"`
		FactoryID  string `yaml:"factory_id"`
	} `yaml:"workforce"`
	Alerts []struct {
		Type      string `yaml:"type"`
		Title     string `yaml:"title"`
		Message   string `yaml:"message"`
		Time      string `yaml:"time"`
		Read      bool   `yaml:"read"`
		FactoryID string `yaml:"factory_id"`
	} `yaml:"alerts"`
}

// Seed loads the embedded demo fixtures into s. Inventory statuses are
// derived rather than listed in the file, so the fixtures can never drift
// from the classification rule.
func Seed(ctx context.Context, s Store) error {
	var fx fixtures
	if err := yaml.Unmarshal(fixturesYAML, &fx); err != nil {
		return fmt.Errorf("parsing fixtures: %w", err)
	}

	for _, f := range fx.Factories {
		if _, err := s.CreateFactory(ctx, models.Factory{Name: f.Name, Location: f.Location}); err != nil {
			return fmt.Errorf("seeding factory %q: %w", f.Name, err)
		}
	}
	for _, u := range fx.Users {
		user := models.User{
			Username: u.Username,
			Password: u.Password,
			Name:     u.Name,
			Role:     u.Role,
			Factory:  u.Factory,
		}
		if _, err := s.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seeding user %q: %w", u.Username, err)
		}
	}
	for _, l := range fx.ProductionLines {
		line := models.ProductionLine{
			Name:       l.Name,
			Product:    l.Product,
			Target:     l.Target,
			Completed:  l.Completed,
			Efficiency: l.Efficiency,
			Status:     models.LineStatus(l.Status),
			FactoryID:  l.FactoryID,
		}
		if _, err := s.CreateProductionLine(ctx, line); err != nil {
			return fmt.Errorf("seeding production line %q: %w", l.Name, err)
		}
	}
	for _, i := range fx.Inventory {
		item := models.Inventory{
			Material:     i.Material,
			CurrentStock: i.CurrentStock,
			Unit:         i.Unit,
			MinRequired:  i.MinRequired,
			Status:       metrics.StockStatus(i.CurrentStock, i.MinRequired),
			FactoryID:    i.FactoryID,
		}
		if i.NextDelivery != "" {
			delivery := i.NextDelivery
			item.NextDelivery = &delivery
		}
		if _, err := s.CreateInventoryItem(ctx, item); err != nil {
			return fmt.Errorf("seeding inventory %q: %w", i.Material, err)
		}
	}
	for _, w := range fx.Workforce {
		dept := models.Workforce{
			Department: w.Department,
			Total:      w.Total,
			Present:    w.Present,
			OnLeave:    w.OnLeave,
			Absent:     w.Absent,
			FactoryID:  w.FactoryID,
		}
		if _, err := s.CreateWorkforceDepartment(ctx, dept); err != nil {
			return fmt.Errorf("seeding workforce %q: %w", w.Department, err)
		}
	}
	for _, a := range fx.Alerts {
		alert := models.Alert{
			Type:      models.AlertType(a.Type),
			Title:     a.Title,
			Message:   a.Message,
			Time:      a.Time,
			Read:      a.Read,
			FactoryID: a.FactoryID,
		}
		if _, err := s.CreateAlert(ctx, alert); err != nil {
			return fmt.Errorf("seeding alert %q: %w", a.Title, err)
		}
	}
	return nil
}

// Package store defines the storage contract for all dashboard entities
// and provides two interchangeable backends: an in-memory map store for
// development and tests, and a Postgres store for production.
package store

import (
	"context"
	"errors"

	"github.com/factoryops/dashboard-service/internal/metrics"
	"github.com/factoryops/dashboard-service/internal/models"
)

// ErrNotFound is returned when a referenced record id does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a create would violate a uniqueness rule,
// currently usernames and factory names.
var ErrDuplicate = errors.New("duplicate record")

// Store is the contract handlers and the aggregator are written against.
// List calls take the factory name and return records in insertion order,
// except alerts which sort unread before read. IDs are assigned
// monotonically per entity type starting at 1 and are never reused.
type Store interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	ListFactories(ctx context.Context) ([]models.Factory, error)
	GetFactory(ctx context.Context, id int64) (models.Factory, error)
	GetFactoryByName(ctx context.Context, name string) (models.Factory, error)
	CreateFactory(ctx context.Context, factory models.Factory) (models.Factory, error)

	ListProductionLines(ctx context.Context, factoryID string) ([]models.ProductionLine, error)
	GetProductionLine(ctx context.Context, id int64) (models.ProductionLine, error)
	CreateProductionLine(ctx context.Context, line models.ProductionLine) (models.ProductionLine, error)
	UpdateProductionLine(ctx context.Context, id int64, upd models.ProductionLineUpdate) (models.ProductionLine, error)

	ListInventory(ctx context.Context, factoryID string) ([]models.Inventory, error)
	GetInventoryItem(ctx context.Context, id int64) (models.Inventory, error)
	CreateInventoryItem(ctx context.Context, item models.Inventory) (models.Inventory, error)
	UpdateInventoryItem(ctx context.Context, id int64, upd models.InventoryUpdate) (models.Inventory, error)

	ListWorkforce(ctx context.Context, factoryID string) ([]models.Workforce, error)
	GetWorkforceDepartment(ctx context.Context, id int64) (models.Workforce, error)
	CreateWorkforceDepartment(ctx context.Context, dept models.Workforce) (models.Workforce, error)
	UpdateWorkforceDepartment(ctx context.Context, id int64, upd models.WorkforceUpdate) (models.Workforce, error)

	ListAlerts(ctx context.Context, factoryID string) ([]models.Alert, error)
	GetAlert(ctx context.Context, id int64) (models.Alert, error)
	CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
	UpdateAlert(ctx context.Context, id int64, upd models.AlertUpdate) (models.Alert, error)
}

// applyProductionLineUpdate merges the patch and re-derives the fields
// that depend on the merged numbers. Both backends call this inside their
// write path so derived values are persisted atomically with their
// inputs. An explicit efficiency in the patch wins over the derivation.
func applyProductionLineUpdate(line *models.ProductionLine, upd models.ProductionLineUpdate) {
	upd.Apply(line)
	if upd.Completed == nil && upd.Target == nil {
		return
	}
	if upd.Efficiency == nil {
		line.Efficiency = metrics.Efficiency(line.Completed, line.Target)
	}
	line.Status = metrics.LineStatus(line.Completed, line.Target, line.Status)
}

// applyInventoryUpdate merges the patch and reclassifies the stock status
// whenever either threshold input changed.
func applyInventoryUpdate(item *models.Inventory, upd models.InventoryUpdate) {
	upd.Apply(item)
	if upd.CurrentStock != nil || upd.MinRequired != nil {
		item.Status = metrics.StockStatus(item.CurrentStock, item.MinRequired)
	}
}

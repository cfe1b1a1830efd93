package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/factoryops/dashboard-service/internal/models"
)

// Memory is the map-backed store used for development and tests. A single
// RWMutex guards all collections; ids are monotonic per entity type and
// double as insertion order, so listing sorts by id.
type Memory struct {
	mu sync.RWMutex

	users     map[int64]models.User
	factories map[int64]models.Factory
	lines     map[int64]models.ProductionLine
	inventory map[int64]models.Inventory
	workforce map[int64]models.Workforce
	alerts    map[int64]models.Alert

	nextUserID      int64
	nextFactoryID   int64
	nextLineID      int64
	nextInventoryID int64
	nextWorkforceID int64
	nextAlertID     int64
}

// NewMemory returns an empty in-memory store. Call Seed to load the demo
// fixture set.
func NewMemory() *Memory {
	return &Memory{
		users:           make(map[int64]models.User),
		factories:       make(map[int64]models.Factory),
		lines:           make(map[int64]models.ProductionLine),
		inventory:       make(map[int64]models.Inventory),
		workforce:       make(map[int64]models.Workforce),
		alerts:          make(map[int64]models.Alert),
		nextUserID:      1,
		nextFactoryID:   1,
		nextLineID:      1,
		nextInventoryID: 1,
		nextWorkforceID: 1,
		nextAlertID:     1,
	}
}

func (m *Memory) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return models.User{}, fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	m.users[user.ID] = user
	return user, nil
}

func (m *Memory) GetUser(_ context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) ListFactories(_ context.Context) ([]models.Factory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Factory, 0, len(m.factories))
	for _, f := range m.factories {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetFactory(_ context.Context, id int64) (models.Factory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.factories[id]
	if !ok {
		return models.Factory{}, ErrNotFound
	}
	return f, nil
}

func (m *Memory) GetFactoryByName(_ context.Context, name string) (models.Factory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.factories {
		if f.Name == name {
			return f, nil
		}
	}
	return models.Factory{}, ErrNotFound
}

func (m *Memory) CreateFactory(_ context.Context, factory models.Factory) (models.Factory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.factories {
		if existing.Name == factory.Name {
			return models.Factory{}, fmt.Errorf("factory %q: %w", factory.Name, ErrDuplicate)
		}
	}
	factory.ID = m.nextFactoryID
	m.nextFactoryID++
	m.factories[factory.ID] = factory
	return factory, nil
}

func (m *Memory) ListProductionLines(_ context.Context, factoryID string) ([]models.ProductionLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.ProductionLine{}
	for _, line := range m.lines {
		if line.FactoryID == factoryID {
			out = append(out, line)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetProductionLine(_ context.Context, id int64) (models.ProductionLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	line, ok := m.lines[id]
	if !ok {
		return models.ProductionLine{}, ErrNotFound
	}
	return line, nil
}

func (m *Memory) CreateProductionLine(_ context.Context, line models.ProductionLine) (models.ProductionLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line.ID = m.nextLineID
	m.nextLineID++
	m.lines[line.ID] = line
	return line, nil
}

func (m *Memory) UpdateProductionLine(_ context.Context, id int64, upd models.ProductionLineUpdate) (models.ProductionLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	line, ok := m.lines[id]
	if !ok {
		return models.ProductionLine{}, ErrNotFound
	}
	applyProductionLineUpdate(&line, upd)
	m.lines[id] = line
	return line, nil
}

func (m *Memory) ListInventory(_ context.Context, factoryID string) ([]models.Inventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Inventory{}
	for _, item := range m.inventory {
		if item.FactoryID == factoryID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetInventoryItem(_ context.Context, id int64) (models.Inventory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.inventory[id]
	if !ok {
		return models.Inventory{}, ErrNotFound
	}
	return item, nil
}

func (m *Memory) CreateInventoryItem(_ context.Context, item models.Inventory) (models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextInventoryID
	m.nextInventoryID++
	m.inventory[item.ID] = item
	return item, nil
}

func (m *Memory) UpdateInventoryItem(_ context.Context, id int64, upd models.InventoryUpdate) (models.Inventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.inventory[id]
	if !ok {
		return models.Inventory{}, ErrNotFound
	}
	applyInventoryUpdate(&item, upd)
	m.inventory[id] = item
	return item, nil
}

func (m *Memory) ListWorkforce(_ context.Context, factoryID string) ([]models.Workforce, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Workforce{}
	for _, dept := range m.workforce {
		if dept.FactoryID == factoryID {
			out = append(out, dept)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetWorkforceDepartment(_ context.Context, id int64) (models.Workforce, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dept, ok := m.workforce[id]
	if !ok {
		return models.Workforce{}, ErrNotFound
	}
	return dept, nil
}

func (m *Memory) CreateWorkforceDepartment(_ context.Context, dept models.Workforce) (models.Workforce, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dept.ID = m.nextWorkforceID
	m.nextWorkforceID++
	m.workforce[dept.ID] = dept
	return dept, nil
}

func (m *Memory) UpdateWorkforceDepartment(_ context.Context, id int64, upd models.WorkforceUpdate) (models.Workforce, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dept, ok := m.workforce[id]
	if !ok {
		return models.Workforce{}, ErrNotFound
	}
	upd.Apply(&dept)
	m.workforce[id] = dept
	return dept, nil
}

func (m *Memory) ListAlerts(_ context.Context, factoryID string) ([]models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Alert{}
	for _, alert := range m.alerts {
		if alert.FactoryID == factoryID {
			out = append(out, alert)
		}
	}
	// Unread first, insertion order within each group.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Read != out[j].Read {
			return !out[i].Read
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) GetAlert(_ context.Context, id int64) (models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	alert, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	return alert, nil
}

func (m *Memory) CreateAlert(_ context.Context, alert models.Alert) (models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	alert.ID = m.nextAlertID
	m.nextAlertID++
	m.alerts[alert.ID] = alert
	return alert, nil
}

func (m *Memory) UpdateAlert(_ context.Context, id int64, upd models.AlertUpdate) (models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	alert, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	upd.Apply(&alert)
	m.alerts[id] = alert
	return alert, nil
}

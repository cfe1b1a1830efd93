package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/factoryops/dashboard-service/internal/models"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Postgres is the production store. Schema is managed by goose migrations
// embedded in the binary and applied on startup.
type Postgres struct {
	db *sql.DB
}

// NewPostgres connects using DATABASE_URL or the DB_* variables and runs
// pending migrations.
func NewPostgres() (*Postgres, error) {
	return NewPostgresWithRetry(5, time.Second)
}

// NewPostgresWithRetry connects with exponential backoff for serverless
// databases that need a cold-start grace period.
func NewPostgresWithRetry(maxRetries int, initialDelay time.Duration) (*Postgres, error) {
	connStr := connStringFromEnv()

	var db *sql.DB
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[STORE-DB] Connection attempt %d/%d", attempt, maxRetries)

		conn, err := sql.Open("postgres", connStr)
		if err == nil {
			if err = conn.Ping(); err == nil {
				db = conn
				break
			}
			conn.Close()
		}
		lastErr = fmt.Errorf("failed to ping database: %w", err)
		log.Printf("[STORE-DB] Connection failed (attempt %d): %v", attempt, err)

		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<(attempt-1))
			log.Printf("[STORE-DB] Retrying in %v...", delay)
			time.Sleep(delay)
		}
	}
	if db == nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[STORE-DB] Database connection established, schema up to date")
	return &Postgres{db: db}, nil
}

func connStringFromEnv() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	dbname := envOr("DB_NAME", "factoryops")
	sslmode := envOr("DB_SSLMODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		host, port, user, dbname, sslmode)
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		connStr += " password=" + password
	}
	return connStr
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Close closes the underlying connection pool
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Health checks the database connection
func (p *Postgres) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, name, role, factory)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Username, user.Password, user.Name, user.Role, user.Factory,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return models.User{}, fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (p *Postgres) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx,
		`SELECT id, username, password, name, role, factory FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Username, &user.Password, &user.Name, &user.Role, &user.Factory)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := p.db.QueryRowContext(ctx,
		`SELECT id, username, password, name, role, factory FROM users WHERE username = $1`, username,
	).Scan(&user.ID, &user.Username, &user.Password, &user.Name, &user.Role, &user.Factory)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("getting user by username: %w", err)
	}
	return user, nil
}

func (p *Postgres) ListFactories(ctx context.Context) ([]models.Factory, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, location FROM factories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing factories: %w", err)
	}
	defer rows.Close()

	out := []models.Factory{}
	for rows.Next() {
		var f models.Factory
		if err := rows.Scan(&f.ID, &f.Name, &f.Location); err != nil {
			return nil, fmt.Errorf("scanning factory: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (p *Postgres) GetFactory(ctx context.Context, id int64) (models.Factory, error) {
	var f models.Factory
	err := p.db.QueryRowContext(ctx,
		`SELECT id, name, location FROM factories WHERE id = $1`, id,
	).Scan(&f.ID, &f.Name, &f.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Factory{}, ErrNotFound
	}
	if err != nil {
		return models.Factory{}, fmt.Errorf("getting factory: %w", err)
	}
	return f, nil
}

func (p *Postgres) GetFactoryByName(ctx context.Context, name string) (models.Factory, error) {
	var f models.Factory
	err := p.db.QueryRowContext(ctx,
		`SELECT id, name, location FROM factories WHERE name = $1`, name,
	).Scan(&f.ID, &f.Name, &f.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Factory{}, ErrNotFound
	}
	if err != nil {
		return models.Factory{}, fmt.Errorf("getting factory by name: %w", err)
	}
	return f, nil
}

func (p *Postgres) CreateFactory(ctx context.Context, factory models.Factory) (models.Factory, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO factories (name, location) VALUES ($1, $2) RETURNING id`,
		factory.Name, factory.Location,
	).Scan(&factory.ID)
	if isUniqueViolation(err) {
		return models.Factory{}, fmt.Errorf("factory %q: %w", factory.Name, ErrDuplicate)
	}
	if err != nil {
		return models.Factory{}, fmt.Errorf("creating factory: %w", err)
	}
	return factory, nil
}

const productionLineColumns = `id, name, product, target, completed, efficiency, status, factory_id`

func scanProductionLine(row interface{ Scan(...any) error }) (models.ProductionLine, error) {
	var line models.ProductionLine
	err := row.Scan(&line.ID, &line.Name, &line.Product, &line.Target,
		&line.Completed, &line.Efficiency, &line.Status, &line.FactoryID)
	return line, err
}

func (p *Postgres) ListProductionLines(ctx context.Context, factoryID string) ([]models.ProductionLine, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+productionLineColumns+` FROM production_lines WHERE factory_id = $1 ORDER BY id`,
		factoryID)
	if err != nil {
		return nil, fmt.Errorf("listing production lines: %w", err)
	}
	defer rows.Close()

	out := []models.ProductionLine{}
	for rows.Next() {
		line, err := scanProductionLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning production line: %w", err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

func (p *Postgres) GetProductionLine(ctx context.Context, id int64) (models.ProductionLine, error) {
	line, err := scanProductionLine(p.db.QueryRowContext(ctx,
		`SELECT `+productionLineColumns+` FROM production_lines WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProductionLine{}, ErrNotFound
	}
	if err != nil {
		return models.ProductionLine{}, fmt.Errorf("getting production line: %w", err)
	}
	return line, nil
}

func (p *Postgres) CreateProductionLine(ctx context.Context, line models.ProductionLine) (models.ProductionLine, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO production_lines (name, product, target, completed, efficiency, status, factory_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		line.Name, line.Product, line.Target, line.Completed, line.Efficiency, line.Status, line.FactoryID,
	).Scan(&line.ID)
	if err != nil {
		return models.ProductionLine{}, fmt.Errorf("creating production line: %w", err)
	}
	return line, nil
}

// UpdateProductionLine merges the patch inside a transaction holding a row
// lock, so concurrent patches to the same line cannot interleave between
// the read and the write.
func (p *Postgres) UpdateProductionLine(ctx context.Context, id int64, upd models.ProductionLineUpdate) (models.ProductionLine, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.ProductionLine{}, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	line, err := scanProductionLine(tx.QueryRowContext(ctx,
		`SELECT `+productionLineColumns+` FROM production_lines WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProductionLine{}, ErrNotFound
	}
	if err != nil {
		return models.ProductionLine{}, fmt.Errorf("locking production line: %w", err)
	}

	applyProductionLineUpdate(&line, upd)

	_, err = tx.ExecContext(ctx,
		`UPDATE production_lines
		 SET name = $1, product = $2, target = $3, completed = $4, efficiency = $5, status = $6
		 WHERE id = $7`,
		line.Name, line.Product, line.Target, line.Completed, line.Efficiency, line.Status, line.ID)
	if err != nil {
		return models.ProductionLine{}, fmt.Errorf("updating production line: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.ProductionLine{}, fmt.Errorf("committing update: %w", err)
	}
	return line, nil
}

const inventoryColumns = `id, material, current_stock, unit, min_required, status, next_delivery, factory_id`

func scanInventory(row interface{ Scan(...any) error }) (models.Inventory, error) {
	var item models.Inventory
	err := row.Scan(&item.ID, &item.Material, &item.CurrentStock, &item.Unit,
		&item.MinRequired, &item.Status, &item.NextDelivery, &item.FactoryID)
	return item, err
}

func (p *Postgres) ListInventory(ctx context.Context, factoryID string) ([]models.Inventory, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE factory_id = $1 ORDER BY id`,
		factoryID)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	out := []models.Inventory{}
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (p *Postgres) GetInventoryItem(ctx context.Context, id int64) (models.Inventory, error) {
	item, err := scanInventory(p.db.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inventory{}, ErrNotFound
	}
	if err != nil {
		return models.Inventory{}, fmt.Errorf("getting inventory item: %w", err)
	}
	return item, nil
}

func (p *Postgres) CreateInventoryItem(ctx context.Context, item models.Inventory) (models.Inventory, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO inventory (material, current_stock, unit, min_required, status, next_delivery, factory_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		item.Material, item.CurrentStock, item.Unit, item.MinRequired, item.Status, item.NextDelivery, item.FactoryID,
	).Scan(&item.ID)
	if err != nil {
		return models.Inventory{}, fmt.Errorf("creating inventory item: %w", err)
	}
	return item, nil
}

func (p *Postgres) UpdateInventoryItem(ctx context.Context, id int64, upd models.InventoryUpdate) (models.Inventory, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Inventory{}, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	item, err := scanInventory(tx.QueryRowContext(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inventory{}, ErrNotFound
	}
	if err != nil {
		return models.Inventory{}, fmt.Errorf("locking inventory item: %w", err)
	}

	applyInventoryUpdate(&item, upd)

	_, err = tx.ExecContext(ctx,
		`UPDATE inventory
		 SET material = $1, current_stock = $2, unit = $3, min_required = $4, status = $5, next_delivery = $6
		 WHERE id = $7`,
		item.Material, item.CurrentStock, item.Unit, item.MinRequired, item.Status, item.NextDelivery, item.ID)
	if err != nil {
		return models.Inventory{}, fmt.Errorf("updating inventory item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Inventory{}, fmt.Errorf("committing update: %w", err)
	}
	return item, nil
}

const workforceColumns = `id, department, total, present, on_leave, absent, factory_id`

func scanWorkforce(row interface{ Scan(...any) error }) (models.Workforce, error) {
	var dept models.Workforce
	err := row.Scan(&dept.ID, &dept.Department, &dept.Total, &dept.Present,
		&dept.OnLeave, &dept.Absent, &dept.FactoryID)
	return dept, err
}

func (p *Postgres) ListWorkforce(ctx context.Context, factoryID string) ([]models.Workforce, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+workforceColumns+` FROM workforce WHERE factory_id = $1 ORDER BY id`,
		factoryID)
	if err != nil {
		return nil, fmt.Errorf("listing workforce: %w", err)
	}
	defer rows.Close()

	out := []models.Workforce{}
	for rows.Next() {
		dept, err := scanWorkforce(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workforce department: %w", err)
		}
		out = append(out, dept)
	}
	return out, rows.Err()
}

func (p *Postgres) GetWorkforceDepartment(ctx context.Context, id int64) (models.Workforce, error) {
	dept, err := scanWorkforce(p.db.QueryRowContext(ctx,
		`SELECT `+workforceColumns+` FROM workforce WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Workforce{}, ErrNotFound
	}
	if err != nil {
		return models.Workforce{}, fmt.Errorf("getting workforce department: %w", err)
	}
	return dept, nil
}

func (p *Postgres) CreateWorkforceDepartment(ctx context.Context, dept models.Workforce) (models.Workforce, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO workforce (department, total, present, on_leave, absent, factory_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		dept.Department, dept.Total, dept.Present, dept.OnLeave, dept.Absent, dept.FactoryID,
	).Scan(&dept.ID)
	if err != nil {
		return models.Workforce{}, fmt.Errorf("creating workforce department: %w", err)
	}
	return dept, nil
}

func (p *Postgres) UpdateWorkforceDepartment(ctx context.Context, id int64, upd models.WorkforceUpdate) (models.Workforce, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Workforce{}, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	dept, err := scanWorkforce(tx.QueryRowContext(ctx,
		`SELECT `+workforceColumns+` FROM workforce WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Workforce{}, ErrNotFound
	}
	if err != nil {
		return models.Workforce{}, fmt.Errorf("locking workforce department: %w", err)
	}

	upd.Apply(&dept)

	_, err = tx.ExecContext(ctx,
		`UPDATE workforce
		 SET department = $1, total = $2, present = $3, on_leave = $4, absent = $5
		 WHERE id = $6`,
		dept.Department, dept.Total, dept.Present, dept.OnLeave, dept.Absent, dept.ID)
	if err != nil {
		return models.Workforce{}, fmt.Errorf("updating workforce department: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Workforce{}, fmt.Errorf("committing update: %w", err)
	}
	return dept, nil
}

const alertColumns = `id, type, title, message, "time", read, factory_id`

func scanAlert(row interface{ Scan(...any) error }) (models.Alert, error) {
	var alert models.Alert
	err := row.Scan(&alert.ID, &alert.Type, &alert.Title, &alert.Message,
		&alert.Time, &alert.Read, &alert.FactoryID)
	return alert, err
}

func (p *Postgres) ListAlerts(ctx context.Context, factoryID string) ([]models.Alert, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE factory_id = $1 ORDER BY read ASC, id ASC`,
		factoryID)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	out := []models.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		out = append(out, alert)
	}
	return out, rows.Err()
}

func (p *Postgres) GetAlert(ctx context.Context, id int64) (models.Alert, error) {
	alert, err := scanAlert(p.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Alert{}, ErrNotFound
	}
	if err != nil {
		return models.Alert{}, fmt.Errorf("getting alert: %w", err)
	}
	return alert, nil
}

func (p *Postgres) CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	err := p.db.QueryRowContext(ctx,
		`INSERT INTO alerts (type, title, message, "time", read, factory_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		alert.Type, alert.Title, alert.Message, alert.Time, alert.Read, alert.FactoryID,
	).Scan(&alert.ID)
	if err != nil {
		return models.Alert{}, fmt.Errorf("creating alert: %w", err)
	}
	return alert, nil
}

func (p *Postgres) UpdateAlert(ctx context.Context, id int64, upd models.AlertUpdate) (models.Alert, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Alert{}, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	alert, err := scanAlert(tx.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Alert{}, ErrNotFound
	}
	if err != nil {
		return models.Alert{}, fmt.Errorf("locking alert: %w", err)
	}

	upd.Apply(&alert)

	_, err = tx.ExecContext(ctx,
		`UPDATE alerts
		 SET type = $1, title = $2, message = $3, "time" = $4, read = $5
		 WHERE id = $6`,
		alert.Type, alert.Title, alert.Message, alert.Time, alert.Read, alert.ID)
	if err != nil {
		return models.Alert{}, fmt.Errorf("updating alert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Alert{}, fmt.Errorf("committing update: %w", err)
	}
	return alert, nil
}

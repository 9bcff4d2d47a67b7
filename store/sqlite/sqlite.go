/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements planning.FactStore plus master-data persistence (stores,
  SKUs) using SQLite. In production, the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  planning_facts: Sparse weekly unit counts, one row per (store, sku, week)
  stores:         Store master records, position column preserves list order
  skus:           SKU master records with per-unit price and cost

UPSERT:
  planning_facts uses INSERT ... ON CONFLICT DO UPDATE on the composite
  primary key, so at most one fact ever exists per cell and the last
  accepted write wins.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/planning.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - planning/store.go: FactStore interface definition
  - planning/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/planning-engine/planning"
)

// Store implements planning.FactStore and master-data persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Sparse weekly sales facts, one row per editable cell
	CREATE TABLE IF NOT EXISTS planning_facts (
		store_code TEXT NOT NULL,
		sku_code   TEXT NOT NULL,
		week       TEXT NOT NULL,
		units      REAL NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (store_code, sku_code, week)
	);

	CREATE INDEX IF NOT EXISTS idx_facts_week
		ON planning_facts(week);

	-- Store master records; position preserves the planner's list order
	CREATE TABLE IF NOT EXISTS stores (
		code     TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		city     TEXT,
		state    TEXT,
		position INTEGER NOT NULL DEFAULT 0
	);

	-- SKU master records; price/cost stored as decimal strings
	CREATE TABLE IF NOT EXISTS skus (
		code       TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		category   TEXT,
		department TEXT,
		price      TEXT NOT NULL,
		cost       TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// FACT STORE - planning.FactStore implementation
// =============================================================================

// Upsert inserts or replaces the fact for its (store, sku, week) key.
// Non-finite unit counts are rejected with ErrInvalidUnits.
func (s *Store) Upsert(ctx context.Context, fact planning.SalesFact) error {
	if err := fact.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO planning_facts (store_code, sku_code, week, units, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(store_code, sku_code, week) DO UPDATE SET
			units = excluded.units,
			updated_at = excluded.updated_at`,
		fact.StoreCode, fact.SkuCode, string(fact.Week), fact.Units,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get returns the unit count for a cell. Absence is zero, never an error.
func (s *Store) Get(ctx context.Context, storeCode, skuCode string, week planning.WeekID) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var units float64
	err := s.db.QueryRowContext(ctx, `
		SELECT units FROM planning_facts
		WHERE store_code = ? AND sku_code = ? AND week = ?`,
		storeCode, skuCode, string(week)).Scan(&units)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return units, nil
}

// All returns every fact. Order is not significant.
func (s *Store) All(ctx context.Context) ([]planning.SalesFact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT store_code, sku_code, week, units FROM planning_facts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var facts []planning.SalesFact
	for rows.Next() {
		var f planning.SalesFact
		var week string
		if err := rows.Scan(&f.StoreCode, &f.SkuCode, &week, &f.Units); err != nil {
			return nil, err
		}
		f.Week = planning.WeekID(week)
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// =============================================================================
// STORE MASTER DATA
// =============================================================================

// ListStores returns all store records in list order.
func (s *Store) ListStores(ctx context.Context) ([]planning.StoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, city, state FROM stores ORDER BY position, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []planning.StoreRecord
	for rows.Next() {
		var st planning.StoreRecord
		if err := rows.Scan(&st.Code, &st.Name, &st.City, &st.State); err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	return stores, rows.Err()
}

// GetStore returns a single store record, or nil if absent.
func (s *Store) GetStore(ctx context.Context, code string) (*planning.StoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st planning.StoreRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT code, name, city, state FROM stores WHERE code = ?`, code).
		Scan(&st.Code, &st.Name, &st.City, &st.State)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// SaveStore inserts or updates a store record. New records go to the end
// of the list.
func (s *Store) SaveStore(ctx context.Context, st planning.StoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (code, name, city, state, position)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM stores))
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			city = excluded.city,
			state = excluded.state`,
		st.Code, st.Name, st.City, st.State)
	return err
}

// DeleteStore removes a store record.
func (s *Store) DeleteStore(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM stores WHERE code = ?`, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return planning.ErrStoreNotFound
	}
	return nil
}

// ReorderStores rewrites list positions to match the given code order.
func (s *Store) ReorderStores(ctx context.Context, codes []string) error {
	return s.reorder(ctx, "stores", codes)
}

// =============================================================================
// SKU MASTER DATA
// =============================================================================

// ListSkus returns all SKU records in list order.
func (s *Store) ListSkus(ctx context.Context) ([]planning.SkuRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, category, department, price, cost
		FROM skus ORDER BY position, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skus []planning.SkuRecord
	for rows.Next() {
		sku, err := scanSku(rows)
		if err != nil {
			return nil, err
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

// GetSku returns a single SKU record, or nil if absent.
func (s *Store) GetSku(ctx context.Context, code string) (*planning.SkuRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT code, name, category, department, price, cost
		FROM skus WHERE code = ?`, code)

	sku, err := scanSku(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sku, nil
}

// SaveSku inserts or updates a SKU record. New records go to the end of
// the list.
func (s *Store) SaveSku(ctx context.Context, sku planning.SkuRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skus (code, name, category, department, price, cost, position)
		VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM skus))
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			department = excluded.department,
			price = excluded.price,
			cost = excluded.cost`,
		sku.Code, sku.Name, sku.Category, sku.Department,
		sku.Price.String(), sku.Cost.String())
	return err
}

// DeleteSku removes a SKU record.
func (s *Store) DeleteSku(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM skus WHERE code = ?`, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return planning.ErrSkuNotFound
	}
	return nil
}

// ReorderSkus rewrites list positions to match the given code order.
func (s *Store) ReorderSkus(ctx context.Context, codes []string) error {
	return s.reorder(ctx, "skus", codes)
}

// =============================================================================
// HELPERS
// =============================================================================

// reorder updates position columns atomically inside one transaction.
func (s *Store) reorder(ctx context.Context, table string, codes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf(`UPDATE %s SET position = ? WHERE code = ?`, table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, code := range codes {
		if _, err := stmt.ExecContext(ctx, i, code); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Reset wipes all tables. Used by scenario loading.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"planning_facts", "stores", "skus"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSku(row rowScanner) (planning.SkuRecord, error) {
	var sku planning.SkuRecord
	var price, cost string
	if err := row.Scan(&sku.Code, &sku.Name, &sku.Category, &sku.Department, &price, &cost); err != nil {
		return sku, err
	}
	var err error
	if sku.Price, err = decimal.NewFromString(price); err != nil {
		return sku, fmt.Errorf("bad price for sku %s: %w", sku.Code, err)
	}
	if sku.Cost, err = decimal.NewFromString(cost); err != nil {
		return sku, fmt.Errorf("bad cost for sku %s: %w", sku.Code, err)
	}
	return sku, nil
}

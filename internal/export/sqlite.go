package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// DB is a SQLite export database.
//
// Tables mirror the flat files. References are real foreign keys with
// ON DELETE SET NULL, the same rule the shop applies when a client or vehicle
// is deleted. Order ids can repeat, so orders are keyed by their position.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the database at path.
//
// The caller MUST call Close() when done.
//
// Example:
//
//	db, err := export.Open("oficina.db")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// One connection keeps the pragmas below in effect for every statement.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, path: path}

	if _, err := db.conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	db.conn = nil
	return nil
}

// InitSchemaContext creates the tables if they don't exist. It is idempotent.
func (db *DB) InitSchemaContext(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS clients (
		tax_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		plate TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		owner_tax_id TEXT REFERENCES clients(tax_id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS orders (
		seq INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		plate TEXT REFERENCES vehicles(plate) ON DELETE SET NULL,
		entry_date TEXT NOT NULL,
		description TEXT NOT NULL,
		status INTEGER NOT NULL CHECK (status BETWEEN 1 AND 4),
		status_label TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_vehicles_owner ON vehicles(owner_tax_id);
	CREATE INDEX IF NOT EXISTS idx_orders_plate ON orders(plate);
	CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
	`

	if _, err := db.conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// ReplaceAll replaces every row with the contents of snap in one transaction.
// References that do not resolve inside snap are stored as NULL.
func (db *DB) ReplaceAll(ctx context.Context, snap *Snapshot) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"orders", "vehicles", "clients"} {
		// #nosec G202 - table names are constants
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	owners := snap.ownerNames()
	plates := snap.plates()

	for i := range snap.Clients {
		c := &snap.Clients[i]
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO clients (tax_id, name, phone) VALUES (?, ?, ?)`,
			c.TaxID, c.Name, c.Phone,
		); err != nil {
			return fmt.Errorf("failed to insert client %s: %w", c.TaxID, err)
		}
	}

	for i := range snap.Vehicles {
		v := &snap.Vehicles[i]
		var owner sql.NullString
		if _, ok := owners[v.OwnerTaxID]; ok && v.HasOwner() {
			owner = sql.NullString{String: v.OwnerTaxID, Valid: true}
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO vehicles (plate, model, year, owner_tax_id) VALUES (?, ?, ?, ?)`,
			v.Plate, v.Model, v.Year, owner,
		); err != nil {
			return fmt.Errorf("failed to insert vehicle %s: %w", v.Plate, err)
		}
	}

	for i := range snap.Orders {
		o := &snap.Orders[i]
		var plate sql.NullString
		if o.HasVehicle() && plates[o.Plate] {
			plate = sql.NullString{String: o.Plate, Valid: true}
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO orders (seq, id, plate, entry_date, description, status, status_label)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i+1, o.ID, plate, o.EntryDate, o.Description, int(o.Status), o.Status.Label(),
		); err != nil {
			return fmt.Errorf("failed to insert order %d: %w", o.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	return nil
}

// Counts returns the number of rows in each table.
func (db *DB) Counts(ctx context.Context) (Stats, error) {
	var st Stats
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"clients", &st.Clients},
		{"vehicles", &st.Vehicles},
		{"orders", &st.Orders},
	} {
		// #nosec G202 - table names are constants
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dst); err != nil {
			return Stats{}, fmt.Errorf("failed to count %s: %w", q.table, err)
		}
	}
	return st, nil
}

// countByStatus returns how many exported orders are in each status.
func (db *DB) countByStatus(ctx context.Context) (map[schema.Status]int, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status counts: %w", err)
	}
	defer rows.Close()

	counts := map[schema.Status]int{}
	for rows.Next() {
		var st, n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[schema.Status(st)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status counts: %w", err)
	}
	return counts, nil
}

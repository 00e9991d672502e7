package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/store"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements store.Store on a single SQLite table. Each record
// is kept as one row of (tbl, pos, doc); pos preserves insertion order
// and a wholesale write replaces all rows of a table inside one SQL
// transaction.
type Store struct {
	db *sql.DB
}

// Compile-time check: Store implements store.Store.
var _ store.Store = (*Store)(nil)

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready store. Use this when the *sql.DB has been
// pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other
// adapters (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (s *Store) Read(ctx context.Context, table store.Table) ([]store.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM table_records WHERE tbl = ? ORDER BY pos`, string(table),
	)
	if err != nil {
		return nil, storageErr(fmt.Sprintf("reading table %q", table), err)
	}
	defer rows.Close()

	var records []store.Record
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, storageErr(fmt.Sprintf("scanning record of %q", table), err)
		}
		records = append(records, store.Record(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(fmt.Sprintf("reading table %q", table), err)
	}

	return records, nil
}

func (s *Store) Write(ctx context.Context, writes ...store.TableWrite) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("beginning write", err)
	}
	defer tx.Rollback()

	for _, w := range writes {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM table_records WHERE tbl = ?`, string(w.Table),
		); err != nil {
			return storageErr(fmt.Sprintf("clearing table %q", w.Table), err)
		}
		for pos, doc := range w.Records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO table_records (tbl, pos, doc) VALUES (?, ?, ?)`,
				string(w.Table), pos, []byte(doc),
			); err != nil {
				return storageErr(fmt.Sprintf("writing table %q", w.Table), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("committing write", err)
	}
	return nil
}

// storageErr tags a driver failure so callers can detect it with
// errors.Is(err, domain.ErrStorageUnavailable).
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Single connection: sqlite allows one writer, and it keeps :memory:
	// databases from splitting across pooled connections.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// DB exposes the underlying handle for subsystems sharing the database
// file (bookings).
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS vehicles (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	make       TEXT NOT NULL,
	model      TEXT NOT NULL,
	year       INTEGER,
	base_msrp  REAL,
	doc        TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_vehicles_type ON vehicles(type);
CREATE INDEX IF NOT EXISTS idx_vehicles_base_msrp ON vehicles(base_msrp);
CREATE INDEX IF NOT EXISTS idx_vehicles_year ON vehicles(year);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put upserts raw catalog documents. The type/year/msrp columns are
// denormalized from the document for filtered listing; the document itself
// stays authoritative.
func (s *SQLiteStore) Put(ctx context.Context, raws []RawVehicle) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin put")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vehicles (id, type, make, model, year, base_msrp, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type, make = excluded.make, model = excluded.model,
			year = excluded.year, base_msrp = excluded.base_msrp, doc = excluded.doc`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare put")
	}
	defer stmt.Close()

	written := 0
	for _, raw := range raws {
		doc, err := json.Marshal(raw)
		if err != nil {
			return written, eris.Wrapf(err, "sqlite: marshal vehicle %s", raw.ID)
		}

		var year, msrp any
		if y := CoerceNumber(raw.Year); y != nil {
			year = int(*y)
		}
		if m := CoerceNumber(raw.Price.BaseMSRP); m != nil {
			msrp = *m
		}

		if _, err := stmt.ExecContext(ctx, raw.ID, raw.Type, raw.Make, raw.Model, year, msrp, string(doc)); err != nil {
			return written, eris.Wrapf(err, "sqlite: put vehicle %s", raw.ID)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, eris.Wrap(err, "sqlite: commit put")
	}
	return written, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*RawVehicle, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM vehicles WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get vehicle %s", id)
	}
	return unmarshalDoc(doc)
}

func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]RawVehicle, error) {
	query := `SELECT doc FROM vehicles WHERE 1=1`
	var args []any

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	if filter.MinPrice != nil {
		query += ` AND base_msrp >= ?`
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += ` AND base_msrp <= ?`
		args = append(args, *filter.MaxPrice)
	}
	if filter.Year != 0 {
		query += ` AND year = ?`
		args = append(args, filter.Year)
	}
	query += ` ORDER BY rowid`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list vehicles")
	}
	defer rows.Close()

	var raws []RawVehicle
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan vehicle")
		}
		raw, err := unmarshalDoc(doc)
		if err != nil {
			return nil, err
		}
		raws = append(raws, *raw)
	}
	return raws, eris.Wrap(rows.Err(), "sqlite: list vehicles iterate")
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count vehicles")
}

func unmarshalDoc(doc string) (*RawVehicle, error) {
	var raw RawVehicle
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal vehicle doc")
	}
	return &raw, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the catalog store uses; pgxmock
// satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS vehicles (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	make       TEXT NOT NULL,
	model      TEXT NOT NULL,
	year       INTEGER,
	base_msrp  DOUBLE PRECISION,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_vehicles_type ON vehicles(type);
CREATE INDEX IF NOT EXISTS idx_vehicles_base_msrp ON vehicles(base_msrp);
CREATE INDEX IF NOT EXISTS idx_vehicles_year ON vehicles(year);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Put(ctx context.Context, raws []RawVehicle) (int, error) {
	written := 0
	for _, raw := range raws {
		doc, err := json.Marshal(raw)
		if err != nil {
			return written, eris.Wrapf(err, "postgres: marshal vehicle %s", raw.ID)
		}

		var year, msrp any
		if y := CoerceNumber(raw.Year); y != nil {
			year = int(*y)
		}
		if m := CoerceNumber(raw.Price.BaseMSRP); m != nil {
			msrp = *m
		}

		_, err = s.pool.Exec(ctx, `
			INSERT INTO vehicles (id, type, make, model, year, base_msrp, doc)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				type = EXCLUDED.type, make = EXCLUDED.make, model = EXCLUDED.model,
				year = EXCLUDED.year, base_msrp = EXCLUDED.base_msrp, doc = EXCLUDED.doc`,
			raw.ID, raw.Type, raw.Make, raw.Model, year, msrp, doc)
		if err != nil {
			return written, eris.Wrapf(err, "postgres: put vehicle %s", raw.ID)
		}
		written++
	}
	return written, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*RawVehicle, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM vehicles WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get vehicle %s", id)
	}

	var raw RawVehicle
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal vehicle doc")
	}
	return &raw, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]RawVehicle, error) {
	query := `SELECT doc FROM vehicles WHERE 1=1`
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Type != "" {
		query += ` AND type = ` + arg(filter.Type)
	}
	if filter.MinPrice != nil {
		query += ` AND base_msrp >= ` + arg(*filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query += ` AND base_msrp <= ` + arg(*filter.MaxPrice)
	}
	if filter.Year != 0 {
		query += ` AND year = ` + arg(filter.Year)
	}
	query += ` ORDER BY created_at, id`
	if filter.Limit > 0 {
		query += ` LIMIT ` + arg(filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list vehicles")
	}
	defer rows.Close()

	var raws []RawVehicle
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan vehicle")
		}
		var raw RawVehicle
		if err := json.Unmarshal(doc, &raw); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal vehicle doc")
		}
		raws = append(raws, raw)
	}
	return raws, eris.Wrap(rows.Err(), "postgres: list vehicles iterate")
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count vehicles")
}

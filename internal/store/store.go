// Package store persists intelligence records, pricing recommendations,
// products, and trade statistics in SQLite. All statements are
// parameterized; there is no string-concatenated SQL anywhere.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	company_id      TEXT NOT NULL,
	product_name    TEXT NOT NULL,
	category        TEXT NOT NULL DEFAULT '',
	hs_code         TEXT NOT NULL DEFAULT '',
	unit_price      REAL NOT NULL DEFAULT 0,
	currency        TEXT NOT NULL DEFAULT 'USD',
	material        TEXT NOT NULL DEFAULT '',
	technical_specs TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trade_data (
	hs_code       TEXT NOT NULL,
	country       TEXT NOT NULL,
	year          INTEGER NOT NULL,
	import_value  REAL NOT NULL DEFAULT 0,
	import_volume REAL NOT NULL DEFAULT 0,
	growth_rate   REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_trade_data_scope ON trade_data (hs_code, country, year DESC);

CREATE TABLE IF NOT EXISTS intelligence_records (
	id               TEXT PRIMARY KEY,
	company_id       TEXT NOT NULL,
	prediction_type  TEXT NOT NULL,
	target_market    TEXT NOT NULL DEFAULT 'Global',
	product_category TEXT NOT NULL DEFAULT '',
	hs_code          TEXT NOT NULL DEFAULT '',
	period           TEXT NOT NULL,
	confidence_score REAL NOT NULL DEFAULT 0,
	prediction_data  TEXT NOT NULL DEFAULT '{}',
	key_insights     TEXT NOT NULL DEFAULT '[]',
	recommendations  TEXT NOT NULL DEFAULT '[]',
	data_sources     TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_intelligence_company ON intelligence_records (company_id, created_at DESC);

CREATE TABLE IF NOT EXISTS price_optimizations (
	id                    TEXT PRIMARY KEY,
	company_id            TEXT NOT NULL,
	product_id            TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	target_market         TEXT NOT NULL DEFAULT 'Global',
	current_price         REAL NOT NULL DEFAULT 0,
	optimal_price         REAL NOT NULL DEFAULT 0,
	price_range_min       REAL NOT NULL DEFAULT 0,
	price_range_max       REAL NOT NULL DEFAULT 0,
	profit_margin         REAL NOT NULL DEFAULT 0,
	competitiveness_score REAL NOT NULL DEFAULT 0,
	market_positioning    TEXT NOT NULL DEFAULT '',
	pricing_strategy      TEXT NOT NULL DEFAULT '',
	key_factors           TEXT NOT NULL DEFAULT '[]',
	risks                 TEXT NOT NULL DEFAULT '[]',
	recommendations       TEXT NOT NULL DEFAULT '[]',
	confidence_score      REAL NOT NULL DEFAULT 0,
	data_sources          TEXT NOT NULL DEFAULT '',
	created_at            TEXT NOT NULL,
	updated_at            TEXT NOT NULL,
	UNIQUE (company_id, product_id, target_market)
);
`

// Open opens (or creates) the SQLite database at path and applies the
// schema. WAL keeps concurrent readers off the writer's back; the
// foreign-keys pragma makes product deletion cascade to its recommendation.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

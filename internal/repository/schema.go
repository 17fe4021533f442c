package repository

import "context"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS customers (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_code TEXT NOT NULL UNIQUE,
    recipient     TEXT NOT NULL,
    address       TEXT NOT NULL,
    tax_id        TEXT NOT NULL DEFAULT '',
    notes         TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers (created_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS customers (
    id            BIGSERIAL PRIMARY KEY,
    customer_code TEXT NOT NULL UNIQUE,
    recipient     TEXT NOT NULL,
    address       TEXT NOT NULL,
    tax_id        TEXT NOT NULL DEFAULT '',
    notes         TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers (created_at);
`

// EnsureSchema creates the customers table if it does not exist yet. There is
// no migration tooling; the schema is small enough to be declared in place.
func EnsureSchema(ctx context.Context, db *DB) error {
	ddl := sqliteSchema
	if db.Dialect == DialectPostgres {
		ddl = postgresSchema
	}
	_, err := db.ExecContext(ctx, ddl)
	return err
}

package database

// schema holds the DDL for the advisor book. Positions carry their
// instrument kind and classification as stored columns; derived
// rebalancing figures are never persisted.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		last_updated TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id        TEXT PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name      TEXT NOT NULL,
		type      TEXT NOT NULL DEFAULT 'Taxable',
		cash      REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS positions (
		id            TEXT PRIMARY KEY,
		account_id    TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		symbol        TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		kind          TEXT NOT NULL DEFAULT 'equity',
		quantity      REAL NOT NULL DEFAULT 0,
		price         REAL NOT NULL DEFAULT 0,
		current_value REAL NOT NULL DEFAULT 0,
		yield         REAL NOT NULL DEFAULT 0,
		target_pct    REAL NOT NULL DEFAULT 0,
		rounding_mode TEXT NOT NULL DEFAULT 'nearest',
		asset_class   TEXT,
		sector        TEXT,
		state_code    TEXT,
		logo_ticker   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accounts_client ON accounts(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_positions_account ON positions(account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_positions_symbol ON positions(symbol)`,
}

package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    type                 TEXT NOT NULL,
    balance              REAL NOT NULL DEFAULT 0,
    currency             TEXT NOT NULL DEFAULT 'USD',
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   TEXT PRIMARY KEY,
    account_id           TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    date                 TEXT NOT NULL,
    amount               REAL NOT NULL,
    merchant             TEXT NOT NULL,
    category             TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS recurrences (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    amount               REAL NOT NULL,
    cadence              TEXT NOT NULL,
    next_date            TEXT NOT NULL,
    confidence           TEXT NOT NULL DEFAULT 'medium'
);

CREATE TABLE IF NOT EXISTS goals (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    target               REAL NOT NULL,
    saved                REAL NOT NULL DEFAULT 0,
    deadline             TEXT,
    priority             TEXT NOT NULL DEFAULT 'medium',
    category             TEXT NOT NULL DEFAULT 'lifestyle'
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);
CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant);
`

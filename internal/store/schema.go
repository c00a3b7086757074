package store

// Schema contains SQL schema definitions for the receipt database
const Schema = `
-- Accounts table
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    imap_host TEXT NOT NULL,
    imap_port INTEGER NOT NULL,
    imap_username TEXT NOT NULL,
    folder TEXT NOT NULL,
    last_sync DATETIME,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Categories table
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

-- Receipts table. (account_id, email_id) is the dedup key: re-syncing the
-- same message must not create a second row.
CREATE TABLE IF NOT EXISTS receipts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL,
    email_id TEXT NOT NULL,
    email_subject TEXT,
    email_from TEXT,
    email_date DATETIME,
    vendor_name TEXT,
    category_id INTEGER,
    receipt_date DATETIME,
    amount REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'THB',
    receipt_number TEXT,
    attachment_path TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE,
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL,
    UNIQUE(account_id, email_id)
);

-- Create indexes for faster queries
CREATE INDEX IF NOT EXISTS idx_receipts_account_id ON receipts(account_id);
CREATE INDEX IF NOT EXISTS idx_receipts_receipt_date ON receipts(receipt_date);
CREATE INDEX IF NOT EXISTS idx_receipts_vendor_name ON receipts(vendor_name);
CREATE INDEX IF NOT EXISTS idx_receipts_email_id ON receipts(email_id);
`

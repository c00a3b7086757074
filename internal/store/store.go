package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vbofuh/back-savvy/internal/config"
	"github.com/vbofuh/back-savvy/pkg/types"
)

// Store provides methods for persisting and querying receipts
type Store struct {
	db     *DB
	logger *logrus.Logger
}

// NewStore creates a new store instance
func NewStore(db *DB, logger *logrus.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// UpsertAccount upserts an account row and returns its id
func (s *Store) UpsertAccount(acc *config.AccountConfig) (int, error) {
	query := `
		INSERT INTO accounts (name, imap_host, imap_port, imap_username, folder, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			imap_host = excluded.imap_host,
			imap_port = excluded.imap_port,
			imap_username = excluded.imap_username,
			folder = excluded.folder,
			updated_at = CURRENT_TIMESTAMP
	`
	result, err := s.db.SQL().Exec(query, acc.Name, acc.IMAPHost, acc.IMAPPort, acc.IMAPUsername, acc.Folder)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		// If insert failed, try to get existing ID
		var accountID int
		err := s.db.SQL().QueryRow("SELECT id FROM accounts WHERE name = ?", acc.Name).Scan(&accountID)
		if err != nil {
			return 0, fmt.Errorf("failed to get account ID: %w", err)
		}
		return accountID, nil
	}

	return int(id), nil
}

// GetAccountID returns the account ID by name
func (s *Store) GetAccountID(name string) (int, error) {
	var id int
	err := s.db.SQL().QueryRow("SELECT id FROM accounts WHERE name = ?", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("account not found: %s", name)
	}
	return id, nil
}

// UpdateLastSync records when an account was last synced
func (s *Store) UpdateLastSync(accountID int, at time.Time) error {
	_, err := s.db.SQL().Exec("UPDATE accounts SET last_sync = ? WHERE id = ?", at.UTC().Format(time.RFC3339), accountID)
	if err != nil {
		return fmt.Errorf("failed to update last sync: %w", err)
	}
	return nil
}

// SeedCategories inserts the default category rows, keeping any existing ones
func (s *Store) SeedCategories(names []string) error {
	for _, name := range names {
		if _, err := s.db.SQL().Exec("INSERT INTO categories (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
	}
	return nil
}

// CategoryID resolves a category name to its id
func (s *Store) CategoryID(name string) (int, error) {
	var id int
	err := s.db.SQL().QueryRow("SELECT id FROM categories WHERE name = ?", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("category not found: %s", name)
	}
	return id, nil
}

// HasReceipt reports whether a receipt with this dedup key already exists
func (s *Store) HasReceipt(accountID int, emailID string) (bool, error) {
	var count int
	err := s.db.SQL().QueryRow("SELECT COUNT(*) FROM receipts WHERE account_id = ? AND email_id = ?", accountID, emailID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check receipt: %w", err)
	}
	return count > 0, nil
}

// InsertReceipt inserts a receipt, skipping silently when the dedup key is
// already present. Returns whether a row was actually written.
func (s *Store) InsertReceipt(rec *types.Receipt) (bool, error) {
	query := `
		INSERT INTO receipts (account_id, email_id, email_subject, email_from, email_date, vendor_name, category_id, receipt_date, amount, currency, receipt_number, attachment_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, email_id) DO NOTHING
	`
	result, err := s.db.SQL().Exec(query,
		rec.AccountID,
		rec.EmailID,
		rec.Subject,
		rec.From,
		nullableTime(rec.EmailDate),
		rec.VendorName,
		rec.CategoryID,
		nullableTime(rec.ReceiptDate),
		rec.Amount,
		rec.Currency,
		nullableString(rec.ReceiptNumber),
		nullableString(rec.AttachmentPath),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert receipt: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

// GetReceipt retrieves a receipt by ID
func (s *Store) GetReceipt(receiptID int64) (*types.Receipt, error) {
	query := `
		SELECT r.id, r.account_id, r.email_id, r.email_subject, r.email_from, r.email_date, r.vendor_name, r.category_id, r.receipt_date, r.amount, r.currency, r.receipt_number, r.attachment_path, r.created_at
		FROM receipts r
		WHERE r.id = ?
	`
	var rec types.Receipt
	var subject, from, vendor, number, attachment sql.NullString
	var emailDate, receiptDate sql.NullString
	var categoryID sql.NullInt64

	err := s.db.SQL().QueryRow(query, receiptID).Scan(
		&rec.ID,
		&rec.AccountID,
		&rec.EmailID,
		&subject,
		&from,
		&emailDate,
		&vendor,
		&categoryID,
		&receiptDate,
		&rec.Amount,
		&rec.Currency,
		&number,
		&attachment,
		&rec.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("receipt not found: %d", receiptID)
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	rec.Subject = subject.String
	rec.From = from.String
	rec.VendorName = vendor.String
	rec.ReceiptNumber = number.String
	rec.AttachmentPath = attachment.String
	rec.EmailDate = parseStoredTime(emailDate)
	rec.ReceiptDate = parseStoredTime(receiptDate)
	if categoryID.Valid {
		id := int(categoryID.Int64)
		rec.CategoryID = &id
	}

	return &rec, nil
}

// CountReceipts returns how many receipts an account has
func (s *Store) CountReceipts(accountID int) (int, error) {
	var count int
	err := s.db.SQL().QueryRow("SELECT COUNT(*) FROM receipts WHERE account_id = ?", accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}
	return count, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func parseStoredTime(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04:05", v.String)
		if err != nil {
			return nil
		}
	}
	return &t
}

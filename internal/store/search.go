package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vbofuh/back-savvy/pkg/types"
)

// SearchOptions contains receipt search parameters
type SearchOptions struct {
	AccountID *int
	Vendor    *string
	Currency  *string
	DateFrom  *time.Time
	DateTo    *time.Time
	MinAmount *float64
	MaxAmount *float64
	Limit     int
}

// SearchReceipts performs a filtered search over stored receipts
func (s *Store) SearchReceipts(opts SearchOptions) ([]types.ReceiptSummary, error) {
	var conditions []string
	var args []interface{}

	// Build WHERE clause
	if opts.AccountID != nil {
		conditions = append(conditions, "r.account_id = ?")
		args = append(args, *opts.AccountID)
	}

	if opts.Vendor != nil {
		conditions = append(conditions, "r.vendor_name LIKE ?")
		args = append(args, "%"+*opts.Vendor+"%")
	}

	if opts.Currency != nil {
		conditions = append(conditions, "r.currency = ?")
		args = append(args, *opts.Currency)
	}

	if opts.DateFrom != nil {
		conditions = append(conditions, "r.receipt_date >= ?")
		args = append(args, opts.DateFrom.UTC().Format(time.RFC3339))
	}

	if opts.DateTo != nil {
		conditions = append(conditions, "r.receipt_date <= ?")
		args = append(args, opts.DateTo.UTC().Format(time.RFC3339))
	}

	if opts.MinAmount != nil {
		conditions = append(conditions, "r.amount >= ?")
		args = append(args, *opts.MinAmount)
	}

	if opts.MaxAmount != nil {
		conditions = append(conditions, "r.amount <= ?")
		args = append(args, *opts.MaxAmount)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Set default limit
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	query := fmt.Sprintf(`
		SELECT r.id, a.name, r.vendor_name, r.amount, r.currency, r.receipt_date, r.email_subject
		FROM receipts r
		JOIN accounts a ON r.account_id = a.id
		%s
		ORDER BY r.receipt_date DESC
		LIMIT ?
	`, whereClause)

	args = append(args, limit)

	rows, err := s.db.SQL().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search receipts: %w", err)
	}
	defer rows.Close()

	var results []types.ReceiptSummary
	for rows.Next() {
		var summary types.ReceiptSummary
		var vendor, subject sql.NullString
		var receiptDate sql.NullString

		err := rows.Scan(
			&summary.ID,
			&summary.AccountName,
			&vendor,
			&summary.Amount,
			&summary.Currency,
			&receiptDate,
			&subject,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}

		summary.VendorName = vendor.String
		summary.Subject = subject.String
		summary.ReceiptDate = parseStoredTime(receiptDate)

		results = append(results, summary)
	}

	return results, nil
}

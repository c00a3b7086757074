package types

import (
	"fmt"
	"time"
)

// Receipt is the normalized expense record extracted from a single email.
// EmailID is the dedup key: derived deterministically from the mailbox
// message id, so re-syncing the same message never creates a second row.
type Receipt struct {
	ID             int64      `json:"id"`
	AccountID      int        `json:"account_id"`
	EmailID        string     `json:"email_id"`
	Subject        string     `json:"email_subject"`
	From           string     `json:"email_from"`
	EmailDate      *time.Time `json:"email_date,omitempty"`
	ReceiptDate    *time.Time `json:"receipt_date,omitempty"`
	VendorName     string     `json:"vendor_name"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	ReceiptNumber  string     `json:"receipt_number,omitempty"`
	AttachmentPath string     `json:"attachment_path,omitempty"`
	CategoryID     *int       `json:"category_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ReceiptSummary is the condensed shape returned by store searches.
type ReceiptSummary struct {
	ID          int64      `json:"id"`
	AccountName string     `json:"account_name"`
	VendorName  string     `json:"vendor_name"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	ReceiptDate *time.Time `json:"receipt_date,omitempty"`
	Subject     string     `json:"subject"`
}

// Category is a spending category receipts are classified into.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DedupKey builds the stable per-message receipt identifier.
func DedupKey(messageID uint32) string {
	return fmt.Sprintf("imap_%d", messageID)
}

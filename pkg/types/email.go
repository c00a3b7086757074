package types

import "time"

// RawEmail is a fully decoded email message as handed to the extraction
// pipeline. It is built once per IMAP fetch and never mutated afterwards.
type RawEmail struct {
	MessageID   uint32       `json:"message_id"`
	Subject     string       `json:"subject"`
	From        string       `json:"from"`
	Date        *time.Time   `json:"date,omitempty"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a receipt-candidate attachment (image or PDF) kept by the
// decoder. Order follows the original MIME part order.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

package email

import (
	"bytes"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"

	"github.com/vbofuh/back-savvy/pkg/types"
)

// DecodeMessage turns a raw RFC822 message into a RawEmail. Decoding is
// fail-soft throughout: a message enmime cannot parse still comes back with
// the raw bytes as body, and a bad Date header just leaves the date nil.
func DecodeMessage(messageID uint32, raw []byte) *types.RawEmail {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return &types.RawEmail{
			MessageID: messageID,
			Body:      string(raw),
		}
	}

	return &types.RawEmail{
		MessageID:   messageID,
		Subject:     env.GetHeader("Subject"),
		From:        env.GetHeader("From"),
		Date:        parseMessageDate(env.GetHeader("Date")),
		Body:        messageBody(env),
		Attachments: receiptAttachments(env),
	}
}

// parseMessageDate parses the standard Date header. A missing or malformed
// header is "unknown", never an error.
func parseMessageDate(header string) *time.Time {
	if header == "" {
		return nil
	}
	t, err := mail.ParseDate(header)
	if err != nil {
		return nil
	}
	return &t
}

// messageBody concatenates the text and HTML alternatives. Vendor receipt
// templates put the interesting labels in one or the other, so both are
// searched.
func messageBody(env *enmime.Envelope) string {
	var b strings.Builder
	b.WriteString(env.Text)
	if env.HTML != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(env.HTML)
	}
	return b.String()
}

// receiptAttachments keeps only parts that could be a receipt document:
// named parts that are images or PDFs. Inline images without filenames and
// everything else is dropped. Original MIME order is preserved.
func receiptAttachments(env *enmime.Envelope) []types.Attachment {
	var out []types.Attachment
	for _, part := range append(env.Attachments, env.Inlines...) {
		if part.FileName == "" {
			continue
		}
		if !isReceiptDocument(part.ContentType, part.FileName) {
			continue
		}
		out = append(out, types.Attachment{
			Filename:    part.FileName,
			ContentType: part.ContentType,
			Content:     part.Content,
		})
	}
	return out
}

func isReceiptDocument(contentType, filename string) bool {
	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

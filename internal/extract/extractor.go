// Package extract turns decoded receipt emails into normalized expense
// records. The whole pipeline is pure: the same RawEmail always yields the
// same Receipt (or nil), and all rule tables are read-only after init.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vbofuh/back-savvy/pkg/types"
)

// DefaultCurrency is assumed when no pattern declares one.
const DefaultCurrency = "THB"

// Note is a diagnostic emitted during extraction. The extractor never logs;
// callers decide what to do with notes.
type Note struct {
	Field  string
	Detail string
}

// Extractor dispatches a decoded email to its vendor rule set and assembles
// the final receipt record.
type Extractor struct{}

// New creates an extractor. It holds no state; one instance can be shared
// freely across workers.
func New() *Extractor {
	return &Extractor{}
}

// Extract produces a receipt from a decoded email, or nil when the email does
// not look like a receipt (no amount pattern matched). It never returns an
// error: malformed input degrades to nil plus diagnostic notes.
func (e *Extractor) Extract(raw *types.RawEmail) (*types.Receipt, []Note) {
	if raw == nil {
		return nil, nil
	}

	var notes []Note

	// Seed record: email metadata and defaults, overridden per vendor below.
	rec := &types.Receipt{
		EmailID:     types.DedupKey(raw.MessageID),
		Subject:     raw.Subject,
		From:        raw.From,
		EmailDate:   raw.Date,
		ReceiptDate: raw.Date,
		VendorName:  FallbackVendorName(raw.From),
		Currency:    DefaultCurrency,
	}

	tag := Classify(raw.From)
	rule := RuleFor(tag)
	notes = append(notes, Note{Field: "vendor_tag", Detail: string(tag)})

	if rule.DisplayName != "" {
		rec.VendorName = rule.DisplayName
	}

	notes = append(notes, e.extractAmount(rule, raw.Body, rec)...)
	notes = append(notes, e.extractDate(rule, raw.Body, rec)...)
	e.extractNumber(rule, raw.Body, rec)

	if rule.productPattern != nil {
		if m := rule.productPattern.FindStringSubmatch(raw.Body); m != nil {
			notes = append(notes, Note{Field: "product", Detail: strings.TrimSpace(m[1])})
		}
	}

	// First attachment wins; the decoder already filtered to images and PDFs.
	if len(raw.Attachments) > 0 {
		rec.AttachmentPath = raw.Attachments[0].Filename
	}

	// An email with no recognizable amount is not a receipt.
	if rec.Amount == 0 {
		notes = append(notes, Note{Field: "amount", Detail: "no amount pattern matched, record discarded"})
		return nil, notes
	}

	return rec, notes
}

// extractAmount tries the rule's money patterns in priority order. A pattern
// that matches but fails numeric parsing is skipped, not fatal.
func (e *Extractor) extractAmount(rule *VendorRule, body string, rec *types.Receipt) []Note {
	var notes []Note
	for _, p := range rule.amountPatterns {
		m := p.re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			notes = append(notes, Note{Field: "amount", Detail: fmt.Sprintf("matched %q but not numeric", m[1])})
			continue
		}
		rec.Amount = amount
		if p.currency != "" {
			rec.Currency = p.currency
		}
		break
	}
	return notes
}

// extractDate tries the rule's date patterns in priority order. Any parse
// failure leaves the seed (email) date in place.
func (e *Extractor) extractDate(rule *VendorRule, body string, rec *types.Receipt) []Note {
	var notes []Note
	for _, p := range rule.datePatterns {
		m := p.re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		parsed, ok := parseVendorDate(m[1], p.layout)
		if !ok {
			notes = append(notes, Note{Field: "receipt_date", Detail: fmt.Sprintf("matched %q but could not parse, keeping email date", m[1])})
			continue
		}
		rec.ReceiptDate = &parsed
		break
	}
	return notes
}

// extractNumber fills in the vendor reference when a pattern hits. Absence
// is not an error.
func (e *Extractor) extractNumber(rule *VendorRule, body string, rec *types.Receipt) {
	for _, re := range rule.numberPatterns {
		if m := re.FindStringSubmatch(body); m != nil {
			rec.ReceiptNumber = strings.TrimSpace(m[1])
			return
		}
	}
}

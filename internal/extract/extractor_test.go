package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbofuh/back-savvy/pkg/types"
)

func emailDate() *time.Time {
	d := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	return &d
}

func TestExtractSteamEndToEnd(t *testing.T) {
	raw := &types.RawEmail{
		MessageID: 42,
		Subject:   "ขอขอบคุณสำหรับการสั่งซื้อของคุณ",
		From:      "noreply@steampowered.com",
		Date:      emailDate(),
		Body: "ขอขอบคุณสำหรับการสั่งซื้อล่าสุดของคุณสำหรับ Hades II\n" +
			"รวมทั้งหมด: ฿549.00\n" +
			"วันที่ดำเนินการ: 10 ม.ค. 2025 @ 3:00pm +0700\n" +
			"ใบกำกับสินค้า: 2501123456\n",
	}

	rec, notes := New().Extract(raw)
	require.NotNil(t, rec)

	assert.Equal(t, "imap_42", rec.EmailID)
	assert.Equal(t, "Steam", rec.VendorName)
	assert.Equal(t, 549.00, rec.Amount)
	assert.Equal(t, "THB", rec.Currency)
	assert.Equal(t, "2501123456", rec.ReceiptNumber)
	require.NotNil(t, rec.ReceiptDate)
	assert.Equal(t, 2025, rec.ReceiptDate.Year())
	assert.Equal(t, time.January, rec.ReceiptDate.Month())
	assert.Equal(t, 10, rec.ReceiptDate.Day())
	assert.NotEmpty(t, notes)
}

func TestExtractIsIdempotent(t *testing.T) {
	raw := &types.RawEmail{
		MessageID: 7,
		From:      "no_reply@email.apple.com",
		Date:      emailDate(),
		Body:      "INVOICE DATE 12 Feb 2025\nTOTAL ฿35.00",
	}

	ex := New()
	first, _ := ex.Extract(raw)
	second, _ := ex.Extract(raw)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first, second)
}

func TestExtractVendorCanonicalAmounts(t *testing.T) {
	cases := []struct {
		name string
		from string
		body string
	}{
		{"apple", "no_reply@email.apple.com", "TOTAL ฿35.00"},
		{"kplus", "KPLUS@kasikornbank.com", "จำนวนเงิน (บาท): 35.00"},
		{"steam", "noreply@steampowered.com", "รวมทั้งหมด: ฿35.00"},
		{"spotify", "no-reply@spotify.com", "Total: ฿35.00"},
		{"netflix", "info@account.netflix.com", "Total: ฿35.00"},
		{"youtube", "noreply-purchases@youtube.com", "Total: ฿35.00"},
		{"generic", "billing@somevendor.co.th", "ยอดรวม ฿35.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := New().Extract(&types.RawEmail{MessageID: 1, From: tc.from, Body: tc.body})
			require.NotNil(t, rec)
			assert.Equal(t, 35.00, rec.Amount)
			assert.Equal(t, "THB", rec.Currency)
		})
	}
}

func TestExtractStripsThousandsSeparators(t *testing.T) {
	rec, _ := New().Extract(&types.RawEmail{
		MessageID: 1,
		From:      "billing@somevendor.com",
		Body:      "Your payment of ฿1,234.50 was received",
	})
	require.NotNil(t, rec)
	assert.Equal(t, 1234.50, rec.Amount)
}

func TestExtractDiscardsZeroAmount(t *testing.T) {
	rec, notes := New().Extract(&types.RawEmail{
		MessageID: 9,
		From:      "newsletter@somevendor.com",
		Date:      emailDate(),
		Body:      "Thanks for reading our weekly update. See you next time!",
	})
	assert.Nil(t, rec)
	assert.NotEmpty(t, notes)
}

func TestExtractEmptyBodyDiscarded(t *testing.T) {
	rec, _ := New().Extract(&types.RawEmail{MessageID: 9, From: "noreply@steampowered.com"})
	assert.Nil(t, rec)
}

func TestExtractNilEmail(t *testing.T) {
	rec, notes := New().Extract(nil)
	assert.Nil(t, rec)
	assert.Nil(t, notes)
}

func TestExtractFirstAttachmentWins(t *testing.T) {
	rec, _ := New().Extract(&types.RawEmail{
		MessageID: 3,
		From:      "no_reply@email.apple.com",
		Body:      "TOTAL ฿99.00",
		Attachments: []types.Attachment{
			{Filename: "receipt.pdf", ContentType: "application/pdf"},
			{Filename: "logo.png", ContentType: "image/png"},
		},
	})
	require.NotNil(t, rec)
	assert.Equal(t, "receipt.pdf", rec.AttachmentPath)
}

func TestExtractMalformedDateKeepsEmailDate(t *testing.T) {
	seed := emailDate()
	rec, _ := New().Extract(&types.RawEmail{
		MessageID: 5,
		From:      "KPLUS@kasikornbank.com",
		Date:      seed,
		Body:      "วันที่ทำรายการ: 32/13/2025\nจำนวนเงิน (บาท): 120.00",
	})
	require.NotNil(t, rec)
	require.NotNil(t, rec.ReceiptDate)
	assert.Equal(t, *seed, *rec.ReceiptDate)
	assert.Equal(t, 120.00, rec.Amount)
}

func TestExtractMissingDateStaysAbsent(t *testing.T) {
	rec, _ := New().Extract(&types.RawEmail{
		MessageID: 6,
		From:      "billing@somevendor.com",
		Body:      "Amount: $12.00",
	})
	require.NotNil(t, rec)
	assert.Nil(t, rec.EmailDate)
	assert.Nil(t, rec.ReceiptDate)
	assert.Equal(t, "USD", rec.Currency)
}

func TestExtractKPlusTransactionNumber(t *testing.T) {
	rec, _ := New().Extract(&types.RawEmail{
		MessageID: 8,
		From:      "KPLUS@kasikornbank.com",
		Body: "เลขที่รายการ: K12345678\n" +
			"วันที่ทำรายการ: 23/01/2025\n" +
			"จำนวนเงิน (บาท): 1,500.00\n",
	})
	require.NotNil(t, rec)
	assert.Equal(t, "K Plus (Kasikorn Bank)", rec.VendorName)
	assert.Equal(t, "K12345678", rec.ReceiptNumber)
	assert.Equal(t, 1500.00, rec.Amount)
	require.NotNil(t, rec.ReceiptDate)
	assert.Equal(t, time.Date(2025, time.January, 23, 0, 0, 0, 0, time.UTC), *rec.ReceiptDate)
}

func TestExtractGenericPermissiveFallback(t *testing.T) {
	// The last-resort rule accepts any two-decimal number. This is the
	// documented permissive behavior, not an accident.
	rec, _ := New().Extract(&types.RawEmail{
		MessageID: 11,
		From:      "orders@shop.example.com",
		Body:      "Order confirmed. Grand weight 2.50 kg",
	})
	require.NotNil(t, rec)
	assert.Equal(t, 2.50, rec.Amount)
	assert.Equal(t, "THB", rec.Currency)
}

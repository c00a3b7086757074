package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbofuh/back-savvy/internal/config"
	"github.com/vbofuh/back-savvy/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	db, err := Open(filepath.Join(t.TempDir(), "receipts.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(db, logger)
}

func testAccount(t *testing.T, s *Store) int {
	t.Helper()

	id, err := s.UpsertAccount(&config.AccountConfig{
		Name:         "personal",
		IMAPHost:     "imap.example.com",
		IMAPPort:     993,
		IMAPUsername: "me@example.com",
		Folder:       "INBOX",
	})
	require.NoError(t, err)
	return id
}

func testReceipt(accountID int, emailID string) *types.Receipt {
	date := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	return &types.Receipt{
		AccountID:   accountID,
		EmailID:     emailID,
		Subject:     "Your Steam receipt",
		From:        "noreply@steampowered.com",
		EmailDate:   &date,
		ReceiptDate: &date,
		VendorName:  "Steam",
		Amount:      549.00,
		Currency:    "THB",
	}
}

func TestUpsertAccountIsStable(t *testing.T) {
	s := newTestStore(t)

	first := testAccount(t, s)
	second := testAccount(t, s)
	assert.Equal(t, first, second)

	got, err := s.GetAccountID("personal")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestInsertReceiptDedup(t *testing.T) {
	s := newTestStore(t)
	accountID := testAccount(t, s)

	inserted, err := s.InsertReceipt(testReceipt(accountID, "imap_42"))
	require.NoError(t, err)
	assert.True(t, inserted)

	// Same dedup key: silently skipped
	inserted, err = s.InsertReceipt(testReceipt(accountID, "imap_42"))
	require.NoError(t, err)
	assert.False(t, inserted)

	count, err := s.CountReceipts(accountID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHasReceipt(t *testing.T) {
	s := newTestStore(t)
	accountID := testAccount(t, s)

	has, err := s.HasReceipt(accountID, "imap_42")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = s.InsertReceipt(testReceipt(accountID, "imap_42"))
	require.NoError(t, err)

	has, err = s.HasReceipt(accountID, "imap_42")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGetReceiptRoundTrip(t *testing.T) {
	s := newTestStore(t)
	accountID := testAccount(t, s)

	rec := testReceipt(accountID, "imap_42")
	rec.ReceiptNumber = "2501123456"
	rec.AttachmentPath = "receipt.pdf"

	_, err := s.InsertReceipt(rec)
	require.NoError(t, err)

	results, err := s.SearchReceipts(SearchOptions{AccountID: &accountID})
	require.NoError(t, err)
	require.Len(t, results, 1)

	got, err := s.GetReceipt(results[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "imap_42", got.EmailID)
	assert.Equal(t, "Steam", got.VendorName)
	assert.Equal(t, 549.00, got.Amount)
	assert.Equal(t, "THB", got.Currency)
	assert.Equal(t, "2501123456", got.ReceiptNumber)
	assert.Equal(t, "receipt.pdf", got.AttachmentPath)
	require.NotNil(t, got.ReceiptDate)
	assert.Equal(t, 2025, got.ReceiptDate.Year())
}

func TestSeedCategories(t *testing.T) {
	s := newTestStore(t)

	names := []string{"ช้อปปิ้ง", "ความบันเทิง", "ธนาคาร", "อื่นๆ"}
	require.NoError(t, s.SeedCategories(names))
	// Seeding twice must not duplicate or fail
	require.NoError(t, s.SeedCategories(names))

	id, err := s.CategoryID("ความบันเทิง")
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	_, err = s.CategoryID("does-not-exist")
	assert.Error(t, err)
}

func TestSearchReceiptsFilters(t *testing.T) {
	s := newTestStore(t)
	accountID := testAccount(t, s)

	steam := testReceipt(accountID, "imap_1")

	apple := testReceipt(accountID, "imap_2")
	apple.VendorName = "Apple"
	apple.Amount = 35.00
	appleDate := time.Date(2025, time.February, 12, 0, 0, 0, 0, time.UTC)
	apple.ReceiptDate = &appleDate

	for _, rec := range []*types.Receipt{steam, apple} {
		_, err := s.InsertReceipt(rec)
		require.NoError(t, err)
	}

	vendor := "Apple"
	results, err := s.SearchReceipts(SearchOptions{Vendor: &vendor})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Apple", results[0].VendorName)

	minAmount := 100.0
	results, err = s.SearchReceipts(SearchOptions{MinAmount: &minAmount})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Steam", results[0].VendorName)

	from := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	results, err = s.SearchReceipts(SearchOptions{DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Apple", results[0].VendorName)

	results, err = s.SearchReceipts(SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

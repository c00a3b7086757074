package email

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vbofuh/back-savvy/internal/category"
	"github.com/vbofuh/back-savvy/internal/config"
	"github.com/vbofuh/back-savvy/internal/extract"
	"github.com/vbofuh/back-savvy/internal/secret"
	"github.com/vbofuh/back-savvy/internal/store"
)

// Manager drives the sync pipeline: search a mailbox window, fetch each
// message, extract a receipt, persist it. Messages within one mailbox are
// processed strictly sequentially (IMAP connections are not concurrency
// safe); independent accounts sync in parallel.
type Manager struct {
	accountManager *AccountManager
	store          *store.Store
	extractor      *extract.Extractor
	config         *config.Config
	logger         *logrus.Logger
}

// NewManager creates a new sync manager
func NewManager(cfg *config.Config, cipher *secret.Cipher, receiptStore *store.Store, logger *logrus.Logger) (*Manager, error) {
	accountManager, err := NewAccountManager(cfg, cipher)
	if err != nil {
		return nil, fmt.Errorf("failed to create account manager: %w", err)
	}

	for _, account := range accountManager.accounts {
		account.IMAP.SetLogger(logger)
	}

	return &Manager{
		accountManager: accountManager,
		store:          receiptStore,
		extractor:      extract.New(),
		config:         cfg,
		logger:         logger,
	}, nil
}

// SyncAll syncs every configured account. Each account gets its own
// goroutine and its own IMAP session; failures are logged per account and do
// not stop the others.
func (m *Manager) SyncAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, name := range m.accountManager.ListAccounts() {
		wg.Add(1)
		go func(accountName string) {
			defer wg.Done()
			if err := m.SyncAccount(ctx, accountName); err != nil {
				m.logger.WithError(err).WithField("account", accountName).Error("Sync failed")
			}
		}(name)
	}
	wg.Wait()
}

// SyncAccount syncs one mailbox: messages from the configured window, capped
// at the configured limit, newest kept when capping.
func (m *Manager) SyncAccount(ctx context.Context, accountName string) error {
	account, ok := m.accountManager.GetAccount(accountName)
	if !ok {
		return fmt.Errorf("account not found: %s", accountName)
	}

	accountID, err := m.store.GetAccountID(accountName)
	if err != nil {
		accountID, err = m.store.UpsertAccount(account.Config)
		if err != nil {
			return fmt.Errorf("failed to create account in store: %w", err)
		}
	}

	if err := account.IMAP.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer account.IMAP.Close()

	since := time.Now().AddDate(0, 0, -m.config.SyncDaysBack)
	uids, err := account.IMAP.SearchSince(since)
	if err != nil {
		return fmt.Errorf("failed to search mailbox: %w", err)
	}

	// Cap the batch, keeping the most recent messages
	if len(uids) > m.config.SyncMessageLimit {
		uids = uids[len(uids)-m.config.SyncMessageLimit:]
	}

	m.logger.WithFields(logrus.Fields{
		"account": accountName,
		"since":   since.Format("2006-01-02"),
		"count":   len(uids),
	}).Info("Syncing mailbox")

	created := 0
	for _, uid := range uids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ok, err := m.processMessage(account, accountID, uid)
		if err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"account": accountName,
				"uid":     uid,
			}).Warn("Failed to process message")
			continue
		}
		if ok {
			created++
		}
	}

	if err := m.store.UpdateLastSync(accountID, time.Now()); err != nil {
		m.logger.WithError(err).WithField("account", accountName).Warn("Failed to record sync time")
	}

	m.logger.WithFields(logrus.Fields{
		"account":  accountName,
		"receipts": created,
	}).Info("Synced mailbox")

	return nil
}

// processMessage fetches, extracts, and persists one message. Returns true
// when a new receipt row was created.
func (m *Manager) processMessage(account *Account, accountID int, uid uint32) (bool, error) {
	raw, err := account.IMAP.FetchMessage(uid)
	if err != nil {
		return false, err
	}

	rec, notes := m.extractor.Extract(raw)
	for _, note := range notes {
		m.logger.WithFields(logrus.Fields{
			"uid":    uid,
			"field":  note.Field,
			"detail": note.Detail,
		}).Debug("Extraction note")
	}
	if rec == nil {
		return false, nil
	}

	rec.AccountID = accountID

	if id, err := m.store.CategoryID(category.Categorize(rec.VendorName)); err == nil {
		rec.CategoryID = &id
	}

	inserted, err := m.store.InsertReceipt(rec)
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// Close closes all connections
func (m *Manager) Close() error {
	return m.accountManager.Close()
}

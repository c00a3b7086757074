package email

import (
	"github.com/vbofuh/back-savvy/internal/config"
	"github.com/vbofuh/back-savvy/internal/secret"
)

// AccountManager manages the configured mailboxes
type AccountManager struct {
	accounts map[string]*Account
}

// Account is one configured mailbox with its IMAP client
type Account struct {
	Config *config.AccountConfig
	IMAP   *IMAPClient
}

// NewAccountManager creates a new account manager
func NewAccountManager(cfg *config.Config, cipher *secret.Cipher) (*AccountManager, error) {
	manager := &AccountManager{
		accounts: make(map[string]*Account),
	}

	for i := range cfg.Accounts {
		accCfg := &cfg.Accounts[i]

		imapClient, err := NewIMAPClient(accCfg, cipher)
		if err != nil {
			return nil, err
		}

		manager.accounts[accCfg.Name] = &Account{
			Config: accCfg,
			IMAP:   imapClient,
		}
	}

	return manager, nil
}

// GetAccount returns an account by name
func (m *AccountManager) GetAccount(name string) (*Account, bool) {
	account, exists := m.accounts[name]
	return account, exists
}

// ListAccounts returns all account names
func (m *AccountManager) ListAccounts() []string {
	names := make([]string, 0, len(m.accounts))
	for name := range m.accounts {
		names = append(names, name)
	}
	return names
}

// Close closes all account connections
func (m *AccountManager) Close() error {
	for _, account := range m.accounts {
		if account.IMAP != nil {
			account.IMAP.Close()
		}
	}
	return nil
}

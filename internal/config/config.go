package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	// Store settings
	DBPath        string
	EncryptionKey string
	LogLevel      string

	// Sync window
	SyncDaysBack     int
	SyncMessageLimit int

	// Accounts
	Accounts []AccountConfig
}

// AccountConfig holds configuration for a single IMAP mailbox. The password
// is stored encrypted and only decrypted at connect time.
type AccountConfig struct {
	Name string

	IMAPHost          string
	IMAPPort          int
	IMAPUsername      string
	PasswordEncrypted string
	Folder            string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBPath:           getEnv("DB_PATH", "/data/receipts.db"),
		EncryptionKey:    getEnv("ENCRYPTION_KEY", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SyncDaysBack:     getEnvInt("SYNC_DAYS_BACK", 30),
		SyncMessageLimit: getEnvInt("SYNC_MESSAGE_LIMIT", 50),
	}

	accounts, err := loadAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no mailbox accounts configured")
	}

	cfg.Accounts = accounts
	return cfg, nil
}

// loadAccounts loads mailbox account configurations from environment variables
func loadAccounts() ([]AccountConfig, error) {
	var accounts []AccountConfig

	// Single account configuration takes precedence when present
	if getEnv("IMAP_HOST", "") != "" {
		account, err := loadSingleAccount()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
		return accounts, nil
	}

	// Load multiple accounts (ACCOUNT_1_*, ACCOUNT_2_*, etc.)
	accountNum := 1
	for {
		account, err := loadAccountByNumber(accountNum)
		if err != nil {
			break // No more accounts
		}
		accounts = append(accounts, *account)
		accountNum++
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts found in environment variables")
	}

	return accounts, nil
}

// loadSingleAccount loads a single account from environment variables
func loadSingleAccount() (*AccountConfig, error) {
	host := getEnv("IMAP_HOST", "")
	port := getEnvInt("IMAP_PORT", 993)
	username := getEnv("IMAP_USERNAME", "")
	password := getEnv("IMAP_PASSWORD", "")
	folder := getEnv("IMAP_FOLDER", "INBOX")

	if host == "" || username == "" {
		return nil, fmt.Errorf("IMAP_HOST and IMAP_USERNAME are required")
	}

	if password == "" {
		return nil, fmt.Errorf("IMAP_PASSWORD is required")
	}

	name := getEnv("ACCOUNT_NAME", "default")
	if name == "" {
		name = "default"
	}

	return &AccountConfig{
		Name:              name,
		IMAPHost:          host,
		IMAPPort:          port,
		IMAPUsername:      username,
		PasswordEncrypted: password,
		Folder:            folder,
	}, nil
}

// loadAccountByNumber loads an account by number (ACCOUNT_1_*, ACCOUNT_2_*, etc.)
func loadAccountByNumber(num int) (*AccountConfig, error) {
	prefix := fmt.Sprintf("ACCOUNT_%d_", num)

	name := getEnv(prefix+"NAME", "")
	if name == "" {
		return nil, fmt.Errorf("account %d: NAME is required", num)
	}

	host := getEnv(prefix+"IMAP_HOST", "")
	port := getEnvInt(prefix+"IMAP_PORT", 993)
	username := getEnv(prefix+"IMAP_USERNAME", "")
	password := getEnv(prefix+"IMAP_PASSWORD", "")
	folder := getEnv(prefix+"IMAP_FOLDER", "INBOX")

	if host == "" || username == "" {
		return nil, fmt.Errorf("account %d: IMAP_HOST and IMAP_USERNAME are required", num)
	}

	if password == "" {
		return nil, fmt.Errorf("account %d: IMAP_PASSWORD is required", num)
	}

	return &AccountConfig{
		Name:              name,
		IMAPHost:          host,
		IMAPPort:          port,
		IMAPUsername:      username,
		PasswordEncrypted: password,
		Folder:            folder,
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetAccountByName finds an account by name
func (c *Config) GetAccountByName(name string) (*AccountConfig, error) {
	for i := range c.Accounts {
		if c.Accounts[i].Name == name {
			return &c.Accounts[i], nil
		}
	}
	return nil, fmt.Errorf("account not found: %s", name)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	if c.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required")
	}

	if c.SyncDaysBack < 1 {
		return fmt.Errorf("SYNC_DAYS_BACK must be at least 1")
	}

	if c.SyncMessageLimit < 1 || c.SyncMessageLimit > 1000 {
		return fmt.Errorf("SYNC_MESSAGE_LIMIT must be between 1 and 1000")
	}

	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account must be configured")
	}

	for i := range c.Accounts {
		acc := &c.Accounts[i]
		if acc.IMAPHost == "" {
			return fmt.Errorf("account %s: IMAP_HOST is required", acc.Name)
		}
		if acc.IMAPPort < 1 || acc.IMAPPort > 65535 {
			return fmt.Errorf("account %s: invalid IMAP_PORT", acc.Name)
		}
		if acc.Folder == "" {
			return fmt.Errorf("account %s: IMAP_FOLDER is required", acc.Name)
		}
	}

	return nil
}

// AccountNames returns a list of all account names
func (c *Config) AccountNames() []string {
	names := make([]string, len(c.Accounts))
	for i := range c.Accounts {
		names[i] = c.Accounts[i].Name
	}
	return names
}

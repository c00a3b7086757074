package email

import (
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"

	"github.com/vbofuh/back-savvy/internal/config"
	"github.com/vbofuh/back-savvy/internal/secret"
	"github.com/vbofuh/back-savvy/pkg/types"
)

// IMAPClient wraps an IMAP client connection for one mailbox. A connection
// is not safe for concurrent use; the sync manager drives each client from a
// single goroutine.
type IMAPClient struct {
	config    *config.AccountConfig
	cipher    *secret.Cipher
	client    *client.Client
	logger    *logrus.Logger
	connected bool
}

// NewIMAPClient creates a new IMAP client (does not connect immediately)
func NewIMAPClient(cfg *config.AccountConfig, cipher *secret.Cipher) (*IMAPClient, error) {
	return &IMAPClient{
		config: cfg,
		cipher: cipher,
		logger: logrus.New(),
	}, nil
}

// Connect establishes a connection to the IMAP server. The stored password
// is decrypted only here and never retained.
func (c *IMAPClient) Connect() error {
	if c.connected && c.client != nil {
		return nil
	}

	password, err := c.cipher.Decrypt(c.config.PasswordEncrypted)
	if err != nil {
		return fmt.Errorf("failed to decrypt mailbox password: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", c.config.IMAPHost, c.config.IMAPPort)

	cl, err := client.DialTLS(addr, &tls.Config{
		ServerName: c.config.IMAPHost,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to IMAP server: %w", err)
	}

	c.client = cl

	if err := c.client.Login(c.config.IMAPUsername, password); err != nil {
		c.logger.WithError(err).Error("Failed to login to IMAP server")
		c.client.Logout() //nolint:errcheck
		c.client = nil
		return fmt.Errorf("failed to login to IMAP server: %w", err)
	}

	c.connected = true
	c.logger.WithField("account", c.config.Name).Info("Connected to IMAP server")
	return nil
}

// Close closes the IMAP connection
func (c *IMAPClient) Close() error {
	if c.client != nil {
		if err := c.client.Logout(); err != nil {
			return err
		}
		c.client = nil
		c.connected = false
	}
	return nil
}

// SearchSince returns the UIDs of messages received on or after the given
// time in the configured folder. UIDs rather than sequence numbers keep the
// dedup key stable across sessions.
func (c *IMAPClient) SearchSince(since time.Time) ([]uint32, error) {
	if err := c.Connect(); err != nil {
		return nil, err
	}

	if _, err := c.client.Select(c.config.Folder, true); err != nil {
		return nil, fmt.Errorf("failed to select folder: %w", err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = since

	uids, err := c.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search mailbox: %w", err)
	}

	return uids, nil
}

// FetchMessage fetches one message by UID and decodes it into a RawEmail.
// The folder must already be selected by a prior SearchSince call on the
// same connection.
func (c *IMAPClient) FetchMessage(uid uint32) (*types.RawEmail, error) {
	if err := c.Connect(); err != nil {
		return nil, err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- c.client.UidFetch(seqSet, items, messages)
	}()

	var raw *types.RawEmail
	for msg := range messages {
		body := c.readBodyBytes(msg)
		if body == nil {
			continue
		}
		raw = DecodeMessage(msg.Uid, body)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %d: %w", uid, err)
	}

	if raw == nil {
		return nil, fmt.Errorf("message %d has no body", uid)
	}

	return raw, nil
}

// SetLogger sets the logger for the client
func (c *IMAPClient) SetLogger(logger *logrus.Logger) {
	c.logger = logger
}

// readBodyBytes pulls the full RFC822 content out of a fetched message,
// trying the body section keys servers are known to answer with.
func (c *IMAPClient) readBodyBytes(msg *imap.Message) []byte {
	if msg.Body == nil {
		return nil
	}

	if literal, ok := msg.Body[nil]; ok {
		return c.readLiteralToBytes(literal)
	}

	emptySection := &imap.BodySectionName{}
	if literal, ok := msg.Body[emptySection]; ok {
		return c.readLiteralToBytes(literal)
	}

	for _, literal := range msg.Body {
		if b := c.readLiteralToBytes(literal); len(b) > 0 {
			return b
		}
	}

	return nil
}

// readLiteralToBytes reads content from an IMAP literal and returns bytes
func (c *IMAPClient) readLiteralToBytes(literal imap.Literal) []byte {
	bodyBytes := make([]byte, 0, 8192)
	buf := make([]byte, 1024)
	for {
		n, err := literal.Read(buf)
		if n > 0 {
			bodyBytes = append(bodyBytes, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			c.logger.WithError(err).Error("Error reading literal")
			break
		}
	}
	return bodyBytes
}

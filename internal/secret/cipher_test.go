package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher("test-key")
	require.NoError(t, err)

	token, err := c.Encrypt("imap-password")
	require.NoError(t, err)
	assert.NotEqual(t, "imap-password", token)

	plain, err := c.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "imap-password", plain)
}

func TestCipherRejectsEmptyKey(t *testing.T) {
	_, err := NewCipher("")
	assert.Error(t, err)
}

func TestCipherWrongKey(t *testing.T) {
	a, err := NewCipher("key-a")
	require.NoError(t, err)
	b, err := NewCipher("key-b")
	require.NoError(t, err)

	token, err := a.Encrypt("password")
	require.NoError(t, err)

	_, err = b.Decrypt(token)
	assert.Error(t, err)
}

func TestCipherGarbageToken(t *testing.T) {
	c, err := NewCipher("test-key")
	require.NoError(t, err)

	_, err = c.Decrypt("not base64!!!")
	assert.Error(t, err)

	_, err = c.Decrypt("YWJj")
	assert.Error(t, err)
}

package idea

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	c := New()
	require.NoError(t, c.SetKey(key))

	plaintext := make([]byte, BlockSize)
	_, err = rand.Read(plaintext)
	require.NoError(t, err)

	ct, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ct)

	pt, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestRejectsWrongKeySize(t *testing.T) {
	c := New()
	assert.Error(t, c.SetKey(make([]byte, 8)))
}

func TestRejectsWrongBlockSize(t *testing.T) {
	c := New()
	require.NoError(t, c.SetKey(make([]byte, KeySize)))
	_, err := c.EncryptBlock(make([]byte, 4))
	assert.Error(t, err)
}

func TestEncryptBlockBeforeSetKeyFails(t *testing.T) {
	c := New()
	_, err := c.EncryptBlock(make([]byte, BlockSize))
	assert.Error(t, err)
}

func TestZeroKeyRoundTrip(t *testing.T) {
	c := New()
	require.NoError(t, c.SetKey(make([]byte, KeySize)))

	plaintext := make([]byte, BlockSize)
	ct, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)

	pt, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

package tripledes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, keySize int) {
	key, err := GenerateKey(keySize)
	require.NoError(t, err)

	c := New()
	require.NoError(t, c.SetKey(key))

	plaintext := []byte("ABCDEFGH")
	ct, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ct)

	pt, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestRoundTrip8ByteKey(t *testing.T)  { roundTrip(t, 8) }
func TestRoundTrip16ByteKey(t *testing.T) { roundTrip(t, 16) }
func TestRoundTrip24ByteKey(t *testing.T) { roundTrip(t, 24) }

func TestRejectsBadKeySize(t *testing.T) {
	c := New()
	assert.Error(t, c.SetKey(make([]byte, 10)))
}

func Test16ByteKeyReusesK1AsK3(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	c := New()
	require.NoError(t, c.SetKey(key))
	// With a 16-byte key, K3 == K1, so single-DES-encrypting with k1 and
	// then decrypting with k3 must be the identity.
	block := []byte("12345678")
	enc, err := c.k1.EncryptBlock(block)
	require.NoError(t, err)
	dec, err := c.k3.DecryptBlock(enc)
	require.NoError(t, err)
	assert.Equal(t, block, dec)
}

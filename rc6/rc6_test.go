package rc6

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRC6_32_20_16ZeroKeyRoundTrip checks the canonical RC6-32/20/16
// parameterization (32-bit words, 20 rounds, 16-byte key) round-trips
// and that encrypting actually changes the block.
func TestRC6_32_20_16ZeroKeyRoundTrip(t *testing.T) {
	c, err := New(32, 20)
	require.NoError(t, err)
	require.NoError(t, c.SetKey(make([]byte, 16)))

	plaintext := make([]byte, 16)
	ct, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ct)

	pt, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestRoundTripAllWordSizes(t *testing.T) {
	for _, wordBits := range []int{16, 32, 64} {
		key, err := GenerateKey(4 * (wordBits / 8))
		require.NoError(t, err)

		c, err := New(wordBits, 20)
		require.NoError(t, err)
		require.NoError(t, c.SetKey(key))

		plaintext := make([]byte, c.BlockSize())
		for i := range plaintext {
			plaintext[i] = byte(i * 13)
		}

		ct, err := c.EncryptBlock(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, ct)

		pt, err := c.DecryptBlock(ct)
		require.NoError(t, err)
		assert.Equal(t, plaintext, pt, "word size %d", wordBits)
	}
}

func TestRoundTripVariableKeyLengths(t *testing.T) {
	c, err := New(32, 20)
	require.NoError(t, err)

	for _, keyLen := range []int{0, 1, 5, 16, 24, 32, 255} {
		key, err := GenerateKey(keyLen)
		require.NoError(t, err)
		require.NoError(t, c.SetKey(key))

		plaintext := []byte("0123456789ABCDEF")
		ct, err := c.EncryptBlock(plaintext)
		require.NoError(t, err)

		pt, err := c.DecryptBlock(ct)
		require.NoError(t, err)
		assert.Equal(t, plaintext, pt, "key length %d", keyLen)
	}
}

func TestNewRejectsInvalidWordSize(t *testing.T) {
	_, err := New(24, 20)
	assert.Error(t, err)
}

func TestEncryptBlockRejectsWrongSize(t *testing.T) {
	c, err := New(32, 20)
	require.NoError(t, err)
	require.NoError(t, c.SetKey(make([]byte, 16)))

	_, err = c.EncryptBlock(make([]byte, 8))
	assert.Error(t, err)
}

func TestEncryptBlockRejectsUnkeyedCipher(t *testing.T) {
	c, err := New(32, 20)
	require.NoError(t, err)

	_, err = c.EncryptBlock(make([]byte, 16))
	assert.Error(t, err)
}

package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadAlwaysGrows(t *testing.T) {
	for _, mode := range []PaddingMode{Zeros, ANSIX923, PKCS7, ISO10126} {
		data := make([]byte, 16) // already block-aligned
		for i := range data {
			data[i] = byte(i + 1)
		}
		padded, err := Pad(data, 8, mode)
		require.NoError(t, err)
		assert.Greater(t, len(padded), len(data), "mode %v must always grow the buffer", mode)
		assert.Equal(t, 0, len(padded)%8)
	}
}

func TestPKCS7RoundTrip(t *testing.T) {
	data := []byte("hello, world")
	padded, err := Pad(data, 8, PKCS7)
	require.NoError(t, err)
	unpadded, err := Unpad(padded, 8, PKCS7)
	require.NoError(t, err)
	assert.Equal(t, data, unpadded)
}

func TestANSIX923RoundTrip(t *testing.T) {
	data := []byte("0123456789AB")
	padded, err := Pad(data, 8, ANSIX923)
	require.NoError(t, err)
	unpadded, err := Unpad(padded, 8, ANSIX923)
	require.NoError(t, err)
	assert.Equal(t, data, unpadded)
}

func TestISO10126RoundTrip(t *testing.T) {
	data := []byte("0123456789AB")
	padded, err := Pad(data, 8, ISO10126)
	require.NoError(t, err)
	unpadded, err := Unpad(padded, 8, ISO10126)
	require.NoError(t, err)
	assert.Equal(t, data, unpadded)
}

func TestZerosPaddingIsAmbiguousByDesign(t *testing.T) {
	data := []byte("abc\x00\x00")
	padded, err := Pad(data, 8, Zeros)
	require.NoError(t, err)
	unpadded, err := Unpad(padded, 8, Zeros)
	require.NoError(t, err)
	// Trailing zero bytes of the original plaintext are indistinguishable
	// from padding; this is the scheme's documented limitation.
	assert.Equal(t, []byte("abc"), unpadded)
}

func TestSplitJoinRoundTrip(t *testing.T) {
	data := []byte("0123456789ABCDEF")
	blocks, err := Split(data, 8)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, data, Join(blocks))
}

func TestSplitRejectsMisalignedInput(t *testing.T) {
	_, err := Split([]byte("12345"), 8)
	assert.Error(t, err)
}

func TestRandomLength(t *testing.T) {
	b, err := Random(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

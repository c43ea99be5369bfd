package rijndael

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FIPS-197 appendix B/C AES-128 test vector: with Nb=Nk=4, Rijndael is AES.
func TestEncryptBlockMatchesAES128Vector(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	plaintext, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	wantCipher, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")

	c, err := New(16, 16)
	require.NoError(t, err)
	require.NoError(t, c.SetKey(key))

	got, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)
	assert.Equal(t, wantCipher, got)
}

func TestDecryptInvertsAES128Vector(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	ciphertext, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")
	wantPlain, _ := hex.DecodeString("00112233445566778899aabbccddeeff")

	c, err := New(16, 16)
	require.NoError(t, err)
	require.NoError(t, c.SetKey(key))

	got, err := c.DecryptBlock(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, wantPlain, got)
}

func roundTrip(t *testing.T, blockSize, keySize int) {
	c, err := New(blockSize, keySize)
	require.NoError(t, err)

	key, err := c.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, c.SetKey(key))

	plaintext := make([]byte, blockSize)
	for i := range plaintext {
		plaintext[i] = byte(i * 7)
	}

	ct, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ct)

	pt, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestRoundTripAllSizeCombinations(t *testing.T) {
	sizes := []int{16, 24, 32}
	for _, b := range sizes {
		for _, k := range sizes {
			b, k := b, k
			t.Run("", func(t *testing.T) { roundTrip(t, b, k) })
		}
	}
}

func TestShiftRowsUsesOriginalPaperShiftsForNb8(t *testing.T) {
	assert.Equal(t, [3]int{1, 3, 4}, shiftRowsTable[8])
	assert.Equal(t, [3]int{1, 2, 3}, shiftRowsTable[4])
	assert.Equal(t, [3]int{1, 2, 3}, shiftRowsTable[6])
}

func TestRejectsInvalidSizes(t *testing.T) {
	_, err := New(20, 16)
	assert.Error(t, err)
}

func TestSBoxAndInverseAreMutualInverses(t *testing.T) {
	c, err := New(16, 16)
	require.NoError(t, err)
	for b := 0; b < 256; b++ {
		assert.Equal(t, byte(b), c.invSBox[c.sBox[b]], "byte 0x%02x", b)
	}
}

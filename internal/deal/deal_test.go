package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emppress/cryptography/internal/des"
)

func roundTrip(t *testing.T, keySize int) {
	key, err := GenerateKey(keySize)
	require.NoError(t, err)

	c := New()
	require.NoError(t, c.SetKey(key))

	plaintext := []byte("0123456789ABCDEF")
	ct, err := c.EncryptBlock(plaintext)
	require.NoError(t, err)
	assert.Len(t, ct, BlockSize)
	assert.NotEqual(t, plaintext, ct)

	pt, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestRoundTrip128BitKey(t *testing.T) { roundTrip(t, 16) }
func TestRoundTrip192BitKey(t *testing.T) { roundTrip(t, 24) }
func TestRoundTrip256BitKey(t *testing.T) { roundTrip(t, 32) }

func TestRejectsBadKeySize(t *testing.T) {
	c := New()
	assert.Error(t, c.SetKey(make([]byte, 20)))
}

func Test192BitKeyUsesEightRounds(t *testing.T) {
	key, err := GenerateKey(24)
	require.NoError(t, err)
	_, numRounds, err := scheduleRoundKeys(key)
	require.NoError(t, err)
	assert.Equal(t, 8, numRounds)
}

func Test128BitKeyUsesSixRounds(t *testing.T) {
	key, err := GenerateKey(16)
	require.NoError(t, err)
	_, numRounds, err := scheduleRoundKeys(key)
	require.NoError(t, err)
	assert.Equal(t, 6, numRounds)
}

// TestFirstRoundKeyIsSeedEncryptOfFirstKeyChunk pins the schedule's
// round order: round 0 XORs the (still-zero) running value with
// key[0:8] before encrypting under the seed key, so round_key[0] must
// equal DES_enc(seedKey, key[0:8]) exactly, not
// DES_enc(seedKey, 0) XOR key[0:8], which is what an encrypt-then-XOR
// ordering would produce instead.
func TestFirstRoundKeyIsSeedEncryptOfFirstKeyChunk(t *testing.T) {
	key, err := GenerateKey(16)
	require.NoError(t, err)

	roundKeys, _, err := scheduleRoundKeys(key)
	require.NoError(t, err)

	seed := des.New()
	require.NoError(t, seed.SetKey(expansionKey))
	want, err := seed.EncryptBlock(key[0:8])
	require.NoError(t, err)

	assert.Equal(t, want, roundKeys[0])
}

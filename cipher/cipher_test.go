package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every constructor in this package should hand back a working,
// keyable SymmetricAlgorithm of the advertised block size.
func TestConstructorsRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		algo SymmetricAlgorithm
		key  []byte
	}{
		{"des", NewDES(), make([]byte, 8)},
		{"tripledes", NewTripleDES(), make([]byte, 24)},
		{"deal", NewDEAL(), make([]byte, 16)},
		{"idea", NewIDEA(), make([]byte, 16)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.NoError(t, c.algo.SetKey(c.key))
			plaintext := make([]byte, c.algo.BlockSize())
			for i := range plaintext {
				plaintext[i] = byte(i * 17)
			}

			ct, err := c.algo.EncryptBlock(plaintext)
			require.NoError(t, err)
			assert.NotEqual(t, plaintext, ct)

			pt, err := c.algo.DecryptBlock(ct)
			require.NoError(t, err)
			assert.Equal(t, plaintext, pt)
		})
	}
}

func TestNewRijndaelRoundTrip(t *testing.T) {
	algo, err := NewRijndael(16, 32)
	require.NoError(t, err)
	require.NoError(t, algo.SetKey(make([]byte, 32)))

	plaintext := make([]byte, 16)
	ct, err := algo.EncryptBlock(plaintext)
	require.NoError(t, err)
	pt, err := algo.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestNewRijndaelRejectsBadSizes(t *testing.T) {
	_, err := NewRijndael(20, 16)
	assert.Error(t, err)
}

func TestNewRC6RoundTrip(t *testing.T) {
	algo, err := NewRC6(32, 20)
	require.NoError(t, err)
	require.NoError(t, algo.SetKey(make([]byte, 16)))

	plaintext := make([]byte, algo.BlockSize())
	ct, err := algo.EncryptBlock(plaintext)
	require.NoError(t, err)
	pt, err := algo.DecryptBlock(ct)
	require.NoError(t, err)
	assert.Equal(t, plaintext, pt)
}

func TestNewRC6RejectsBadWordSize(t *testing.T) {
	_, err := NewRC6(48, 20)
	assert.Error(t, err)
}

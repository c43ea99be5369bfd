package rsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimalityTestsAgreeOnKnownValues(t *testing.T) {
	primes := []int64{2, 3, 5, 97, 104729}
	composites := []int64{4, 15, 100, 104730}

	tests := []PrimalityTest{FermatTest{}, SolovayStrassenTest{}, MillerRabinTest{}}
	for _, test := range tests {
		for _, p := range primes {
			assert.True(t, test.IsProbablyPrime(big.NewInt(p), 0.999), "%T says %d is composite", test, p)
		}
		for _, c := range composites {
			assert.False(t, test.IsProbablyPrime(big.NewInt(c), 0.999), "%T says %d is prime", test, c)
		}
	}
}

func TestKeyPairEncryptDecryptRoundTrip(t *testing.T) {
	kg := NewKeyGenerator(MillerRabinTest{}, 0.999, 128)
	pub, priv, err := kg.GenerateKeyPair()
	require.NoError(t, err)

	message := big.NewInt(42)
	ct, err := Encrypt(pub, message)
	require.NoError(t, err)

	pt := Decrypt(priv, ct)
	assert.Equal(t, message, pt)
}

func TestEncryptRejectsMessageTooLarge(t *testing.T) {
	pub := &PublicKey{N: big.NewInt(100), E: big.NewInt(7)}
	_, err := Encrypt(pub, big.NewInt(100))
	assert.ErrorIs(t, err, ErrMessageTooLarge)
}

// Textbook Wiener example: small primes chosen so that d is small
// enough (d < N^0.25/3) for the continued-fraction attack to recover
// it from (N, E) alone.
func TestWienerAttackRecoversSmallD(t *testing.T) {
	p := big.NewInt(17993)
	q := big.NewInt(17789)
	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, big.NewInt(1)),
		new(big.Int).Sub(q, big.NewInt(1)),
	)

	d := big.NewInt(17) // deliberately tiny private exponent
	_, e, _ := extendedGCD(d, phi)
	e.Mod(e, phi)
	if e.Sign() < 0 {
		e.Add(e, phi)
	}

	pub := &PublicKey{N: n, E: e}
	result := WienerAttack(pub)
	require.True(t, result.Success)
	assert.Equal(t, d, result.D)
	assert.Equal(t, phi, result.Phi)
}

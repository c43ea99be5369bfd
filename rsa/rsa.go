package rsa

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// PublicKey is an RSA public key (n, e).
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is an RSA private key: the private exponent D plus the
// prime factors P and Q it was derived from.
type PrivateKey struct {
	Public *PublicKey
	D      *big.Int
	P, Q   *big.Int
}

// KeyGenerator produces RSA key pairs of a fixed modulus bit length,
// using the given primality test to validate candidate factors and
// guarding against two textbook weaknesses: a private exponent small
// enough for this module's Wiener attack (wiener.go), and factors too
// close together (Fermat factorization).
type KeyGenerator struct {
	Test           PrimalityTest
	MinProbability float64
	BitLength      int
}

// NewKeyGenerator builds a KeyGenerator over test, requiring at least
// minProbability confidence from it and producing bitLength-bit moduli.
func NewKeyGenerator(test PrimalityTest, minProbability float64, bitLength int) *KeyGenerator {
	return &KeyGenerator{Test: test, MinProbability: minProbability, BitLength: bitLength}
}

func (kg *KeyGenerator) generatePrime() (*big.Int, error) {
	for {
		candidate, err := rand.Prime(rand.Reader, kg.BitLength/2)
		if err != nil {
			return nil, err
		}
		if kg.Test.IsProbablyPrime(candidate, kg.MinProbability) {
			return candidate, nil
		}
	}
}

// GenerateKeyPair generates a fresh RSA key pair, rejecting candidates
// whose factors are too close (Fermat factorization risk) or whose
// private exponent is small enough for Wiener's attack (d <= n^0.25).
func (kg *KeyGenerator) GenerateKeyPair() (*PublicKey, *PrivateKey, error) {
	for {
		p, err := kg.generatePrime()
		if err != nil {
			return nil, nil, err
		}
		q, err := kg.generatePrime()
		if err != nil {
			return nil, nil, err
		}

		diff := new(big.Int).Sub(p, q)
		diff.Abs(diff)
		minDiff := new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(kg.BitLength/2-100)), nil)
		if diff.Cmp(minDiff) < 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		phi := new(big.Int).Mul(
			new(big.Int).Sub(p, big.NewInt(1)),
			new(big.Int).Sub(q, big.NewInt(1)),
		)

		e := big.NewInt(65537)
		gcd, d, _ := extendedGCD(e, phi)
		if gcd.Cmp(big.NewInt(1)) != 0 {
			continue
		}
		if d.Sign() < 0 {
			d.Add(d, phi)
		}

		quarterRoot := new(big.Int).Sqrt(new(big.Int).Sqrt(n))
		if d.Cmp(quarterRoot) <= 0 {
			continue
		}

		pub := &PublicKey{N: n, E: e}
		return pub, &PrivateKey{Public: pub, D: d, P: p, Q: q}, nil
	}
}

var (
	// ErrMessageTooLarge is returned by Encrypt when message >= N.
	ErrMessageTooLarge = errors.New("rsa: message too large for modulus")
)

// Encrypt computes message^E mod N.
func Encrypt(pub *PublicKey, message *big.Int) (*big.Int, error) {
	if message.Cmp(pub.N) >= 0 {
		return nil, ErrMessageTooLarge
	}
	return modPow(message, pub.E, pub.N), nil
}

// Decrypt computes ciphertext^D mod N.
func Decrypt(priv *PrivateKey, ciphertext *big.Int) *big.Int {
	return modPow(ciphertext, priv.D, priv.Public.N)
}

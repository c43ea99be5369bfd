// Package dh implements Diffie-Hellman key exchange over a safe prime
// modulus, plus a session-key demo showing what a completed exchange
// feeds into: AES-GCM keyed by SHA-256 of the shared secret. It stands
// alone rather than plugging into cipher.SymmetricAlgorithm.
package dh

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Parameters is a Diffie-Hellman group: a safe prime and a generator
// of the whole multiplicative group Z_p* (order p-1).
type Parameters struct {
	Prime     *big.Int
	Generator *big.Int
	BitSize   int
}

// KeyPair is one party's private exponent and the corresponding public
// value g^x mod p.
type KeyPair struct {
	PrivateKey *big.Int
	PublicKey  *big.Int
}

// Party is one participant in an exchange: its own key pair plus,
// after ExchangeKeys, the shared secret it agreed with a peer.
type Party struct {
	Name      string
	Params    *Parameters
	Keys      *KeyPair
	SharedKey *big.Int
}

// GenerateSafePrime samples a bits-bit safe prime p (p and (p-1)/2 both
// prime), the modulus Diffie-Hellman needs to avoid small subgroup
// attacks.
func GenerateSafePrime(bits int) (*big.Int, error) {
	if bits < 256 {
		return nil, errors.New("dh: prime size must be at least 256 bits")
	}

	for {
		p, err := rand.Prime(rand.Reader, bits)
		if err != nil {
			return nil, fmt.Errorf("dh: generating candidate prime: %w", err)
		}

		q := new(big.Int).Sub(p, big.NewInt(1))
		q.Div(q, big.NewInt(2))
		if q.ProbablyPrime(20) {
			return p, nil
		}
	}
}

// FindGenerator returns a generator of Z_p* (order p-1) for a safe
// prime p, trying small integers starting from 2 and taking the first g
// with g^((p-1)/2) != 1 mod p.
func FindGenerator(prime *big.Int) (*big.Int, error) {
	pMinus1 := new(big.Int).Sub(prime, big.NewInt(1))
	exp := new(big.Int).Div(pMinus1, big.NewInt(2))

	for i := int64(2); i < 100; i++ {
		g := big.NewInt(i)
		if new(big.Int).Exp(g, exp, prime).Cmp(big.NewInt(1)) != 0 {
			return g, nil
		}
	}
	return nil, errors.New("dh: no generator found in the search range")
}

// NewParameters samples a fresh bits-bit safe-prime Diffie-Hellman
// group.
func NewParameters(bits int) (*Parameters, error) {
	prime, err := GenerateSafePrime(bits)
	if err != nil {
		return nil, fmt.Errorf("dh: generating prime: %w", err)
	}
	generator, err := FindGenerator(prime)
	if err != nil {
		return nil, fmt.Errorf("dh: finding generator: %w", err)
	}
	return &Parameters{Prime: prime, Generator: generator, BitSize: bits}, nil
}

// GeneratePrivateKey samples a private exponent in [2, p-2].
func (params *Parameters) GeneratePrivateKey() (*big.Int, error) {
	max := new(big.Int).Sub(params.Prime, big.NewInt(3))
	privateKey, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, fmt.Errorf("dh: generating private key: %w", err)
	}
	privateKey.Add(privateKey, big.NewInt(2))
	return privateKey, nil
}

// ComputePublicKey returns g^privateKey mod p.
func (params *Parameters) ComputePublicKey(privateKey *big.Int) *big.Int {
	return new(big.Int).Exp(params.Generator, privateKey, params.Prime)
}

// ComputeSharedSecret returns otherPublicKey^myPrivateKey mod p, after
// validating otherPublicKey lies in [2, p-2] (rejecting the unity and
// order-2 elements that would leak the secret).
func (params *Parameters) ComputeSharedSecret(myPrivateKey, otherPublicKey *big.Int) (*big.Int, error) {
	if otherPublicKey.Cmp(big.NewInt(1)) <= 0 ||
		otherPublicKey.Cmp(new(big.Int).Sub(params.Prime, big.NewInt(1))) >= 0 {
		return nil, errors.New("dh: peer public key out of range")
	}
	return new(big.Int).Exp(otherPublicKey, myPrivateKey, params.Prime), nil
}

// NewParty generates a fresh key pair under params and returns the
// resulting Party, ready to ExchangeKeys with a peer.
func NewParty(name string, params *Parameters) (*Party, error) {
	privateKey, err := params.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("dh: creating party %q: %w", name, err)
	}
	publicKey := params.ComputePublicKey(privateKey)
	return &Party{
		Name:   name,
		Params: params,
		Keys:   &KeyPair{PrivateKey: privateKey, PublicKey: publicKey},
	}, nil
}

// ExchangeKeys computes and stores the shared secret with a peer whose
// public key is otherPublicKey.
func (party *Party) ExchangeKeys(otherPublicKey *big.Int) error {
	sharedSecret, err := party.Params.ComputeSharedSecret(party.Keys.PrivateKey, otherPublicKey)
	if err != nil {
		return fmt.Errorf("dh: computing shared secret: %w", err)
	}
	party.SharedKey = sharedSecret
	return nil
}

// SharedKeyBytes renders the shared secret as a big-endian byte string
// of exactly length bytes, truncating or left-padding with zeros as
// needed, for use as raw key material.
func (party *Party) SharedKeyBytes(length int) []byte {
	if party.SharedKey == nil {
		return nil
	}
	keyBytes := party.SharedKey.Bytes()
	result := make([]byte, length)
	if len(keyBytes) < length {
		copy(result[length-len(keyBytes):], keyBytes)
	} else {
		copy(result, keyBytes[len(keyBytes)-length:])
	}
	return result
}

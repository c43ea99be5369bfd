// Package tripledes implements Triple-DES (EDE) over three independent
// DES instances, accepting the standard 8-, 16- and 24-byte keying
// options.
package tripledes

import (
	"crypto/rand"
	"fmt"

	"github.com/emppress/cryptography/internal/des"
)

const BlockSize = des.BlockSize

// Cipher is Triple-DES: encrypt = E(K3, D(K2, E(K1, block))).
type Cipher struct {
	k1, k2, k3 *des.Cipher
}

// New constructs an unkeyed Triple-DES cipher.
func New() *Cipher {
	return &Cipher{k1: des.New(), k2: des.New(), k3: des.New()}
}

func (c *Cipher) BlockSize() int { return BlockSize }

// SetKey accepts an 8-, 16- or 24-byte key. An 8-byte key degrades to
// single DES (K1=K2=K3); a 16-byte key reuses K1 for K3 (the standard
// "keying option 2"); a 24-byte key gives three independent subkeys.
func (c *Cipher) SetKey(key []byte) error {
	var k1, k2, k3 []byte
	switch len(key) {
	case 8:
		k1, k2, k3 = key[0:8], key[0:8], key[0:8]
	case 16:
		k1, k2, k3 = key[0:8], key[8:16], key[0:8]
	case 24:
		k1, k2, k3 = key[0:8], key[8:16], key[16:24]
	default:
		return fmt.Errorf("tripledes: key must be 8, 16 or 24 bytes, got %d", len(key))
	}

	if err := c.k1.SetKey(k1); err != nil {
		return fmt.Errorf("tripledes: K1: %w", err)
	}
	if err := c.k2.SetKey(k2); err != nil {
		return fmt.Errorf("tripledes: K2: %w", err)
	}
	if err := c.k3.SetKey(k3); err != nil {
		return fmt.Errorf("tripledes: K3: %w", err)
	}
	return nil
}

func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	step1, err := c.k1.EncryptBlock(block)
	if err != nil {
		return nil, err
	}
	step2, err := c.k2.DecryptBlock(step1)
	if err != nil {
		return nil, err
	}
	return c.k3.EncryptBlock(step2)
}

func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	step1, err := c.k3.DecryptBlock(block)
	if err != nil {
		return nil, err
	}
	step2, err := c.k2.EncryptBlock(step1)
	if err != nil {
		return nil, err
	}
	return c.k1.DecryptBlock(step2)
}

// GenerateKey returns a random Triple-DES key. size must be 8, 16 or 24.
func GenerateKey(size int) ([]byte, error) {
	if size != 8 && size != 16 && size != 24 {
		return nil, fmt.Errorf("tripledes: key size must be 8, 16 or 24 bytes, got %d", size)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("tripledes: generating random key: %w", err)
	}
	return key, nil
}

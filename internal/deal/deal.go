// Package deal implements DEAL, a Feistel cipher over 16-byte blocks
// whose round function is single DES and whose key schedule derives
// round keys by repeatedly DES-encrypting, under a fixed expansion key,
// a running value seeded from the key material.
package deal

import (
	"crypto/rand"
	"fmt"

	"github.com/emppress/cryptography/internal/des"
	"github.com/emppress/cryptography/internal/feistel"
)

const BlockSize = 16

// expansionKey is the fixed DES key DEAL's schedule encrypts under; it
// is not secret, it is simply a fixed constant of the algorithm.
var expansionKey = []byte{0x12, 0x34, 0x56, 0x78, 0x90, 0xAB, 0xCD, 0xEF}

// roundFunction is DEAL's Feistel round function: single DES encryption
// of the 8-byte half under the current round key.
type roundFunction struct{}

func (roundFunction) Apply(half, roundKey []byte) ([]byte, error) {
	if len(half) != des.BlockSize {
		return nil, fmt.Errorf("deal: half-block must be %d bytes, got %d", des.BlockSize, len(half))
	}
	d := des.New()
	if err := d.SetKey(roundKey); err != nil {
		return nil, fmt.Errorf("deal: round key: %w", err)
	}
	return d.EncryptBlock(half)
}

// keyExpansion builds DEAL's round-key schedule. It never derives keys
// through feistel.KeyExpansion's normal ExpandKey path (DEAL's schedule
// needs to know the key length to choose 6 vs 8 rounds and to select
// the wraparound formula), so ExpandKey always errors; Cipher.SetKey
// calls scheduleRoundKeys directly instead.
type keyExpansion struct{}

func (keyExpansion) ExpandKey(key []byte) ([][]byte, error) {
	return nil, fmt.Errorf("deal: use scheduleRoundKeys, key length determines the schedule")
}

// scheduleRoundKeys runs DEAL's key schedule: a running 8-byte value,
// initially zero, is XORed each round with an 8-byte window of the user
// key (chosen by a wraparound index that depends on key length and,
// for the 192-bit case, changes modulus on the final round), then
// DES-encrypted under expansionKey; the encrypted result becomes both
// the round key and the running value carried into the next round.
func scheduleRoundKeys(key []byte) ([][]byte, int, error) {
	var numRounds int
	switch len(key) {
	case 16:
		numRounds = 6
	case 24, 32:
		numRounds = 8
	default:
		return nil, 0, fmt.Errorf("deal: key must be 16, 24 or 32 bytes, got %d", len(key))
	}

	expander := des.New()
	if err := expander.SetKey(expansionKey); err != nil {
		return nil, 0, fmt.Errorf("deal: setting up key expansion cipher: %w", err)
	}

	roundKeys := make([][]byte, numRounds)
	prev := make([]byte, 8)

	for i := 0; i < numRounds; i++ {
		for j := 0; j < 8; j++ {
			var modulus int
			switch len(key) {
			case 16:
				modulus = 16
			case 24:
				if i < numRounds-1 {
					modulus = 16
				} else {
					modulus = 24
				}
			case 32:
				modulus = 32
			}
			keyIdx := (i*8 + j) % modulus
			prev[j] ^= key[keyIdx]
		}

		enc, err := expander.EncryptBlock(prev)
		if err != nil {
			return nil, 0, fmt.Errorf("deal: round %d key expansion: %w", i, err)
		}
		prev = enc

		roundKeys[i] = append([]byte(nil), prev...)
	}

	return roundKeys, numRounds, nil
}

// Cipher is DEAL, built on the generic Feistel network over 16-byte
// blocks.
type Cipher struct {
	network *feistel.Network
}

// New constructs an unkeyed DEAL cipher.
func New() *Cipher {
	// Round count is fixed up by SetKey once the real key length is known.
	net, _ := feistel.New(keyExpansion{}, roundFunction{}, 6, BlockSize)
	return &Cipher{network: net}
}

func (c *Cipher) BlockSize() int { return BlockSize }

// SetKey accepts a 16-, 24- or 32-byte key and runs DEAL's key schedule.
func (c *Cipher) SetKey(key []byte) error {
	roundKeys, numRounds, err := scheduleRoundKeys(key)
	if err != nil {
		return err
	}
	if err := c.network.SetRounds(numRounds); err != nil {
		return fmt.Errorf("deal: %w", err)
	}
	return c.network.SetRoundKeys(roundKeys)
}

func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	return c.network.EncryptBlock(block)
}

func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	return c.network.DecryptBlock(block)
}

// GenerateKey returns a random DEAL key. size must be 16, 24 or 32.
func GenerateKey(size int) ([]byte, error) {
	if size != 16 && size != 24 && size != 32 {
		return nil, fmt.Errorf("deal: key size must be 16, 24 or 32 bytes, got %d", size)
	}
	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("deal: generating random key: %w", err)
	}
	return key, nil
}

// Package cipher defines the common shape every block cipher in this
// module presents to the mode-of-operation engine, and the
// constructors that build each concrete algorithm behind it.
package cipher

import (
	"fmt"

	"github.com/emppress/cryptography/idea"
	"github.com/emppress/cryptography/internal/deal"
	"github.com/emppress/cryptography/internal/des"
	"github.com/emppress/cryptography/internal/rijndael"
	"github.com/emppress/cryptography/internal/tripledes"
	"github.com/emppress/cryptography/rc6"
)

// SymmetricAlgorithm is the single-block encrypt/decrypt contract the
// mode engine (package mode) drives every cipher in this module
// through. Every concrete cipher (DES, Triple-DES, DEAL, Rijndael, RC6, IDEA)
// satisfies it directly, without a wrapper type.
type SymmetricAlgorithm interface {
	BlockSize() int
	SetKey(key []byte) error
	EncryptBlock(block []byte) ([]byte, error)
	DecryptBlock(block []byte) ([]byte, error)
}

// NewDES returns an unkeyed DES algorithm (8-byte blocks, 8-byte keys).
func NewDES() SymmetricAlgorithm {
	return des.New()
}

// NewTripleDES returns an unkeyed Triple-DES algorithm (8-byte blocks,
// 8/16/24-byte keys).
func NewTripleDES() SymmetricAlgorithm {
	return tripledes.New()
}

// NewDEAL returns an unkeyed DEAL algorithm (16-byte blocks, 16/24/32-byte keys).
func NewDEAL() SymmetricAlgorithm {
	return deal.New()
}

// NewRijndael returns an unkeyed Rijndael algorithm parameterized by
// block and key size, each of which must be 16, 24 or 32 bytes.
func NewRijndael(blockSize, keySize int) (SymmetricAlgorithm, error) {
	c, err := rijndael.New(blockSize, keySize)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	return c, nil
}

// NewRC6 returns an unkeyed RC6 algorithm parameterized by word size (in
// bits: 16, 32 or 64) and round count.
func NewRC6(wordBits, rounds int) (SymmetricAlgorithm, error) {
	c, err := rc6.New(wordBits, rounds)
	if err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	return c, nil
}

// NewIDEA returns an unkeyed IDEA algorithm (8-byte blocks, 16-byte keys).
func NewIDEA() SymmetricAlgorithm {
	return idea.New()
}

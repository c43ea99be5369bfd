// Package feistel implements a generic Feistel network, generalized
// over the round function and block size so it can drive both DES's
// 8-byte blocks and DEAL's 16-byte blocks.
package feistel

import "fmt"

// KeyExpansion turns a raw key into the ordered list of per-round keys
// a RoundFunction consumes.
type KeyExpansion interface {
	ExpandKey(key []byte) ([][]byte, error)
}

// RoundFunction computes F(halfBlock, roundKey) for one Feistel round.
// Its output must be the same length as halfBlock.
type RoundFunction interface {
	Apply(half, roundKey []byte) ([]byte, error)
}

// Network is a Feistel cipher parameterized by a key expansion, a round
// function and a round count. blockSize is fixed at construction so the
// same Network value can be reused for DES (8) or DEAL (16) alike.
type Network struct {
	keyExpansion  KeyExpansion
	roundFunction RoundFunction
	rounds        int
	blockSize     int
	roundKeys     [][]byte
}

// New builds a Feistel network over blockSize-byte blocks (which must be
// even and positive) with the given number of rounds.
func New(ke KeyExpansion, rf RoundFunction, rounds, blockSize int) (*Network, error) {
	if ke == nil || rf == nil {
		return nil, fmt.Errorf("feistel: key expansion and round function must not be nil")
	}
	if rounds <= 0 {
		return nil, fmt.Errorf("feistel: rounds must be positive, got %d", rounds)
	}
	if blockSize <= 0 || blockSize%2 != 0 {
		return nil, fmt.Errorf("feistel: block size must be even and positive, got %d", blockSize)
	}
	return &Network{
		keyExpansion:  ke,
		roundFunction: rf,
		rounds:        rounds,
		blockSize:     blockSize,
	}, nil
}

// BlockSize returns the fixed block size this network operates on.
func (n *Network) BlockSize() int {
	return n.blockSize
}

// SetRounds overrides the round count (DEAL uses 6 rounds for a 128-bit
// key and 8 for 192/256-bit keys).
func (n *Network) SetRounds(rounds int) error {
	if rounds <= 0 {
		return fmt.Errorf("feistel: rounds must be positive, got %d", rounds)
	}
	n.rounds = rounds
	return nil
}

// SetKey expands key into round keys via the configured KeyExpansion.
func (n *Network) SetKey(key []byte) error {
	roundKeys, err := n.keyExpansion.ExpandKey(key)
	if err != nil {
		return fmt.Errorf("feistel: expanding key: %w", err)
	}
	return n.SetRoundKeys(roundKeys)
}

// SetRoundKeys installs a precomputed round-key schedule directly,
// bypassing KeyExpansion. DEAL needs this since its schedule is driven
// by a DES encryption under a fixed expansion key, not by its own
// KeyExpansion.ExpandKey.
func (n *Network) SetRoundKeys(roundKeys [][]byte) error {
	if len(roundKeys) < n.rounds {
		return fmt.Errorf("feistel: need at least %d round keys, got %d", n.rounds, len(roundKeys))
	}
	n.roundKeys = roundKeys
	return nil
}

func (n *Network) checkReady(block []byte) error {
	if len(n.roundKeys) < n.rounds {
		return fmt.Errorf("feistel: round keys not set")
	}
	if len(block) == 0 || len(block)%2 != 0 {
		return fmt.Errorf("feistel: block length must be even and nonzero, got %d", len(block))
	}
	return nil
}

// EncryptBlock runs the standard 16(or N)-round Feistel construction
// forward: at each round the right half becomes the new left half, and
// the new right half is left XOR F(right, roundKey[i]).
func (n *Network) EncryptBlock(block []byte) ([]byte, error) {
	if err := n.checkReady(block); err != nil {
		return nil, err
	}
	half := len(block) / 2
	left := append([]byte(nil), block[:half]...)
	right := append([]byte(nil), block[half:]...)

	for i := 0; i < n.rounds; i++ {
		f, err := n.roundFunction.Apply(right, n.roundKeys[i])
		if err != nil {
			return nil, fmt.Errorf("feistel: round %d: %w", i, err)
		}
		newRight := make([]byte, half)
		for j := 0; j < half; j++ {
			newRight[j] = left[j] ^ f[j]
		}
		left, right = right, newRight
	}

	out := make([]byte, len(block))
	copy(out, right)
	copy(out[half:], left)
	return out, nil
}

// DecryptBlock reverses EncryptBlock by walking the round keys in
// reverse order. It shares EncryptBlock's exact loop shape (f =
// F(b, key), new = a xor f, (a, b) = (b, new)), starting from the same
// (first-half, second-half) split of its input and producing the same
// (b, a) concatenation on output; only the key order differs.
func (n *Network) DecryptBlock(block []byte) ([]byte, error) {
	if err := n.checkReady(block); err != nil {
		return nil, err
	}
	half := len(block) / 2
	a := append([]byte(nil), block[:half]...)
	b := append([]byte(nil), block[half:]...)

	for i := n.rounds - 1; i >= 0; i-- {
		f, err := n.roundFunction.Apply(b, n.roundKeys[i])
		if err != nil {
			return nil, fmt.Errorf("feistel: round %d: %w", i, err)
		}
		next := make([]byte, half)
		for j := 0; j < half; j++ {
			next[j] = a[j] ^ f[j]
		}
		a, b = b, next
	}

	out := make([]byte, len(block))
	copy(out, b)
	copy(out[half:], a)
	return out, nil
}

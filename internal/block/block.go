// Package block implements the block-level utilities shared by every
// mode of operation: padding/unpadding, splitting a byte slice into
// fixed-size blocks and back, and sampling random bytes for IVs and
// ISO 10126 filler.
package block

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// PaddingMode selects one of the four padding schemes the mode engine
// supports.
type PaddingMode int

const (
	Zeros PaddingMode = iota
	ANSIX923
	PKCS7
	ISO10126
)

func (m PaddingMode) String() string {
	switch m {
	case Zeros:
		return "Zeros"
	case ANSIX923:
		return "ANSI X.923"
	case PKCS7:
		return "PKCS7"
	case ISO10126:
		return "ISO 10126"
	default:
		return "unknown padding"
	}
}

var ErrInvalidPadding = errors.New("block: invalid padding")

// Pad appends between 1 and blockSize bytes to data so the result's
// length is a multiple of blockSize, even when len(data) is already a
// multiple of blockSize: a full extra block of padding is always
// added in that case, so Pad(data) is always strictly longer than data.
func Pad(data []byte, blockSize int, mode PaddingMode) ([]byte, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("block: invalid block size %d", blockSize)
	}

	padLen := blockSize - len(data)%blockSize
	if padLen == 0 {
		padLen = blockSize
	}

	out := make([]byte, len(data)+padLen)
	copy(out, data)
	filler := out[len(data):]

	switch mode {
	case Zeros:
		// filler is already zero-valued.
	case ANSIX923:
		filler[padLen-1] = byte(padLen)
	case PKCS7:
		for i := range filler {
			filler[i] = byte(padLen)
		}
	case ISO10126:
		if padLen > 1 {
			if _, err := rand.Read(filler[:padLen-1]); err != nil {
				return nil, fmt.Errorf("block: sampling ISO10126 filler: %w", err)
			}
		}
		filler[padLen-1] = byte(padLen)
	default:
		return nil, fmt.Errorf("block: unknown padding mode %v", mode)
	}

	return out, nil
}

// Unpad removes the padding Pad added, validating it where the scheme
// makes that possible. Zeros padding is inherently ambiguous for
// plaintexts that end in 0x00 bytes: Unpad simply strips all trailing
// zero bytes, by design, matching the scheme's documented limitation.
func Unpad(data []byte, blockSize int, mode PaddingMode) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of block size %d", ErrInvalidPadding, len(data), blockSize)
	}

	switch mode {
	case Zeros:
		i := len(data)
		for i > 0 && data[i-1] == 0 {
			i--
		}
		return data[:i], nil

	case ANSIX923:
		padLen := int(data[len(data)-1])
		if padLen == 0 || padLen > len(data) {
			return nil, ErrInvalidPadding
		}
		for _, b := range data[len(data)-padLen : len(data)-1] {
			if b != 0 {
				return nil, ErrInvalidPadding
			}
		}
		return data[:len(data)-padLen], nil

	case PKCS7:
		padLen := int(data[len(data)-1])
		if padLen == 0 || padLen > len(data) {
			return nil, ErrInvalidPadding
		}
		for _, b := range data[len(data)-padLen:] {
			if int(b) != padLen {
				return nil, ErrInvalidPadding
			}
		}
		return data[:len(data)-padLen], nil

	case ISO10126:
		padLen := int(data[len(data)-1])
		if padLen == 0 || padLen > len(data) {
			return nil, ErrInvalidPadding
		}
		return data[:len(data)-padLen], nil

	default:
		return nil, fmt.Errorf("block: unknown padding mode %v", mode)
	}
}

// Split breaks data, whose length must be a multiple of blockSize, into
// consecutive blockSize-byte blocks.
func Split(data []byte, blockSize int) ([][]byte, error) {
	if blockSize <= 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("block: length %d is not a multiple of block size %d", len(data), blockSize)
	}
	n := len(data) / blockSize
	blocks := make([][]byte, n)
	for i := 0; i < n; i++ {
		blocks[i] = data[i*blockSize : (i+1)*blockSize]
	}
	return blocks, nil
}

// Join concatenates blocks back into a single byte slice.
func Join(blocks [][]byte) []byte {
	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	out := make([]byte, 0, total)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// Random returns n cryptographically random bytes, used for IVs, seeds
// and RandomDelta state.
func Random(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("block: sampling random bytes: %w", err)
	}
	return buf, nil
}

// XOR writes a^b into dst, which must be at least as long as the
// shorter of a and b. It is the shared primitive every chaining mode
// uses to combine plaintext/ciphertext with keystream or feedback.
func XOR(dst, a, b []byte) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

package gf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aesModulus = 0x1B // x^8 + x^4 + x^3 + x + 1, minus the x^8 term

func TestAllIrreducibleHas30Entries(t *testing.T) {
	all := AllIrreducible()
	assert.Len(t, all, 30)
	assert.Contains(t, all, byte(aesModulus))
}

func TestMultiplyKnownVectors(t *testing.T) {
	// 0x57 * 0x83 = 0xC1 under AES's modulus, a textbook worked example.
	got, err := Multiply(0x57, 0x83, aesModulus)
	require.NoError(t, err)
	assert.Equal(t, byte(0xC1), got)
}

func TestMultiplyRejectsReducibleModulus(t *testing.T) {
	_, err := Multiply(1, 1, 0x01)
	assert.Error(t, err)
}

func TestInverseRoundTrip(t *testing.T) {
	for a := 1; a < 256; a++ {
		inv, err := Inverse(byte(a), aesModulus)
		require.NoError(t, err)
		prod, err := Multiply(byte(a), inv, aesModulus)
		require.NoError(t, err)
		assert.Equal(t, byte(1), prod, "a=0x%02x", a)
	}
}

func TestInverseOfZeroFails(t *testing.T) {
	_, err := Inverse(0, aesModulus)
	assert.Error(t, err)
}

func carrylessMultiply(a, b uint16) uint16 {
	var result uint16
	for b > 0 {
		if b&1 != 0 {
			result ^= a
		}
		a <<= 1
		b >>= 1
	}
	return result
}

func TestDivide(t *testing.T) {
	q, r, err := Divide(0b1011, 0b11)
	require.NoError(t, err)
	// quotient*divisor xor remainder must reconstruct the dividend.
	assert.Equal(t, uint16(0b1011), carrylessMultiply(q, 0b11)^r)
}

package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermuteIdentityLSB(t *testing.T) {
	data := []byte{0xAC} // 1010 1100
	table := []int{0, 1, 2, 3, 4, 5, 6, 7}
	out := Permute(data, table, LSBFirst, ZeroBased)
	assert.Equal(t, data, out)
}

func TestPermuteOneBasedMSB(t *testing.T) {
	// Selecting all 8 bits MSB-first, 1-based, should also be the identity.
	data := []byte{0x3C}
	table := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out := Permute(data, table, MSBFirst, OneBased)
	assert.Equal(t, data, out)
}

func TestPermuteExpandsShortTable(t *testing.T) {
	data := []byte{0xFF}
	table := []int{0, 0, 0}
	out := Permute(data, table, LSBFirst, ZeroBased)
	assert.Len(t, out, 1)
	assert.Equal(t, byte(0x07), out[0])
}

func TestRotateLeft28(t *testing.T) {
	assert.Equal(t, uint32(0x2), RotateLeft28(0x1, 1))
	// Rotating a full 28 bits is the identity.
	assert.Equal(t, uint32(0x0ABCDEF), RotateLeft28(0x0ABCDEF, 28))
	// Wraparound: the top bit comes back around to bit 0.
	top := uint32(1) << 27
	assert.Equal(t, uint32(1), RotateLeft28(top, 1))
}

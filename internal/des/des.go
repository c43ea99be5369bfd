// Package des implements the Data Encryption Standard as a feistel.Network
// instance: the classic IP/E/P/S-box/PC-1/PC-2 tables wrapped around the
// generic Feistel engine.
package des

import (
	"crypto/rand"
	"fmt"

	"github.com/emppress/cryptography/internal/bitops"
	"github.com/emppress/cryptography/internal/block"
	"github.com/emppress/cryptography/internal/feistel"
)

const (
	KeySize   = 8
	BlockSize = 8
	rounds    = 16
)

var initialPermutation = []int{
	58, 50, 42, 34, 26, 18, 10, 2,
	60, 52, 44, 36, 28, 20, 12, 4,
	62, 54, 46, 38, 30, 22, 14, 6,
	64, 56, 48, 40, 32, 24, 16, 8,
	57, 49, 41, 33, 25, 17, 9, 1,
	59, 51, 43, 35, 27, 19, 11, 3,
	61, 53, 45, 37, 29, 21, 13, 5,
	63, 55, 47, 39, 31, 23, 15, 7,
}

var finalPermutation = []int{
	40, 8, 48, 16, 56, 24, 64, 32,
	39, 7, 47, 15, 55, 23, 63, 31,
	38, 6, 46, 14, 54, 22, 62, 30,
	37, 5, 45, 13, 53, 21, 61, 29,
	36, 4, 44, 12, 52, 20, 60, 28,
	35, 3, 43, 11, 51, 19, 59, 27,
	34, 2, 42, 10, 50, 18, 58, 26,
	33, 1, 41, 9, 49, 17, 57, 25,
}

var expansionTable = []int{
	32, 1, 2, 3, 4, 5,
	4, 5, 6, 7, 8, 9,
	8, 9, 10, 11, 12, 13,
	12, 13, 14, 15, 16, 17,
	16, 17, 18, 19, 20, 21,
	20, 21, 22, 23, 24, 25,
	24, 25, 26, 27, 28, 29,
	28, 29, 30, 31, 32, 1,
}

var pBox = []int{
	16, 7, 20, 21, 29, 12, 28, 17,
	1, 15, 23, 26, 5, 18, 31, 10,
	2, 8, 24, 14, 32, 27, 3, 9,
	19, 13, 30, 6, 22, 11, 4, 25,
}

var sBoxes = [8][4][16]int{
	{
		{14, 4, 13, 1, 2, 15, 11, 8, 3, 10, 6, 12, 5, 9, 0, 7},
		{0, 15, 7, 4, 14, 2, 13, 1, 10, 6, 12, 11, 9, 5, 3, 8},
		{4, 1, 14, 8, 13, 6, 2, 11, 15, 12, 9, 7, 3, 10, 5, 0},
		{15, 12, 8, 2, 4, 9, 1, 7, 5, 11, 3, 14, 10, 0, 6, 13},
	},
	{
		{15, 1, 8, 14, 6, 11, 3, 4, 9, 7, 2, 13, 12, 0, 5, 10},
		{3, 13, 4, 7, 15, 2, 8, 14, 12, 0, 1, 10, 6, 9, 11, 5},
		{0, 14, 7, 11, 10, 4, 13, 1, 5, 8, 12, 6, 9, 3, 2, 15},
		{13, 8, 10, 1, 3, 15, 4, 2, 11, 6, 7, 12, 0, 5, 14, 9},
	},
	{
		{10, 0, 9, 14, 6, 3, 15, 5, 1, 13, 12, 7, 11, 4, 2, 8},
		{13, 7, 0, 9, 3, 4, 6, 10, 2, 8, 5, 14, 12, 11, 15, 1},
		{13, 6, 4, 9, 8, 15, 3, 0, 11, 1, 2, 12, 5, 10, 14, 7},
		{1, 10, 13, 0, 6, 9, 8, 7, 4, 15, 14, 3, 11, 5, 2, 12},
	},
	{
		{7, 13, 14, 3, 0, 6, 9, 10, 1, 2, 8, 5, 11, 12, 4, 15},
		{13, 8, 11, 5, 6, 15, 0, 3, 4, 7, 2, 12, 1, 10, 14, 9},
		{10, 6, 9, 0, 12, 11, 7, 13, 15, 1, 3, 14, 5, 2, 8, 4},
		{3, 15, 0, 6, 10, 1, 13, 8, 9, 4, 5, 11, 12, 7, 2, 14},
	},
	{
		{2, 12, 4, 1, 7, 10, 11, 6, 8, 5, 3, 15, 13, 0, 14, 9},
		{14, 11, 2, 12, 4, 7, 13, 1, 5, 0, 15, 10, 3, 9, 8, 6},
		{4, 2, 1, 11, 10, 13, 7, 8, 15, 9, 12, 5, 6, 3, 0, 14},
		{11, 8, 12, 7, 1, 14, 2, 13, 6, 15, 0, 9, 10, 4, 5, 3},
	},
	{
		{12, 1, 10, 15, 9, 2, 6, 8, 0, 13, 3, 4, 14, 7, 5, 11},
		{10, 15, 4, 2, 7, 12, 9, 5, 6, 1, 13, 14, 0, 11, 3, 8},
		{9, 14, 15, 5, 2, 8, 12, 3, 7, 0, 4, 10, 1, 13, 11, 6},
		{4, 3, 2, 12, 9, 5, 15, 10, 11, 14, 1, 7, 6, 0, 8, 13},
	},
	{
		{4, 11, 2, 14, 15, 0, 8, 13, 3, 12, 9, 7, 5, 10, 6, 1},
		{13, 0, 11, 7, 4, 9, 1, 10, 14, 3, 5, 12, 2, 15, 8, 6},
		{1, 4, 11, 13, 12, 3, 7, 14, 10, 15, 6, 8, 0, 5, 9, 2},
		{6, 11, 13, 8, 1, 4, 10, 7, 9, 5, 0, 15, 14, 2, 3, 12},
	},
	{
		{13, 2, 8, 4, 6, 15, 11, 1, 10, 9, 3, 14, 5, 0, 12, 7},
		{1, 15, 13, 8, 10, 3, 7, 4, 12, 5, 6, 11, 0, 14, 9, 2},
		{7, 11, 4, 1, 9, 12, 14, 2, 0, 6, 10, 13, 15, 3, 5, 8},
		{2, 1, 14, 7, 4, 10, 8, 13, 15, 12, 9, 0, 3, 5, 6, 11},
	},
}

var pc1 = []int{
	57, 49, 41, 33, 25, 17, 9,
	1, 58, 50, 42, 34, 26, 18,
	10, 2, 59, 51, 43, 35, 27,
	19, 11, 3, 60, 52, 44, 36,
	63, 55, 47, 39, 31, 23, 15,
	7, 62, 54, 46, 38, 30, 22,
	14, 6, 61, 53, 45, 37, 29,
	21, 13, 5, 28, 20, 12, 4,
}

var pc2 = []int{
	14, 17, 11, 24, 1, 5,
	3, 28, 15, 6, 21, 10,
	23, 19, 12, 4, 26, 8,
	16, 7, 27, 20, 13, 2,
	41, 52, 31, 37, 47, 55,
	30, 40, 51, 45, 33, 48,
	44, 49, 39, 56, 34, 53,
	46, 42, 50, 36, 29, 32,
}

var shiftTable = []int{1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1}

func permute(data []byte, table []int) []byte {
	return bitops.Permute(data, table, bitops.MSBFirst, bitops.OneBased)
}

// keyExpansion is DES's PC-1/shift/PC-2 round-key schedule.
type keyExpansion struct{}

func (keyExpansion) ExpandKey(key []byte) ([][]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("des: key must be %d bytes, got %d", KeySize, len(key))
	}

	pc1Out := permute(key, pc1) // 56 bits, filling exactly 7 bytes
	var bits [56]int
	for i := 0; i < 56; i++ {
		byteIdx, bitIdx := i/8, i%8
		bits[i] = int((pc1Out[byteIdx] >> uint(7-bitIdx)) & 1)
	}

	left := bitsToUint32(bits[:28])
	right := bitsToUint32(bits[28:])

	roundKeys := make([][]byte, rounds)
	for r := 0; r < rounds; r++ {
		shift := uint8(shiftTable[r])
		left = bitops.RotateLeft28(left, shift)
		right = bitops.RotateLeft28(right, shift)

		combined := make([]byte, 7)
		writeBits(combined, uint32ToBits(left, 28), 0)
		writeBits(combined, uint32ToBits(right, 28), 28)

		rk := permute(combined, pc2) // 48 bits -> 6 bytes
		roundKeys[r] = rk
	}
	return roundKeys, nil
}

func bitsToUint32(bits []int) uint32 {
	var result uint32
	for _, b := range bits {
		result = (result << 1) | uint32(b)
	}
	return result
}

func uint32ToBits(n uint32, count int) []int {
	bits := make([]int, count)
	for i := 0; i < count; i++ {
		bits[count-1-i] = int((n >> uint(i)) & 1)
	}
	return bits
}

func writeBits(dst []byte, bits []int, offset int) {
	for i, b := range bits {
		if b == 0 {
			continue
		}
		pos := offset + i
		dst[pos/8] |= 1 << uint(7-pos%8)
	}
}

// roundFunction is DES's Feistel F: expand, XOR with the round key,
// substitute through the eight S-boxes, permute.
type roundFunction struct{}

func (roundFunction) Apply(half, roundKey []byte) ([]byte, error) {
	if len(half) != 4 {
		return nil, fmt.Errorf("des: half-block must be 4 bytes, got %d", len(half))
	}
	if len(roundKey) != 6 {
		return nil, fmt.Errorf("des: round key must be 6 bytes, got %d", len(roundKey))
	}

	expanded := permute(half, expansionTable) // 48 bits -> 6 bytes
	xored := make([]byte, 6)
	block.XOR(xored, expanded, roundKey)

	sboxOut := make([]byte, 4)
	for i := 0; i < 8; i++ {
		sixBits := extractBits(xored, i*6, 6)
		row := ((sixBits & 0x20) >> 4) | (sixBits & 0x01)
		col := (sixBits >> 1) & 0x0F
		val := byte(sBoxes[i][row][col])
		writeNibble(sboxOut, i, val)
	}

	return permute(sboxOut, pBox), nil
}

// extractBits reads count (<=8) consecutive bits starting at bitOffset
// from data (MSB-first) and returns them right-aligned in a byte.
func extractBits(data []byte, bitOffset, count int) byte {
	var v byte
	for i := 0; i < count; i++ {
		pos := bitOffset + i
		bit := (data[pos/8] >> uint(7-pos%8)) & 1
		v = (v << 1) | bit
	}
	return v
}

func writeNibble(dst []byte, index int, val byte) {
	if index%2 == 0 {
		dst[index/2] |= val << 4
	} else {
		dst[index/2] |= val
	}
}

// Cipher is the DES block cipher: initial/final permutation wrapped
// around a 16-round Feistel network.
type Cipher struct {
	network *feistel.Network
}

// New constructs an unkeyed DES cipher.
func New() *Cipher {
	net, _ := feistel.New(keyExpansion{}, roundFunction{}, rounds, BlockSize)
	return &Cipher{network: net}
}

func (c *Cipher) BlockSize() int { return BlockSize }

// SetKey expands an 8-byte key into DES's 16 round keys.
func (c *Cipher) SetKey(key []byte) error {
	return c.network.SetKey(key)
}

func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("des: block must be %d bytes, got %d", BlockSize, len(block))
	}
	afterIP := permute(block, initialPermutation)
	afterFeistel, err := c.network.EncryptBlock(afterIP)
	if err != nil {
		return nil, err
	}
	return permute(afterFeistel, finalPermutation), nil
}

func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, fmt.Errorf("des: block must be %d bytes, got %d", BlockSize, len(block))
	}
	afterIP := permute(block, initialPermutation)
	afterFeistel, err := c.network.DecryptBlock(afterIP)
	if err != nil {
		return nil, err
	}
	return permute(afterFeistel, finalPermutation), nil
}

// GenerateKey returns a random 8-byte DES key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("des: generating random key: %w", err)
	}
	return key, nil
}

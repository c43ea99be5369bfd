// Package rijndael implements the parameterized Rijndael cipher: block
// and key sizes of 16, 24 or 32 bytes in any combination, with an
// S-box synthesized from GF(2^8) inversion plus the standard affine
// transform rather than a baked-in lookup table.
package rijndael

import (
	"crypto/rand"
	"fmt"

	"github.com/emppress/cryptography/internal/gf"
)

// modulus is the field polynomial x^8+x^4+x^3+x+1 (minus its x^8 term),
// the one Rijndael itself specifies.
const modulus = 0x1B

var validSizes = map[int]bool{16: true, 24: true, 32: true}

// roundsTable returns Nr for a given (blockSize, keySize) pair, in
// bytes. It is the standard max(Nb,Nk)+6 rule, tabulated here because
// it reads more clearly laid out explicitly than recomputed inline
// each time.
var roundsTable = map[[2]int]int{
	{16, 16}: 10, {16, 24}: 12, {16, 32}: 14,
	{24, 16}: 12, {24, 24}: 12, {24, 32}: 14,
	{32, 16}: 14, {32, 24}: 14, {32, 32}: 14,
}

// shiftRowsTable gives the left-rotation amount applied to state rows 1,
// 2 and 3 for a given Nb (columns = blockSize/4). Nb=4 and Nb=6 use the
// fixed AES-128 shifts (1,2,3); Nb=8 keeps the original Rijndael
// submission's shifts (1,3,4) rather than the later AES-only table,
// a deliberate deviation from modern fixed-128-bit AES.
var shiftRowsTable = map[int][3]int{
	4: {1, 2, 3},
	6: {1, 2, 3},
	8: {1, 3, 4},
}

func rotl8(b byte, shift uint) byte {
	shift %= 8
	if shift == 0 {
		return b
	}
	return (b >> (8 - shift)) | (b << shift)
}

// Cipher is a Rijndael instance fixed to one (blockSize, keySize) pair.
type Cipher struct {
	blockSize, keySize int
	nb, nk, nr         int
	sBox, invSBox      [256]byte
	roundKeys          []byte // nr+1 concatenated blockSize-byte round keys
}

// New constructs an unkeyed cipher for the given block and key sizes,
// each of which must be 16, 24 or 32 bytes.
func New(blockSize, keySize int) (*Cipher, error) {
	if !validSizes[blockSize] {
		return nil, fmt.Errorf("rijndael: block size must be 16, 24 or 32 bytes, got %d", blockSize)
	}
	if !validSizes[keySize] {
		return nil, fmt.Errorf("rijndael: key size must be 16, 24 or 32 bytes, got %d", keySize)
	}

	c := &Cipher{
		blockSize: blockSize,
		keySize:   keySize,
		nb:        blockSize / 4,
		nk:        keySize / 4,
		nr:        roundsTable[[2]int{blockSize, keySize}],
	}
	c.initSBoxes()
	return c, nil
}

func (c *Cipher) BlockSize() int { return c.blockSize }

func (c *Cipher) initSBoxes() {
	for b := 0; b < 256; b++ {
		var inv byte
		if b != 0 {
			v, _ := gf.Inverse(byte(b), modulus)
			inv = v
		}
		c.sBox[b] = inv ^ rotl8(inv, 1) ^ rotl8(inv, 2) ^ rotl8(inv, 3) ^ rotl8(inv, 4) ^ 0x63
	}
	for b := 0; b < 256; b++ {
		res := rotl8(byte(b), 1) ^ rotl8(byte(b), 3) ^ rotl8(byte(b), 6) ^ 0x05
		if res == 0 {
			c.invSBox[b] = 0
			continue
		}
		inv, _ := gf.Inverse(res, modulus)
		c.invSBox[b] = inv
	}
}

func subWord(sBox *[256]byte, word []byte) {
	for i := range word {
		word[i] = sBox[word[i]]
	}
}

func rotWord(word []byte) {
	word[0], word[1], word[2], word[3] = word[1], word[2], word[3], word[0]
}

// SetKey runs Rijndael's key schedule over a key of exactly the size
// this Cipher was constructed with.
func (c *Cipher) SetKey(key []byte) error {
	if len(key) != c.keySize {
		return fmt.Errorf("rijndael: key must be %d bytes, got %d", c.keySize, len(key))
	}

	wordsCount := c.nb * (c.nr + 1)
	words := make([][]byte, wordsCount)
	for i := 0; i < c.nk; i++ {
		words[i] = append([]byte(nil), key[i*4:i*4+4]...)
	}

	rcon := byte(1)
	for i := c.nk; i < wordsCount; i++ {
		temp := append([]byte(nil), words[i-1]...)
		switch {
		case i%c.nk == 0:
			rotWord(temp)
			subWord(&c.sBox, temp)
			temp[0] ^= rcon
			rcon, _ = gf.Multiply(rcon, 0x02, modulus)
		case c.nk > 6 && i%c.nk == 4:
			subWord(&c.sBox, temp)
		}

		word := make([]byte, 4)
		for j := 0; j < 4; j++ {
			word[j] = words[i-c.nk][j] ^ temp[j]
		}
		words[i] = word
	}

	roundKeys := make([]byte, c.blockSize*(c.nr+1))
	for i, w := range words {
		copy(roundKeys[i*4:i*4+4], w)
	}
	c.roundKeys = roundKeys
	return nil
}

func (c *Cipher) roundKey(round int) []byte {
	return c.roundKeys[round*c.blockSize : (round+1)*c.blockSize]
}

func addRoundKey(state, roundKey []byte) {
	for i := range state {
		state[i] ^= roundKey[i]
	}
}

func (c *Cipher) subBytes(state []byte) {
	for i := range state {
		state[i] = c.sBox[state[i]]
	}
}

func (c *Cipher) invSubBytes(state []byte) {
	for i := range state {
		state[i] = c.invSBox[state[i]]
	}
}

func (c *Cipher) shiftRows(state []byte) {
	shifts := shiftRowsTable[c.nb]
	for row := 1; row <= 3; row++ {
		shift := shifts[row-1]
		rowBytes := make([]byte, c.nb)
		for col := 0; col < c.nb; col++ {
			rowBytes[col] = state[row+4*col]
		}
		rotated := make([]byte, c.nb)
		for col := 0; col < c.nb; col++ {
			rotated[col] = rowBytes[(col+shift)%c.nb]
		}
		for col := 0; col < c.nb; col++ {
			state[row+4*col] = rotated[col]
		}
	}
}

func (c *Cipher) invShiftRows(state []byte) {
	shifts := shiftRowsTable[c.nb]
	for row := 1; row <= 3; row++ {
		shift := shifts[row-1]
		rowBytes := make([]byte, c.nb)
		for col := 0; col < c.nb; col++ {
			rowBytes[col] = state[row+4*col]
		}
		rotated := make([]byte, c.nb)
		for col := 0; col < c.nb; col++ {
			rotated[(col+shift)%c.nb] = rowBytes[col]
		}
		for col := 0; col < c.nb; col++ {
			state[row+4*col] = rotated[col]
		}
	}
}

func gmul(a, b byte) byte {
	v, _ := gf.Multiply(a, b, modulus)
	return v
}

func (c *Cipher) mixColumns(state []byte) {
	for col := 0; col < c.nb; col++ {
		i := col * 4
		a0, a1, a2, a3 := state[i], state[i+1], state[i+2], state[i+3]
		state[i] = gmul(a0, 2) ^ gmul(a1, 3) ^ a2 ^ a3
		state[i+1] = a0 ^ gmul(a1, 2) ^ gmul(a2, 3) ^ a3
		state[i+2] = a0 ^ a1 ^ gmul(a2, 2) ^ gmul(a3, 3)
		state[i+3] = gmul(a0, 3) ^ a1 ^ a2 ^ gmul(a3, 2)
	}
}

func (c *Cipher) invMixColumns(state []byte) {
	for col := 0; col < c.nb; col++ {
		i := col * 4
		a0, a1, a2, a3 := state[i], state[i+1], state[i+2], state[i+3]
		state[i] = gmul(a0, 0x0E) ^ gmul(a1, 0x0B) ^ gmul(a2, 0x0D) ^ gmul(a3, 0x09)
		state[i+1] = gmul(a0, 0x09) ^ gmul(a1, 0x0E) ^ gmul(a2, 0x0B) ^ gmul(a3, 0x0D)
		state[i+2] = gmul(a0, 0x0D) ^ gmul(a1, 0x09) ^ gmul(a2, 0x0E) ^ gmul(a3, 0x0B)
		state[i+3] = gmul(a0, 0x0B) ^ gmul(a1, 0x0D) ^ gmul(a2, 0x09) ^ gmul(a3, 0x0E)
	}
}

func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != c.blockSize {
		return nil, fmt.Errorf("rijndael: block must be %d bytes, got %d", c.blockSize, len(block))
	}
	if c.roundKeys == nil {
		return nil, fmt.Errorf("rijndael: key not set")
	}

	state := append([]byte(nil), block...)
	addRoundKey(state, c.roundKey(0))
	for round := 1; round < c.nr; round++ {
		c.subBytes(state)
		c.shiftRows(state)
		c.mixColumns(state)
		addRoundKey(state, c.roundKey(round))
	}
	c.subBytes(state)
	c.shiftRows(state)
	addRoundKey(state, c.roundKey(c.nr))
	return state, nil
}

func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != c.blockSize {
		return nil, fmt.Errorf("rijndael: block must be %d bytes, got %d", c.blockSize, len(block))
	}
	if c.roundKeys == nil {
		return nil, fmt.Errorf("rijndael: key not set")
	}

	state := append([]byte(nil), block...)
	addRoundKey(state, c.roundKey(c.nr))
	for round := c.nr - 1; round >= 1; round-- {
		c.invShiftRows(state)
		c.invSubBytes(state)
		addRoundKey(state, c.roundKey(round))
		c.invMixColumns(state)
	}
	c.invShiftRows(state)
	c.invSubBytes(state)
	addRoundKey(state, c.roundKey(0))
	return state, nil
}

// GenerateKey returns a random key of the cipher's configured key size.
func (c *Cipher) GenerateKey() ([]byte, error) {
	key := make([]byte, c.keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("rijndael: generating random key: %w", err)
	}
	return key, nil
}

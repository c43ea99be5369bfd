package mode

import "math/big"

// addCounter returns a copy of base with delta added, as an unsigned
// big-endian integer, into its low n bytes only; any carry out of those
// n bytes is discarded rather than propagating into the high bytes. CTR
// keeps its counter in the low 8 bytes of the block, so n is
// min(8, len(base)).
func addCounter(base []byte, n int, delta uint64) []byte {
	out := append([]byte(nil), base...)
	lo := out[len(out)-n:]
	cur := new(big.Int).SetBytes(lo)
	cur.Add(cur, new(big.Int).SetUint64(delta))
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n*8))
	cur.Mod(cur, mod)
	b := cur.Bytes()
	for i := range lo {
		lo[i] = 0
	}
	copy(lo[n-len(b):], b)
	return out
}

// addLowHalfDelta returns a block equal to iv except its low half,
// which becomes (low-half-of-iv + i*delta) mod 2^(8*len(delta)), with
// no carry into the high half. This is RandomDelta's per-block register
// advance, IV plus i times delta.
func addLowHalfDelta(iv, delta []byte, i int64) []byte {
	half := len(delta)
	out := append([]byte(nil), iv...)
	lo := out[len(out)-half:]

	cur := new(big.Int).SetBytes(lo)
	step := new(big.Int).SetBytes(delta)
	step.Mul(step, big.NewInt(i))
	cur.Add(cur, step)
	mod := new(big.Int).Lsh(big.NewInt(1), uint(half*8))
	cur.Mod(cur, mod)

	b := cur.Bytes()
	for j := range lo {
		lo[j] = 0
	}
	copy(lo[half-len(b):], b)
	return out
}

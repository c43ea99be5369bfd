package mode

import (
	"fmt"

	"github.com/emppress/cryptography/internal/block"
)

// encryptBuffer pads data (unless raw, used by the file streamer for
// full, already block-aligned chunks), splits it into blocks, runs the
// configured mode forward and joins the result.
func (e *Engine) encryptBuffer(data []byte, pad bool) ([]byte, error) {
	var padded []byte
	var err error
	if pad {
		padded, err = block.Pad(data, e.bs, e.padding)
		if err != nil {
			return nil, err
		}
	} else {
		if len(data)%e.bs != 0 {
			return nil, fmt.Errorf("mode: chunk length %d is not a multiple of block size %d", len(data), e.bs)
		}
		padded = data
	}

	switch {
	case e.mode.isParallelEncrypt():
		return e.parallelEncrypt(padded)
	default:
		return e.sequentialEncrypt(padded)
	}
}

// decryptBuffer runs the configured mode backward over data (which must
// already be block-aligned) and, unless raw, strips padding from the
// result.
func (e *Engine) decryptBuffer(data []byte, unpad bool) ([]byte, error) {
	if len(data)%e.bs != 0 {
		return nil, fmt.Errorf("mode: ciphertext length %d is not a multiple of block size %d", len(data), e.bs)
	}

	var out []byte
	var err error
	if e.mode.isParallelDecrypt() {
		out, err = e.parallelDecrypt(data)
	} else {
		out, err = e.sequentialDecrypt(data)
	}
	if err != nil {
		return nil, err
	}
	if unpad {
		return block.Unpad(out, e.bs, e.padding)
	}
	return out, nil
}

// sequentialEncrypt threads chaining state through CBC, PCBC, CFB and
// OFB, the four modes whose output at block i is a function of state
// only that direction's own output chain can produce.
func (e *Engine) sequentialEncrypt(padded []byte) ([]byte, error) {
	n := len(padded) / e.bs
	out := make([]byte, len(padded))

	switch e.mode {
	case CBC:
		x := append([]byte(nil), e.iv...)
		for i := 0; i < n; i++ {
			p := padded[i*e.bs : (i+1)*e.bs]
			mixed := make([]byte, e.bs)
			block.XOR(mixed, p, x)
			c, err := e.algo.EncryptBlock(mixed)
			if err != nil {
				return nil, err
			}
			copy(out[i*e.bs:(i+1)*e.bs], c)
			x = c
		}
		e.iv = x

	case PCBC:
		m := e.prevPlain
		if m == nil {
			m = append([]byte(nil), e.iv...)
		}
		c := append([]byte(nil), e.iv...)
		for i := 0; i < n; i++ {
			p := padded[i*e.bs : (i+1)*e.bs]
			feedback := make([]byte, e.bs)
			block.XOR(feedback, m, c)
			mixed := make([]byte, e.bs)
			block.XOR(mixed, p, feedback)
			enc, err := e.algo.EncryptBlock(mixed)
			if err != nil {
				return nil, err
			}
			copy(out[i*e.bs:(i+1)*e.bs], enc)
			m = append([]byte(nil), p...)
			c = enc
		}
		e.iv = c
		e.prevPlain = m

	case CFB:
		x := append([]byte(nil), e.iv...)
		for i := 0; i < n; i++ {
			p := padded[i*e.bs : (i+1)*e.bs]
			encX, err := e.algo.EncryptBlock(x)
			if err != nil {
				return nil, err
			}
			c := make([]byte, e.bs)
			block.XOR(c, p, encX)
			copy(out[i*e.bs:(i+1)*e.bs], c)
			x = c
		}
		e.iv = x

	case OFB:
		o := append([]byte(nil), e.iv...)
		for i := 0; i < n; i++ {
			p := padded[i*e.bs : (i+1)*e.bs]
			var err error
			o, err = e.algo.EncryptBlock(o)
			if err != nil {
				return nil, err
			}
			c := make([]byte, e.bs)
			block.XOR(c, p, o)
			copy(out[i*e.bs:(i+1)*e.bs], c)
		}
		e.iv = o

	default:
		return nil, fmt.Errorf("mode: %v has no sequential encrypt path", e.mode)
	}

	return out, nil
}

// sequentialDecrypt mirrors sequentialEncrypt for PCBC and OFB, the two
// chains whose decrypt direction still needs the previous plaintext (or
// keystream) to recover the next block and so cannot be parallelised
// either.
func (e *Engine) sequentialDecrypt(data []byte) ([]byte, error) {
	n := len(data) / e.bs
	out := make([]byte, len(data))

	switch e.mode {
	case PCBC:
		m := e.prevPlain
		if m == nil {
			m = append([]byte(nil), e.iv...)
		}
		c := append([]byte(nil), e.iv...)
		for i := 0; i < n; i++ {
			ct := data[i*e.bs : (i+1)*e.bs]
			dec, err := e.algo.DecryptBlock(ct)
			if err != nil {
				return nil, err
			}
			feedback := make([]byte, e.bs)
			block.XOR(feedback, m, c)
			p := make([]byte, e.bs)
			block.XOR(p, dec, feedback)
			copy(out[i*e.bs:(i+1)*e.bs], p)
			m = p
			c = append([]byte(nil), ct...)
		}
		e.iv = c
		e.prevPlain = m

	case OFB:
		o := append([]byte(nil), e.iv...)
		for i := 0; i < n; i++ {
			ct := data[i*e.bs : (i+1)*e.bs]
			var err error
			o, err = e.algo.EncryptBlock(o)
			if err != nil {
				return nil, err
			}
			p := make([]byte, e.bs)
			block.XOR(p, ct, o)
			copy(out[i*e.bs:(i+1)*e.bs], p)
		}
		e.iv = o

	default:
		return nil, fmt.Errorf("mode: %v has no sequential decrypt path", e.mode)
	}

	return out, nil
}

// parallelEncrypt covers ECB, CTR and RandomDelta forward: each is a
// pure function of the block index (and, for RandomDelta, the IV it
// samples once up front), so every block can be produced by an
// independent worker.
func (e *Engine) parallelEncrypt(padded []byte) ([]byte, error) {
	switch e.mode {
	case ECB:
		return runParallel(padded, e.bs, func(i int, in []byte) ([]byte, error) {
			return e.algo.EncryptBlock(in[i*e.bs : (i+1)*e.bs])
		})

	case CTR:
		ctrLen := e.bs
		if ctrLen > 8 {
			ctrLen = 8
		}
		base := e.iv
		n := len(padded) / e.bs
		out, err := runParallel(padded, e.bs, func(i int, in []byte) ([]byte, error) {
			ctr := addCounter(base, ctrLen, uint64(i))
			ks, err := e.algo.EncryptBlock(ctr)
			if err != nil {
				return nil, err
			}
			c := make([]byte, e.bs)
			block.XOR(c, in[i*e.bs:(i+1)*e.bs], ks)
			return c, nil
		})
		if err != nil {
			return nil, err
		}
		e.iv = addCounter(base, ctrLen, uint64(n))
		return out, nil

	case RandomDelta:
		return e.parallelEncryptRandomDelta(padded)

	default:
		return nil, fmt.Errorf("mode: %v has no parallel encrypt path", e.mode)
	}
}

// parallelDecrypt covers ECB, CBC, CFB, CTR and RandomDelta backward:
// all five need only the ciphertext stream itself (plus a computable
// counter/delta) to reconstruct any given plaintext block, regardless
// of what happens to the other blocks.
func (e *Engine) parallelDecrypt(data []byte) ([]byte, error) {
	switch e.mode {
	case ECB:
		out, err := runParallel(data, e.bs, func(i int, in []byte) ([]byte, error) {
			return e.algo.DecryptBlock(in[i*e.bs : (i+1)*e.bs])
		})
		return out, err

	case CBC:
		iv := e.iv
		n := len(data) / e.bs
		out, err := runParallel(data, e.bs, func(i int, in []byte) ([]byte, error) {
			ct := in[i*e.bs : (i+1)*e.bs]
			dec, err := e.algo.DecryptBlock(ct)
			if err != nil {
				return nil, err
			}
			var x []byte
			if i == 0 {
				x = iv
			} else {
				x = in[(i-1)*e.bs : i*e.bs]
			}
			p := make([]byte, e.bs)
			block.XOR(p, dec, x)
			return p, nil
		})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			e.iv = append([]byte(nil), data[(n-1)*e.bs:n*e.bs]...)
		}
		return out, nil

	case CFB:
		iv := e.iv
		n := len(data) / e.bs
		out, err := runParallel(data, e.bs, func(i int, in []byte) ([]byte, error) {
			var x []byte
			if i == 0 {
				x = iv
			} else {
				x = in[(i-1)*e.bs : i*e.bs]
			}
			encX, err := e.algo.EncryptBlock(x)
			if err != nil {
				return nil, err
			}
			ct := in[i*e.bs : (i+1)*e.bs]
			p := make([]byte, e.bs)
			block.XOR(p, ct, encX)
			return p, nil
		})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			e.iv = append([]byte(nil), data[(n-1)*e.bs:n*e.bs]...)
		}
		return out, nil

	case CTR:
		ctrLen := e.bs
		if ctrLen > 8 {
			ctrLen = 8
		}
		base := e.iv
		n := len(data) / e.bs
		out, err := runParallel(data, e.bs, func(i int, in []byte) ([]byte, error) {
			ctr := addCounter(base, ctrLen, uint64(i))
			ks, err := e.algo.EncryptBlock(ctr)
			if err != nil {
				return nil, err
			}
			p := make([]byte, e.bs)
			block.XOR(p, in[i*e.bs:(i+1)*e.bs], ks)
			return p, nil
		})
		if err != nil {
			return nil, err
		}
		e.iv = addCounter(base, ctrLen, uint64(n))
		return out, nil

	case RandomDelta:
		return e.parallelDecryptRandomDelta(data)

	default:
		return nil, fmt.Errorf("mode: %v has no parallel decrypt path", e.mode)
	}
}

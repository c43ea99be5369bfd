// Package mode implements the block-mode-of-operation engine that
// drives any cipher.SymmetricAlgorithm
// (DES, Triple-DES, DEAL, Rijndael, RC6, IDEA, ...) over arbitrary-length
// byte streams and files. It owns padding, block splitting/joining,
// per-mode chaining state, file streaming and the internal parallelism
// that the sequential modes cannot offer but ECB/CTR/RandomDelta/most
// decrypt directions can.
package mode

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emppress/cryptography/cipher"
	"github.com/emppress/cryptography/internal/block"
)

// CipherMode selects one of the seven modes of operation this engine
// drives. The zero value is ECB.
type CipherMode int

const (
	ECB CipherMode = iota
	CBC
	PCBC
	CFB
	OFB
	CTR
	RandomDelta
)

func (m CipherMode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case PCBC:
		return "PCBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	case CTR:
		return "CTR"
	case RandomDelta:
		return "RandomDelta"
	default:
		return "unknown mode"
	}
}

// needsIV reports whether m requires a block-size IV at construction.
// ECB never chains and RandomDelta samples its own IV on first use.
func (m CipherMode) needsIV() bool {
	switch m {
	case CBC, PCBC, CFB, OFB, CTR:
		return true
	default:
		return false
	}
}

var (
	// ErrMissingAlgorithm is returned by New when algo is nil.
	ErrMissingAlgorithm = errors.New("mode: algorithm must not be nil")
	// ErrInvalidIVLength is returned by New when the selected mode
	// requires an IV of exactly algo.BlockSize() bytes and a
	// different-length one was supplied.
	ErrInvalidIVLength = errors.New("mode: IV length must equal the algorithm's block size")
	// ErrEmptyInput is returned by Encrypt/Decrypt/EncryptFile/DecryptFile
	// when called with zero bytes of input.
	ErrEmptyInput = errors.New("mode: input must not be empty")
)

// WorkerError wraps the first error captured from a parallel worker
// range, after every worker has been joined.
type WorkerError struct {
	Range [2]int // [start, end) block index range of the failing worker
	Err   error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("mode: worker for blocks [%d,%d): %v", e.Range[0], e.Range[1], e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// MinBlocksPerWorker is the minimum number of blocks a parallel worker
// is given before the engine spins up another one; see runParallel in
// parallel.go. Exported so callers tuning throughput on huge inputs can
// read it, though the engine does not expose a setter: a single
// tunable constant is enough for one knob, no configuration struct
// needed.
const MinBlocksPerWorker = 10

// Engine is the mode-of-operation handle: an algorithm plus a mode, a
// padding scheme, and the mutable chaining state those two modes carry
// across successive Encrypt/Decrypt calls. It is safe for concurrent
// use: calls serialise on mu because the chaining state is single-owner
// and must not be read or written by two calls at once.
type Engine struct {
	mu      sync.Mutex
	algo    cipher.SymmetricAlgorithm
	mode    CipherMode
	padding block.PaddingMode
	bs      int

	// iv is the live feedback/counter register, mutated after every
	// Encrypt/Decrypt call so the next call continues the chain.
	iv []byte

	// prevPlain is PCBC's other half of chaining state: M_{i-1}, the
	// last plaintext block produced (decrypt) or consumed (encrypt).
	prevPlain []byte

	// RandomDelta-only state: rdDelta is the low half of the sampled IV,
	// rdIV is the full sampled IV, rdStart marks whether the first call
	// has already produced them, and rdNextIx is the index of the next
	// block. All are nil/false/zero until the first Encrypt or Decrypt
	// on this engine.
	rdDelta  []byte
	rdIV     []byte
	rdStart  bool
	rdNextIx int64
}

// New constructs a mode engine over algo (which must already be keyed),
// using cipherMode with paddingMode as its padding scheme. iv is
// required (and must be exactly algo.BlockSize() bytes) for every mode
// except ECB and RandomDelta; pass nil for those two.
func New(algo cipher.SymmetricAlgorithm, cipherMode CipherMode, paddingMode block.PaddingMode, iv []byte) (*Engine, error) {
	if algo == nil {
		return nil, ErrMissingAlgorithm
	}
	bs := algo.BlockSize()
	if cipherMode.needsIV() {
		if len(iv) != bs {
			return nil, ErrInvalidIVLength
		}
	} else if iv != nil && len(iv) != bs {
		return nil, ErrInvalidIVLength
	}

	e := &Engine{
		algo:    algo,
		mode:    cipherMode,
		padding: paddingMode,
		bs:      bs,
	}
	if iv != nil {
		e.iv = append([]byte(nil), iv...)
	} else {
		e.iv = make([]byte, bs)
	}
	return e, nil
}

// isParallelEncrypt reports whether m's encrypt direction may be
// computed with independent per-block workers.
func (m CipherMode) isParallelEncrypt() bool {
	switch m {
	case ECB, CTR, RandomDelta:
		return true
	default:
		return false
	}
}

// isParallelDecrypt reports whether m's decrypt direction may be
// computed with independent per-block workers. CBC, CFB and RandomDelta
// decrypt only need the ciphertext stream itself (block i-1, already in
// hand) to recover block i, unlike their encrypt directions.
func (m CipherMode) isParallelDecrypt() bool {
	switch m {
	case ECB, CBC, CFB, CTR, RandomDelta:
		return true
	default:
		return false
	}
}

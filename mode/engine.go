package mode

// Encrypt pads data, applies the configured mode and returns a Future
// that completes with the ciphertext. Concurrent calls on the same
// engine serialise on the engine's internal mutex, since mode state
// (the IV/feedback register, RandomDelta's delta, CTR's counter) has a
// single owner and must not be read or written by two calls at once.
func (e *Engine) Encrypt(data []byte) *Future[[]byte] {
	return newFuture(func() ([]byte, error) {
		if len(data) == 0 {
			return nil, ErrEmptyInput
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.encryptBuffer(data, true)
	})
}

// Decrypt applies the configured mode in reverse and strips padding,
// returning a Future that completes with the plaintext.
func (e *Engine) Decrypt(data []byte) *Future[[]byte] {
	return newFuture(func() ([]byte, error) {
		if len(data) == 0 {
			return nil, ErrEmptyInput
		}
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.decryptBuffer(data, true)
	})
}

// BlockSize returns the block size of the algorithm this engine drives.
func (e *Engine) BlockSize() int { return e.bs }

// Mode returns the cipher mode this engine was constructed with.
func (e *Engine) Mode() CipherMode { return e.mode }

package mode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ChunkBlocks is the number of blocks EncryptFile/DecryptFile read per
// chunk while streaming a file: full chunks are processed without
// padding, and only the final, possibly short, chunk is padded.
const ChunkBlocks = 1024

// ErrMissingOutputPath is returned by DecryptFile when outPath is
// empty. Unlike EncryptFile, DecryptFile does not default to replacing
// the input's extension with ".encrypted": reusing that default for
// decrypt would produce a nonsensical output name, so this
// implementation makes the omission an explicit error instead.
var ErrMissingOutputPath = errors.New("mode: DecryptFile requires an explicit output path")

// EncryptFile streams inPath through Encrypt's chunked equivalent and
// writes the result to outPath, defaulting outPath to inPath with its
// extension replaced by ".encrypted" when outPath is empty.
func (e *Engine) EncryptFile(inPath, outPath string) *Future[string] {
	return newFuture(func() (string, error) {
		if outPath == "" {
			outPath = defaultEncryptedPath(inPath)
		}
		if err := e.streamFile(inPath, outPath, true); err != nil {
			return "", err
		}
		return outPath, nil
	})
}

// DecryptFile streams inPath through Decrypt's chunked equivalent and
// writes the result to outPath, which must be supplied explicitly.
func (e *Engine) DecryptFile(inPath, outPath string) *Future[string] {
	return newFuture(func() (string, error) {
		if outPath == "" {
			return "", ErrMissingOutputPath
		}
		if err := e.streamFile(inPath, outPath, false); err != nil {
			return "", err
		}
		return outPath, nil
	})
}

func defaultEncryptedPath(inPath string) string {
	ext := filepath.Ext(inPath)
	return strings.TrimSuffix(inPath, ext) + ".encrypted"
}

// streamFile drives the chunked encrypt/decrypt loop shared by
// EncryptFile and DecryptFile. It keeps one chunk buffered ahead of
// what it writes so it can tell, without seeking, whether the chunk it
// is about to process is the file's last one: only the last chunk is
// padded on encrypt or unpadded on decrypt.
func (e *Engine) streamFile(inPath, outPath string, encrypting bool) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("mode: opening input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("mode: creating output file: %w", err)
	}
	defer out.Close()

	chunkSize := e.bs * ChunkBlocks

	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := readChunk(in, chunkSize)
	if err != nil {
		return fmt.Errorf("mode: reading input file: %w", err)
	}
	if next == nil {
		return ErrEmptyInput
	}

	for {
		cur := next
		next, err = readChunk(in, chunkSize)
		if err != nil {
			return fmt.Errorf("mode: reading input file: %w", err)
		}
		isFinal := next == nil

		var processed []byte
		if encrypting {
			processed, err = e.encryptBuffer(cur, isFinal)
		} else {
			processed, err = e.decryptBuffer(cur, isFinal)
		}
		if err != nil {
			return err
		}
		if _, err := out.Write(processed); err != nil {
			return fmt.Errorf("mode: writing output file: %w", err)
		}
		if isFinal {
			return nil
		}
	}
}

// readChunk reads up to n bytes from r, returning nil (no error) at
// EOF with zero bytes read, and a short final slice when r is
// exhausted mid-chunk.
func readChunk(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if read == 0 {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return buf[:read], nil
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

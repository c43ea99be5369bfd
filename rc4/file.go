package rc4

import (
	"fmt"
	"io"
	"os"
)

// streamChunkSize is the buffer size EncryptFile/DecryptFile read and
// write in, chosen for the same reason the mode package chunks file
// I/O: bound memory use on large files without losing throughput to
// tiny reads.
const streamChunkSize = 64 * 1024

// EncryptFile and DecryptFile are the same operation: RC4 is its own
// inverse byte-for-byte, so XORKeyStream run over a file top to bottom
// encrypts and decrypts identically, the way lab_5's ProcessFileStream
// used one code path for both directions.
func (c *Cipher) EncryptFile(inPath, outPath string) error { return c.processFile(inPath, outPath) }
func (c *Cipher) DecryptFile(inPath, outPath string) error { return c.processFile(inPath, outPath) }

func (c *Cipher) processFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("rc4: opening input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("rc4: creating output file: %w", err)
	}
	defer out.Close()

	buf := make([]byte, streamChunkSize)
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			c.XORKeyStream(buf[:n], buf[:n])
			if _, err := out.Write(buf[:n]); err != nil {
				return fmt.Errorf("rc4: writing output file: %w", err)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("rc4: reading input file: %w", readErr)
		}
	}
}

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/integrii/flaggy"

	"github.com/emppress/cryptography/rc4"
)

type rc4Flags struct {
	keyHex string
	in     string
	out    string
}

func newRC4Cmd() (*flaggy.Subcommand, *rc4Flags) {
	cmd := flaggy.NewSubcommand("rc4")
	cmd.Description = "Encrypt or decrypt a file with the RC4 stream cipher (same operation both ways)"
	f := &rc4Flags{}
	cmd.String(&f.keyHex, "k", "key", "key, hex-encoded (1-256 bytes)")
	cmd.String(&f.in, "f", "in", "input file path")
	cmd.String(&f.out, "o", "out", "output file path")
	return cmd, f
}

func runRC4(log logger, f *rc4Flags) error {
	if f.in == "" || f.out == "" {
		return fmt.Errorf("--in and --out are required")
	}
	if f.keyHex == "" {
		return fmt.Errorf("--key is required")
	}
	key, err := hex.DecodeString(f.keyHex)
	if err != nil {
		return fmt.Errorf("decoding --key: %w", err)
	}
	c, err := rc4.NewCipher(key)
	if err != nil {
		return fmt.Errorf("constructing cipher: %w", err)
	}
	log.Infof("streaming %s through RC4", f.in)
	if err := c.EncryptFile(f.in, f.out); err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	log.Infof("wrote %s", f.out)
	return nil
}

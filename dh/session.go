package dh

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// DeriveSessionKey turns a raw Diffie-Hellman shared secret into a
// fixed-size AES key via SHA-256, the standard "don't use the raw DH
// secret as a key" step.
func DeriveSessionKey(sharedSecret []byte, keySize int) []byte {
	hash := sha256.Sum256(sharedSecret)
	key := make([]byte, keySize)
	copy(key, hash[:keySize])
	return key
}

// SealSession encrypts plaintext under an AES-GCM session key derived
// from a completed Diffie-Hellman exchange. This is deliberately
// crypto/aes rather than this module's own DES/DEAL/Rijndael: it
// demonstrates what a DH-derived key is used for, not another
// implementation of this module's own block ciphers.
func SealSession(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("dh: creating AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("dh: creating GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("dh: generating nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenSession reverses SealSession.
func OpenSession(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("dh: creating AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("dh: creating GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("dh: ciphertext shorter than nonce")
	}
	nonce, ct := ciphertext[:nonceSize], ciphertext[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("dh: opening session ciphertext: %w", err)
	}
	return plaintext, nil
}
